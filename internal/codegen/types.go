// Package codegen provides shared types and utilities for code generation tools.
package codegen

import (
	"fmt"

	"github.com/mitchellh/copystructure"
)

// DefaultRuntimePath is the import path prefix of the is and record packages
// that generated code depends on.
const DefaultRuntimePath = "github.com/bobcob7/record-gen/pkg"

// Schema describes one record type.
type Schema struct {
	Name     string       `yaml:"name"`
	Generics []string     `yaml:"generics,omitempty"` // "T" or "T constraint"
	Fields   []Field      `yaml:"fields"`
	Imports  []ImportInfo `yaml:"imports,omitempty"`
	Types    string       `yaml:"types,omitempty"` // Extra declarations emitted verbatim
}

// Field is one record field. Type is an opaque Go type expression.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() (*Schema, error) {
	c, err := copystructure.Copy(s)
	if err != nil {
		return nil, fmt.Errorf("copying schema %s: %w", s.Name, err)
	}
	return c.(*Schema), nil
}

// StructInfo holds information about a parsed struct type.
type StructInfo struct {
	Name       string
	TypeParams []string
	Fields     []FieldInfo
	Imports    []ImportInfo
}

// FieldInfo holds information about a struct field.
type FieldInfo struct {
	Name     string
	Type     string // Full type string (e.g., "[]string", "map[string]any")
	Embedded bool
}

// ImportInfo holds information about an import.
type ImportInfo struct {
	Path  string `yaml:"path"`
	Alias string `yaml:"alias,omitempty"`
}

// GeneratorConfig holds common configuration for generators.
type GeneratorConfig struct {
	TypeName    string
	RecordName  string
	SchemaFile  string
	SourceFile  string
	SourceDir   string
	SourcePkg   string
	OutputDir   string
	OutputPkg   string
	RuntimePath string
}
