package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaFile is the YAML form of a set of record schemas.
type SchemaFile struct {
	Package string   `yaml:"package,omitempty"`
	Records []Schema `yaml:"records"`
}

// LoadSchemaFile reads and validates a YAML schema file.
func LoadSchemaFile(path string) (*SchemaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return ParseSchemaFile(data)
}

// ParseSchemaFile parses and validates YAML schema bytes.
func ParseSchemaFile(data []byte) (*SchemaFile, error) {
	var sf SchemaFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(sf.Records) == 0 {
		return nil, errors.New("schema file declares no records")
	}
	seen := make(map[string]bool, len(sf.Records))
	for i := range sf.Records {
		s := &sf.Records[i]
		if seen[s.Name] {
			return nil, fmt.Errorf("record %s declared twice", s.Name)
		}
		seen[s.Name] = true
		if err := Validate(s); err != nil {
			return nil, fmt.Errorf("validate record %q: %w", s.Name, err)
		}
	}
	return &sf, nil
}

// UnmarshalYAML accepts either a bare import path or a {path, alias} mapping.
func (i *ImportInfo) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		i.Path = value.Value
		i.Alias = ""
		return nil
	}
	type plain ImportInfo
	return value.Decode((*plain)(i))
}

// SchemaFromStruct turns a parsed Go struct into a record schema named name.
func SchemaFromStruct(info *StructInfo, name string) *Schema {
	s := &Schema{
		Name:     name,
		Generics: append([]string(nil), info.TypeParams...),
		Imports:  append([]ImportInfo(nil), info.Imports...),
		Fields:   make([]Field, 0, len(info.Fields)),
	}
	for _, f := range info.Fields {
		s.Fields = append(s.Fields, Field{Name: f.Name, Type: f.Type})
	}
	return s
}

// RecordNameFor picks the record name for a schema struct: the struct name
// without a "Schema" suffix, or else the struct name exported.
func RecordNameFor(typeName string) (string, error) {
	if name, ok := strings.CutSuffix(typeName, "Schema"); ok && name != "" {
		return name, nil
	}
	if name := Exported(typeName); name != typeName {
		return name, nil
	}
	return "", fmt.Errorf("cannot derive a record name from %s; name it %sSchema or pass -name", typeName, typeName)
}

// reservedMethods are generated on every record and cannot be field getters.
var reservedMethods = map[string]bool{
	"Fields":     true,
	"Field":      true,
	"Derive":     true,
	"MustDerive": true,
	"Equals":     true,
	"Is":         true,
}

// Validate reports every naming problem in s. Field types are not checked.
// Field names may be Go keywords; they become the update keys as written.
func Validate(s *Schema) error {
	var errs []error
	if !isIdentifier(s.Name) {
		errs = append(errs, fmt.Errorf("record name %q is not a valid identifier", s.Name))
	}
	if len(s.Fields) == 0 {
		errs = append(errs, errors.New("record has no fields"))
	}
	names := make(map[string]bool, len(s.Fields))
	getters := make(map[string]string, len(s.Fields))
	params := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		switch {
		case !isFieldName(f.Name):
			errs = append(errs, fmt.Errorf("field name %q is not a valid identifier", f.Name))
			continue
		case names[f.Name]:
			errs = append(errs, fmt.Errorf("field %s declared twice", f.Name))
			continue
		}
		names[f.Name] = true
		if strings.TrimSpace(f.Type) == "" {
			errs = append(errs, fmt.Errorf("field %s has no type", f.Name))
		}
		getter := Exported(f.Name)
		if reservedMethods[getter] {
			errs = append(errs, fmt.Errorf("field %s clashes with generated method %s", f.Name, getter))
		}
		if other, ok := getters[getter]; ok {
			errs = append(errs, fmt.Errorf("fields %s and %s both export as %s", other, f.Name, getter))
		}
		getters[getter] = f.Name
		param := Unexported(f.Name)
		if other, ok := params[param]; ok {
			errs = append(errs, fmt.Errorf("fields %s and %s are both stored as %s", other, f.Name, param))
		}
		params[param] = f.Name
	}
	for _, g := range s.Generics {
		name, _ := SplitTypeParam(g)
		switch {
		case !isIdentifier(name):
			errs = append(errs, fmt.Errorf("generic parameter %q has no valid name", g))
		case generatedLocals[name]:
			errs = append(errs, fmt.Errorf("generic parameter %s clashes with an identifier of the generated methods", name))
		case params[name] != "":
			errs = append(errs, fmt.Errorf("generic parameter %s is shadowed by the constructor parameter of field %s", name, params[name]))
		}
	}
	return errors.Join(errs...)
}

// generatedLocals are the receivers, parameters, locals and package names
// that generated methods declare or use next to the record's type parameters.
var generatedLocals = map[string]bool{
	"r": true, "u": true, "v": true, "o": true, "ok": true,
	"other": true, "name": true, "next": true, "values": true,
	"changed": true, "err": true, "is": true, "record": true,
}

func isIdentifier(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}

// isFieldName accepts identifiers and keywords; keywords are escaped when
// they are stored.
func isFieldName(name string) bool {
	return isIdentifier(name) || token.IsKeyword(name)
}
