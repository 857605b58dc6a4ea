// Package equals implements the equals code generation subtool.
package equals

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/bobcob7/record-gen/internal/codegen"
)

// Subtool implements the equals code generator.
type Subtool struct {
	MethodName string
	Logger     zerolog.Logger
}

// Name returns the subtool name.
func (s *Subtool) Name() string { return "equals" }

// Description returns the subtool description.
func (s *Subtool) Description() string {
	return "Generate Equals and Is value-equality methods for an existing struct"
}

// Run executes the equals code generation.
func (s *Subtool) Run(cfg codegen.GeneratorConfig) error {
	info, err := codegen.ParseStruct(cfg.SourceDir, cfg.SourceFile, cfg.TypeName)
	if err != nil {
		return fmt.Errorf("parsing struct: %w", err)
	}
	data, err := s.buildTemplateData(cfg, info)
	if err != nil {
		return err
	}
	baseName := strings.TrimSuffix(cfg.SourceFile, ".go")
	outputFile := filepath.Join(cfg.OutputDir, baseName+"_equals.go")
	gen := codegen.NewTemplateGenerator(templateFuncs(), s.Logger)
	return gen.GenerateFile(outputFile, equalsTemplate, data)
}

// Render generates the equality methods for info without writing a file.
func (s *Subtool) Render(cfg codegen.GeneratorConfig, info *codegen.StructInfo) ([]byte, error) {
	data, err := s.buildTemplateData(cfg, info)
	if err != nil {
		return nil, err
	}
	return codegen.NewTemplateGenerator(templateFuncs(), s.Logger).Render(equalsTemplate, data)
}

func (s *Subtool) buildTemplateData(cfg codegen.GeneratorConfig, info *codegen.StructInfo) (templateData, error) {
	methodName := s.MethodName
	if methodName == "" {
		methodName = "Equals"
	}
	if methodName == "Is" {
		return templateData{}, fmt.Errorf("method name %s clashes with the generated Is", methodName)
	}
	if methodName != "Equals" && methodName != "Equal" {
		// is.Equal only consults Equals(any) and Equal(T).
		s.Logger.Warn().Str("method", methodName).Msg("method will not be used by is.Equal")
	}
	if len(info.Fields) == 0 {
		return templateData{}, fmt.Errorf("type %s has no fields to compare", info.Name)
	}
	runtimePath := cfg.RuntimePath
	if runtimePath == "" {
		runtimePath = codegen.DefaultRuntimePath
	}
	var args []string
	for _, p := range info.TypeParams {
		name, _ := codegen.SplitTypeParam(p)
		args = append(args, name)
	}
	data := templateData{
		Package:    firstNonEmpty(cfg.OutputPkg, cfg.SourcePkg),
		Source:     cfg.SourceFile,
		IsPath:     path.Join(strings.TrimSuffix(runtimePath, "/"), "is"),
		TypeName:   info.Name,
		MethodName: methodName,
		Fields:     info.Fields,
	}
	if len(args) > 0 {
		data.TypeArgs = "[" + strings.Join(args, ", ") + "]"
	}
	return data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type templateData struct {
	Package    string
	Source     string
	IsPath     string
	TypeName   string
	TypeArgs   string
	MethodName string
	Fields     []codegen.FieldInfo
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"receiver": receiverName,
	}
}

// receiverName is the lower-cased initial of the type, avoiding the "o"
// used for the other operand.
func receiverName(typeName string) string {
	r := strings.ToLower(string([]rune(typeName)[:1]))
	if r == "o" {
		return "x"
	}
	return r
}
