// Package record implements the record code generation subtool.
package record

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/bobcob7/record-gen/internal/codegen"
)

// Subtool implements the record code generator.
type Subtool struct {
	Logger zerolog.Logger
}

// Name returns the subtool name.
func (s *Subtool) Name() string { return "record" }

// Description returns the subtool description.
func (s *Subtool) Description() string {
	return "Generate immutable record types with Derive and value equality"
}

// Run executes the record code generation.
func (s *Subtool) Run(cfg codegen.GeneratorConfig) error {
	schemas, pkg, outputFile, err := s.load(cfg)
	if err != nil {
		return err
	}
	data, err := buildTemplateData(pkg, cfg.RuntimePath, sourceName(cfg), schemas)
	if err != nil {
		return err
	}
	for _, rec := range data.Records {
		s.Logger.Debug().Str("record", rec.Name).Int("fields", len(rec.Fields)).Msg("prepared record")
	}
	gen := codegen.NewTemplateGenerator(templateFuncs(), s.Logger)
	return gen.GenerateFile(outputFile, recordTemplate, data)
}

func (s *Subtool) load(cfg codegen.GeneratorConfig) ([]*codegen.Schema, string, string, error) {
	if cfg.SchemaFile != "" {
		return loadSchemaFile(cfg)
	}
	info, err := codegen.ParseStruct(cfg.SourceDir, cfg.SourceFile, cfg.TypeName)
	if err != nil {
		return nil, "", "", fmt.Errorf("parsing struct: %w", err)
	}
	name := cfg.RecordName
	if name == "" {
		if name, err = codegen.RecordNameFor(info.Name); err != nil {
			return nil, "", "", err
		}
	}
	pkg := firstNonEmpty(cfg.OutputPkg, cfg.SourcePkg)
	if name == info.Name && pkg == cfg.SourcePkg {
		return nil, "", "", fmt.Errorf("record %s would redeclare its schema struct", name)
	}
	schema := codegen.SchemaFromStruct(info, name)
	if err := codegen.Validate(schema); err != nil {
		return nil, "", "", fmt.Errorf("validating schema %s: %w", info.Name, err)
	}
	outputFile := filepath.Join(cfg.OutputDir, strings.ToLower(name)+"_record.go")
	return []*codegen.Schema{schema}, pkg, outputFile, nil
}

func loadSchemaFile(cfg codegen.GeneratorConfig) ([]*codegen.Schema, string, string, error) {
	schemaPath := cfg.SchemaFile
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(cfg.SourceDir, schemaPath)
	}
	sf, err := codegen.LoadSchemaFile(schemaPath)
	if err != nil {
		return nil, "", "", fmt.Errorf("loading schema: %w", err)
	}
	schemas := make([]*codegen.Schema, 0, len(sf.Records))
	for i := range sf.Records {
		schemas = append(schemas, &sf.Records[i])
	}
	pkg := firstNonEmpty(cfg.OutputPkg, sf.Package, cfg.SourcePkg)
	if pkg == "" {
		return nil, "", "", errors.New("no package name: set -package or package in the schema file")
	}
	base := strings.TrimSuffix(filepath.Base(schemaPath), filepath.Ext(schemaPath))
	outputFile := filepath.Join(cfg.OutputDir, base+"_record.go")
	return schemas, pkg, outputFile, nil
}

func sourceName(cfg codegen.GeneratorConfig) string {
	if cfg.SchemaFile != "" {
		return filepath.ToSlash(cfg.SchemaFile)
	}
	return cfg.SourceFile
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Render generates the source of a file declaring the given records.
func Render(pkg, runtimePath string, schemas []*codegen.Schema, logger zerolog.Logger) ([]byte, error) {
	data, err := buildTemplateData(pkg, runtimePath, "", schemas)
	if err != nil {
		return nil, err
	}
	return codegen.NewTemplateGenerator(templateFuncs(), logger).Render(recordTemplate, data)
}

type templateData struct {
	Package    string
	Source     string
	Imports    []codegen.ImportInfo
	IsPath     string
	RecordPath string
	Records    []recordData
}

type recordData struct {
	Name              string
	Constructor       string
	UpdateName        string
	UpdateConstructor string
	TypeParams        string // "[Job any]"
	TypeArgs          string // "[Job]"
	FieldsVar         string
	Fields            []fieldData
	Types             string
}

type fieldData struct {
	Name   string // Update key
	Type   string
	Index  int
	Const  string
	Struct string
	Param  string
	Getter string
	Setter string
}

func buildTemplateData(pkg, runtimePath, source string, schemas []*codegen.Schema) (templateData, error) {
	if runtimePath == "" {
		runtimePath = codegen.DefaultRuntimePath
	}
	runtimePath = strings.TrimSuffix(runtimePath, "/")
	data := templateData{
		Package:    pkg,
		Source:     source,
		IsPath:     path.Join(runtimePath, "is"),
		RecordPath: path.Join(runtimePath, "record"),
	}
	seen := map[string]bool{data.IsPath: true, data.RecordPath: true}
	for _, s := range schemas {
		rec, err := prepare(s)
		if err != nil {
			return templateData{}, err
		}
		for _, imp := range s.Imports {
			if !seen[imp.Path] {
				seen[imp.Path] = true
				data.Imports = append(data.Imports, imp)
			}
		}
		data.Records = append(data.Records, rec)
	}
	return data, nil
}

// prepare renders from a normalised copy so callers can reuse their schema
// values.
func prepare(s *codegen.Schema) (recordData, error) {
	if err := codegen.Validate(s); err != nil {
		return recordData{}, fmt.Errorf("validating schema %s: %w", s.Name, err)
	}
	s, err := s.Clone()
	if err != nil {
		return recordData{}, err
	}
	normalize(s)
	rec := recordData{
		Name:              s.Name,
		Constructor:       codegen.ConstructorName(s.Name),
		UpdateName:        s.Name + "Update",
		UpdateConstructor: codegen.ConstructorName(s.Name + "Update"),
		FieldsVar:         codegen.Unexported(s.Name) + "Fields",
		Types:             s.Types,
	}
	if len(s.Generics) > 0 {
		args := make([]string, len(s.Generics))
		for i, g := range s.Generics {
			args[i], _ = codegen.SplitTypeParam(g)
		}
		rec.TypeParams = "[" + strings.Join(s.Generics, ", ") + "]"
		rec.TypeArgs = "[" + strings.Join(args, ", ") + "]"
	}
	for i, f := range s.Fields {
		exported := codegen.Exported(f.Name)
		rec.Fields = append(rec.Fields, fieldData{
			Name:   f.Name,
			Type:   f.Type,
			Index:  i,
			Const:  s.Name + "Field" + exported,
			Struct: codegen.Unexported(f.Name),
			Param:  codegen.Unexported(f.Name),
			Getter: exported,
			Setter: "Set" + exported,
		})
	}
	return rec, nil
}

// normalize trims field types and extra declarations, and spells out the
// constraint of every generic parameter.
func normalize(s *codegen.Schema) {
	for i, g := range s.Generics {
		name, constraint := codegen.SplitTypeParam(g)
		s.Generics[i] = name + " " + constraint
	}
	for i := range s.Fields {
		s.Fields[i].Type = strings.TrimSpace(s.Fields[i].Type)
	}
	s.Types = strings.TrimSpace(s.Types)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"quote": strconv.Quote,
	}
}
