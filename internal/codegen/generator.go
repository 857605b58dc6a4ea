package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"text/template"

	"github.com/rs/zerolog"
)

// TemplateGenerator handles template-based code generation.
type TemplateGenerator struct {
	FuncMap template.FuncMap
	Logger  zerolog.Logger
}

// NewTemplateGenerator creates a new TemplateGenerator with optional custom functions.
func NewTemplateGenerator(customFuncs template.FuncMap, logger zerolog.Logger) *TemplateGenerator {
	return &TemplateGenerator{FuncMap: customFuncs, Logger: logger}
}

// Render executes a template and returns the gofmt-ed result. When the output
// does not format, the raw text is returned along with the error.
func (g *TemplateGenerator) Render(tmplText string, data any) ([]byte, error) {
	tmpl, err := template.New("gen").Funcs(g.FuncMap).Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting generated code: %w", err)
	}
	return formatted, nil
}

// GenerateFile executes a template and writes the formatted output to a file.
func (g *TemplateGenerator) GenerateFile(outputFile, tmplText string, data any) error {
	src, err := g.Render(tmplText, data)
	if err != nil {
		if src != nil {
			_ = os.WriteFile(outputFile+".unformatted", src, 0644)
			return fmt.Errorf("%w (wrote unformatted to %s.unformatted)", err, outputFile)
		}
		return err
	}
	if err := os.WriteFile(outputFile, src, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	g.Logger.Info().Str("file", outputFile).Int("bytes", len(src)).Msg("generated")
	return nil
}

// Subtool defines the interface for code generation subtools.
type Subtool interface {
	Name() string
	Description() string
	Run(cfg GeneratorConfig) error
}
