package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNaming(t *testing.T) {
	tests := []struct {
		in, exported, unexported string
	}{
		{"title", "Title", "title"},
		{"StartAt", "StartAt", "startAt"},
		{"Type", "Type", "type_"},
		{"func", "Func", "func_"},
		{"élan", "Élan", "élan"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := Exported(tt.in); got != tt.exported {
			t.Errorf("Exported(%q) = %q, want %q", tt.in, got, tt.exported)
		}
		if got := Unexported(tt.in); got != tt.unexported {
			t.Errorf("Unexported(%q) = %q, want %q", tt.in, got, tt.unexported)
		}
	}
}

func TestConstructorName(t *testing.T) {
	if got := ConstructorName("Person"); got != "NewPerson" {
		t.Errorf("ConstructorName(Person) = %q", got)
	}
	if got := ConstructorName("person"); got != "newPerson" {
		t.Errorf("ConstructorName(person) = %q", got)
	}
}

func TestSplitTypeParam(t *testing.T) {
	tests := []struct {
		in, name, constraint string
	}{
		{"T", "T", "any"},
		{" K comparable ", "K", "comparable"},
		{"N interface{ ~int | ~float64 }", "N", "interface{ ~int | ~float64 }"},
	}
	for _, tt := range tests {
		name, constraint := SplitTypeParam(tt.in)
		if name != tt.name || constraint != tt.constraint {
			t.Errorf("SplitTypeParam(%q) = %q, %q", tt.in, name, constraint)
		}
	}
}

func TestTemplateGenerator(t *testing.T) {
	gen := NewTemplateGenerator(nil, zerolog.Nop())
	dir := t.TempDir()

	out := filepath.Join(dir, "ok.go")
	if err := gen.GenerateFile(out, "package {{.}}\n\nvar   x=1\n", "sample"); err != nil {
		t.Fatalf("GenerateFile: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "package sample\n\nvar x = 1\n" {
		t.Errorf("output not formatted:\n%s", data)
	}

	bad := filepath.Join(dir, "bad.go")
	err = gen.GenerateFile(bad, "package {{.}}\nfunc (\n", "sample")
	if err == nil || !strings.Contains(err.Error(), "formatting generated code") {
		t.Fatalf("GenerateFile error = %v", err)
	}
	if _, err := os.Stat(bad + ".unformatted"); err != nil {
		t.Errorf("unformatted output not kept: %v", err)
	}
	if _, err := os.Stat(bad); err == nil {
		t.Error("unformattable output written to the target")
	}

	if _, err := gen.Render("{{.Missing", nil); err == nil || !strings.Contains(err.Error(), "parsing template") {
		t.Errorf("Render error = %v", err)
	}
}
