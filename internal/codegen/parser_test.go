package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleSource = `package sample

import (
	"net/http"
	"time"

	yaml "gopkg.in/yaml.v3"
)

var _ = http.MethodGet

//go:generate record-gen record
type PairSchema[K comparable, V any] struct {
	Key       K
	Value     V
	At        time.Time
	Node      *yaml.Node
	note, tag string
	_         int
	fmtStringer
}

type other int

type Later struct {
	A int
}
`

func writeSample(t *testing.T) (dir, file string) {
	t.Helper()
	dir = t.TempDir()
	file = "sample.go"
	if err := os.WriteFile(filepath.Join(dir, file), []byte(sampleSource), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, file
}

func TestParseStruct(t *testing.T) {
	dir, file := writeSample(t)
	info, err := ParseStruct(dir, file, "PairSchema")
	if err != nil {
		t.Fatalf("ParseStruct: %v", err)
	}
	want := &StructInfo{
		Name:       "PairSchema",
		TypeParams: []string{"K comparable", "V any"},
		Fields: []FieldInfo{
			{Name: "Key", Type: "K"},
			{Name: "Value", Type: "V"},
			{Name: "At", Type: "time.Time"},
			{Name: "Node", Type: "*yaml.Node"},
			{Name: "note", Type: "string"},
			{Name: "tag", Type: "string"},
			{Name: "fmtStringer", Type: "fmtStringer", Embedded: true},
		},
		Imports: []ImportInfo{
			{Path: "time"},
			{Path: "gopkg.in/yaml.v3", Alias: "yaml"},
		},
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("ParseStruct (-want +got):\n%s", diff)
	}
}

func TestParseStructErrors(t *testing.T) {
	dir, file := writeSample(t)
	if _, err := ParseStruct(dir, file, "Missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("missing type error = %v", err)
	}
	if _, err := ParseStruct(dir, file, "other"); err == nil || !strings.Contains(err.Error(), "not a struct") {
		t.Errorf("non-struct error = %v", err)
	}
	if _, err := ParseStruct(dir, "nope.go", "PairSchema"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFindTypeAfterGenerateDirective(t *testing.T) {
	dir, file := writeSample(t)
	name, err := FindTypeAfterGenerateDirective(dir, file, "record-gen record")
	if err != nil || name != "PairSchema" {
		t.Errorf("FindTypeAfterGenerateDirective = %q, %v", name, err)
	}
	if _, err := FindTypeAfterGenerateDirective(dir, file, "record-gen equals"); err == nil {
		t.Error("expected no match for another generator")
	}
}

func TestFindTypeAfterLine(t *testing.T) {
	dir, file := writeSample(t)
	line := 0
	for i, l := range strings.Split(sampleSource, "\n") {
		if strings.HasPrefix(l, "type other") {
			line = i + 1
		}
	}
	name, err := FindTypeAfterLine(filepath.Join(dir, file), line)
	if err != nil || name != "Later" {
		t.Errorf("FindTypeAfterLine = %q, %v; want Later", name, err)
	}
	if _, err := FindTypeAfterLine(filepath.Join(dir, file), 1000); err == nil {
		t.Error("expected no struct after the last line")
	}
}

func TestImportPackageName(t *testing.T) {
	tests := []struct {
		imp  ImportInfo
		want string
	}{
		{ImportInfo{Path: "time"}, "time"},
		{ImportInfo{Path: "github.com/google/uuid"}, "uuid"},
		{ImportInfo{Path: "github.com/go-chi/chi/v5"}, "chi"},
		{ImportInfo{Path: "gopkg.in/yaml.v3"}, "yaml"},
		{ImportInfo{Path: "github.com/google/uuid", Alias: "id"}, "id"},
	}
	for _, tt := range tests {
		if got := tt.imp.PackageName(); got != tt.want {
			t.Errorf("PackageName(%v) = %q, want %q", tt.imp, got, tt.want)
		}
	}
}
