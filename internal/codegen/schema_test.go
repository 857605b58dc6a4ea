package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const personYAML = `
package: people
records:
  - name: Person
    generics: [Job]
    fields:
      - {name: name, type: string}
      - {name: age, type: float64}
      - {name: job, type: Job}
  - name: Meeting
    imports:
      - time
      - {path: github.com/google/uuid, alias: uid}
    types: |
      type Room string
    fields:
      - name: id
        type: uid.UUID
      - name: startAt
        type: time.Time
      - name: room
        type: Room
`

func TestParseSchemaFile(t *testing.T) {
	sf, err := ParseSchemaFile([]byte(personYAML))
	if err != nil {
		t.Fatalf("ParseSchemaFile: %v", err)
	}
	want := &SchemaFile{
		Package: "people",
		Records: []Schema{
			{
				Name:     "Person",
				Generics: []string{"Job"},
				Fields: []Field{
					{Name: "name", Type: "string"},
					{Name: "age", Type: "float64"},
					{Name: "job", Type: "Job"},
				},
			},
			{
				Name: "Meeting",
				Imports: []ImportInfo{
					{Path: "time"},
					{Path: "github.com/google/uuid", Alias: "uid"},
				},
				Types: "type Room string\n",
				Fields: []Field{
					{Name: "id", Type: "uid.UUID"},
					{Name: "startAt", Type: "time.Time"},
					{Name: "room", Type: "Room"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, sf); diff != "" {
		t.Errorf("ParseSchemaFile (-want +got):\n%s", diff)
	}
}

func TestLoadSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.yaml")
	if err := os.WriteFile(path, []byte(personYAML), 0644); err != nil {
		t.Fatal(err)
	}
	sf, err := LoadSchemaFile(path)
	if err != nil {
		t.Fatalf("LoadSchemaFile: %v", err)
	}
	if len(sf.Records) != 2 {
		t.Errorf("got %d records, want 2", len(sf.Records))
	}
	if _, err := LoadSchemaFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestParseSchemaFileErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no records", "package: x\n", "no records"},
		{"unknown key", "records:\n  - name: A\n    colour: red\n    fields: [{name: a, type: int}]\n", "colour"},
		{"duplicate record", "records:\n  - {name: A, fields: [{name: a, type: int}]}\n  - {name: A, fields: [{name: a, type: int}]}\n", "declared twice"},
		{"invalid record", "records:\n  - {name: A, fields: []}\n", "no fields"},
		{"bad yaml", "records: [", "parse yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchemaFile([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		want   []string
	}{
		{
			name:   "valid",
			schema: Schema{Name: "Event", Generics: []string{"T", "K comparable"}, Fields: []Field{{"title", "string"}, {"at", "T"}}},
		},
		{
			name:   "everything wrong",
			schema: Schema{Name: "1Event", Fields: []Field{{"a b", "int"}, {"x", ""}, {"x", "int"}, {"derive", "int"}, {"name", "string"}, {"Name", "string"}, {"_", "int"}}},
			want: []string{
				`record name "1Event"`,
				`field name "a b"`,
				"field x has no type",
				"field x declared twice",
				"clashes with generated method Derive",
				"both export as Name",
				`field name "_"`,
			},
		},
		{
			name:   "keyword field names",
			schema: Schema{Name: "Meeting", Fields: []Field{{"type", "string"}, {"func", "func()"}, {"range", "int"}}},
		},
		{
			name:   "generic next to same-letter field",
			schema: Schema{Name: "Box", Generics: []string{"T"}, Fields: []Field{{"t", "T"}}},
		},
		{
			name:   "escaped keyword collides",
			schema: Schema{Name: "Meeting", Fields: []Field{{"type", "string"}, {"type_", "string"}}},
			want:   []string{"fields type and type_ are both stored as type_"},
		},
		{
			name:   "generic clashes",
			schema: Schema{Name: "Box", Generics: []string{"item", "err", "record any"}, Fields: []Field{{"item", "int"}}},
			want: []string{
				"generic parameter item is shadowed by the constructor parameter of field item",
				"generic parameter err clashes",
				"generic parameter record clashes",
			},
		},
		{
			name:   "no fields",
			schema: Schema{Name: "Empty"},
			want:   []string{"no fields"},
		},
		{
			name:   "bad generic",
			schema: Schema{Name: "G", Generics: []string{"", "[]T"}, Fields: []Field{{"a", "int"}}},
			want:   []string{`generic parameter ""`, `generic parameter "[]T"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.schema)
			if len(tt.want) == 0 {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate: expected an error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestSchemaFromStruct(t *testing.T) {
	info := &StructInfo{
		Name:       "EventSchema",
		TypeParams: []string{"T any"},
		Fields:     []FieldInfo{{Name: "At", Type: "time.Time"}, {Name: "Payload", Type: "T"}},
		Imports:    []ImportInfo{{Path: "time"}},
	}
	got := SchemaFromStruct(info, "Event")
	want := &Schema{
		Name:     "Event",
		Generics: []string{"T any"},
		Fields:   []Field{{"At", "time.Time"}, {"Payload", "T"}},
		Imports:  []ImportInfo{{Path: "time"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SchemaFromStruct (-want +got):\n%s", diff)
	}
	got.Imports[0].Path = "changed"
	if info.Imports[0].Path != "time" {
		t.Error("SchemaFromStruct shares imports with its input")
	}
}

func TestSchemaClone(t *testing.T) {
	s := &Schema{Name: "A", Generics: []string{"T"}, Fields: []Field{{"a", "T"}}}
	c, err := s.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if diff := cmp.Diff(s, c); diff != "" {
		t.Errorf("Clone (-want +got):\n%s", diff)
	}
	c.Fields[0].Type = "int"
	c.Generics[0] = "U"
	if s.Fields[0].Type != "T" || s.Generics[0] != "T" {
		t.Error("Clone shares memory with the original")
	}
}

func TestRecordNameFor(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{"PersonSchema", "Person", false},
		{"personSchema", "person", false},
		{"person", "Person", false},
		{"Schema", "", true},
		{"Person", "", true},
	}
	for _, tt := range tests {
		got, err := RecordNameFor(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("RecordNameFor(%q) = %q, %v", tt.in, got, err)
		}
	}
}
