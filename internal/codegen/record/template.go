package record

const recordTemplate = `// Code generated by record-gen. DO NOT EDIT.
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
{{- if .Imports}}
{{end}}
	"{{.IsPath}}"
	"{{.RecordPath}}"
)
{{range .Records}}{{template "record" .}}{{end}}
{{- define "record"}}{{$r := .}}
// Field names of {{.Name}} in declaration order, usable as update keys.
const (
{{- range .Fields}}
	{{.Const}} = {{quote .Name}}
{{- end}}
)

var {{.FieldsVar}} = []string{
{{- range .Fields}}
	{{.Const}},
{{- end}}
}

// {{.Name}} is an immutable record. Build one with {{.Constructor}} and
// change it with Derive.
type {{.Name}}{{.TypeParams}} struct {
{{- range .Fields}}
	{{.Struct}} {{.Type}}
{{- end}}
}

// {{.Constructor}} returns a {{.Name}} built from its fields in declaration order.
func {{.Constructor}}{{.TypeParams}}({{range $i, $f := .Fields}}{{if $i}}, {{end}}{{$f.Param}} {{$f.Type}}{{end}}) *{{.Name}}{{.TypeArgs}} {
	return &{{.Name}}{{.TypeArgs}}{
{{- range .Fields}}
		{{.Struct}}: {{.Param}},
{{- end}}
	}
}
{{range .Fields}}
// {{.Getter}} returns the {{.Name}} field.
func (r *{{$r.Name}}{{$r.TypeArgs}}) {{.Getter}}() {{.Type}} {
	return r.{{.Struct}}
}
{{end}}
// Fields returns the field names of {{.Name}} in declaration order.
func (r *{{.Name}}{{.TypeArgs}}) Fields() []string {
	return append([]string(nil), {{.FieldsVar}}...)
}

// Field returns the current value of the named field.
func (r *{{.Name}}{{.TypeArgs}}) Field(name string) (any, bool) {
	switch name {
{{- range .Fields}}
	case {{.Const}}:
		return r.{{.Struct}}, true
{{- end}}
	}
	return nil, false
}

// {{.UpdateName}} proposes new values for some fields of a {{.Name}}.
type {{.UpdateName}}{{.TypeParams}} struct {
	record.Update
}

// {{.UpdateConstructor}} returns an empty {{.UpdateName}}.
func {{.UpdateConstructor}}{{.TypeParams}}() *{{.UpdateName}}{{.TypeArgs}} {
	return &{{.UpdateName}}{{.TypeArgs}}{}
}
{{range .Fields}}
// {{.Setter}} proposes v as the new {{.Name}}.
func (u *{{$r.UpdateName}}{{$r.TypeArgs}}) {{.Setter}}(v {{.Type}}) *{{$r.UpdateName}}{{$r.TypeArgs}} {
	u.Set({{.Const}}, v)
	return u
}
{{end}}
// Derive returns r itself when u is empty or every value in it equals the
// current one. Otherwise it returns a new {{.Name}} with the values of u
// replacing those of r.
func (r *{{.Name}}{{.TypeArgs}}) Derive(u *{{.UpdateName}}{{.TypeArgs}}) (*{{.Name}}{{.TypeArgs}}, error) {
	if u == nil {
		return r, nil
	}
	values, changed, err := record.Derive(r, &u.Update)
	if err != nil {
		return nil, err
	}
	if !changed {
		return r, nil
	}
	next := &{{.Name}}{{.TypeArgs}}{}
{{- range .Fields}}
	if next.{{.Struct}}, err = record.As[{{.Type}}]({{.Const}}, values[{{.Index}}]); err != nil {
		return nil, err
	}
{{- end}}
	return next, nil
}

// MustDerive is like Derive but panics if u does not fit {{.Name}}.
func (r *{{.Name}}{{.TypeArgs}}) MustDerive(u *{{.UpdateName}}{{.TypeArgs}}) *{{.Name}}{{.TypeArgs}} {
	next, err := r.Derive(u)
	if err != nil {
		panic(err)
	}
	return next
}

// Equals reports whether other is a *{{.Name}} whose fields all equal those
// of r under is.Equal.
func (r *{{.Name}}{{.TypeArgs}}) Equals(other any) bool {
	o, ok := other.(*{{.Name}}{{.TypeArgs}})
	if !ok {
		return false
	}
	if r == o {
		return true
	}
	if r == nil || o == nil {
		return false
	}
	return {{range $i, $f := .Fields}}{{if $i}} &&
		{{end}}is.Equal(r.{{$f.Struct}}, o.{{$f.Struct}}){{end}}
}

// Is is the same as Equals.
func (r *{{.Name}}{{.TypeArgs}}) Is(other any) bool {
	return r.Equals(other)
}
{{- if .Types}}

{{.Types}}
{{- end}}
{{end}}`
