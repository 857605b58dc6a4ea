package equals

const equalsTemplate = `// Code generated by record-gen. DO NOT EDIT.
// Source: {{.Source}}

package {{.Package}}

import "{{.IsPath}}"
{{$recv := receiver .TypeName}}
// {{.MethodName}} reports whether other is a *{{.TypeName}} whose fields all
// equal those of {{$recv}} under is.Equal.
func ({{$recv}} *{{.TypeName}}{{.TypeArgs}}) {{.MethodName}}(other any) bool {
	o, ok := other.(*{{.TypeName}}{{.TypeArgs}})
	if !ok {
		return false
	}
	if {{$recv}} == o {
		return true
	}
	if {{$recv}} == nil || o == nil {
		return false
	}
	return {{range $i, $f := .Fields}}{{if $i}} &&
		{{end}}is.Equal({{$recv}}.{{$f.Name}}, o.{{$f.Name}}){{end}}
}

// Is is the same as {{.MethodName}}.
func ({{$recv}} *{{.TypeName}}{{.TypeArgs}}) Is(other any) bool {
	return {{$recv}}.{{.MethodName}}(other)
}
`
