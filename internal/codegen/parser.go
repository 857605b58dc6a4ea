package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"path/filepath"
	"strings"
)

// ParseStruct parses a Go source file and extracts struct information.
func ParseStruct(dir, filename, typeName string) (*StructInfo, error) {
	fset := token.NewFileSet()
	fullPath := filepath.Join(dir, filename)
	f, err := parser.ParseFile(fset, fullPath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	typeSpec, err := findTypeSpec(f, typeName)
	if err != nil {
		return nil, err
	}
	structType, ok := typeSpec.Type.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("type %s is not a struct", typeName)
	}
	var exprs []ast.Expr
	var params []string
	if typeSpec.TypeParams != nil {
		for _, field := range typeSpec.TypeParams.List {
			constraint := types.ExprString(field.Type)
			for _, name := range field.Names {
				params = append(params, name.Name+" "+constraint)
			}
			exprs = append(exprs, field.Type)
		}
	}
	fields := make([]FieldInfo, 0, len(structType.Fields.List))
	for _, field := range structType.Fields.List {
		exprs = append(exprs, field.Type)
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			fields = append(fields, FieldInfo{Name: embeddedName(field.Type), Type: typ, Embedded: true})
			continue
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				continue
			}
			fields = append(fields, FieldInfo{Name: name.Name, Type: typ})
		}
	}
	return &StructInfo{
		Name:       typeSpec.Name.Name,
		TypeParams: params,
		Fields:     fields,
		Imports:    collectRequiredImports(exprs, collectImports(f)),
	}, nil
}

func findTypeSpec(f *ast.File, typeName string) (*ast.TypeSpec, error) {
	for _, decl := range f.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if ok && typeSpec.Name.Name == typeName {
				return typeSpec, nil
			}
		}
	}
	return nil, fmt.Errorf("type %s not found", typeName)
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	}
	return types.ExprString(expr)
}

func collectImports(f *ast.File) []ImportInfo {
	imports := make([]ImportInfo, 0, len(f.Imports))
	for _, imp := range f.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		alias := ""
		if imp.Name != nil {
			alias = imp.Name.Name
		}
		imports = append(imports, ImportInfo{Path: path, Alias: alias})
	}
	return imports
}

// collectRequiredImports keeps the file imports whose package name is
// referenced by one of exprs, in file order.
func collectRequiredImports(exprs []ast.Expr, fileImports []ImportInfo) []ImportInfo {
	used := make(map[string]bool)
	for _, expr := range exprs {
		ast.Inspect(expr, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if pkg, ok := sel.X.(*ast.Ident); ok {
				used[pkg.Name] = true
			}
			return false
		})
	}
	var imports []ImportInfo
	for _, imp := range fileImports {
		if used[imp.PackageName()] {
			imports = append(imports, imp)
		}
	}
	return imports
}

// PackageName returns the name the import is referenced by.
func (i ImportInfo) PackageName() string {
	if i.Alias != "" {
		return i.Alias
	}
	base := path.Base(i.Path)
	if isMajorVersion(base) && path.Dir(i.Path) != "." {
		base = path.Base(path.Dir(i.Path))
	}
	// gopkg.in/yaml.v3 and friends.
	if idx := strings.Index(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FindTypeAfterGenerateDirective finds the struct type declared immediately after a go:generate directive.
func FindTypeAfterGenerateDirective(dir, filename, generatorName string) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filepath.Join(dir, filename), nil, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parsing file: %w", err)
	}
	for _, decl := range f.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE || genDecl.Doc == nil {
			continue
		}
		if !hasDirective(genDecl.Doc, generatorName) {
			continue
		}
		if name := firstStruct(genDecl.Specs, func(*ast.TypeSpec) bool { return true }); name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("no struct type found after go:generate %s directive", generatorName)
}

// FindTypeAfterLine finds the struct type declared immediately after the given line number.
func FindTypeAfterLine(filename string, lineNum int) (string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parsing file: %w", err)
	}
	after := func(ts *ast.TypeSpec) bool { return fset.Position(ts.Pos()).Line > lineNum }
	for _, decl := range f.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		if name := firstStruct(genDecl.Specs, after); name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("no struct type found after line %d", lineNum)
}

func hasDirective(doc *ast.CommentGroup, generatorName string) bool {
	for _, comment := range doc.List {
		if strings.Contains(comment.Text, "go:generate") && strings.Contains(comment.Text, generatorName) {
			return true
		}
	}
	return false
}

func firstStruct(specs []ast.Spec, match func(*ast.TypeSpec) bool) string {
	for _, spec := range specs {
		typeSpec, ok := spec.(*ast.TypeSpec)
		if !ok || !match(typeSpec) {
			continue
		}
		if _, ok := typeSpec.Type.(*ast.StructType); ok {
			return typeSpec.Name.Name
		}
	}
	return ""
}
