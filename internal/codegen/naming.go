package codegen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Exported returns name with its first letter upper-cased.
func Exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Unexported returns name with its first letter lower-cased, suffixed with
// an underscore when that turns it into a keyword.
func Unexported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	out := string(unicode.ToLower(r)) + name[size:]
	if token.IsKeyword(out) {
		out += "_"
	}
	return out
}

// IsExported reports whether name starts with an upper-case letter.
func IsExported(name string) bool {
	return token.IsExported(name)
}

// ConstructorName returns the constructor for a record type, keeping the
// record's visibility: Person gets NewPerson, person gets newPerson.
func ConstructorName(typeName string) string {
	if IsExported(typeName) {
		return "New" + typeName
	}
	return "new" + Exported(typeName)
}

// SplitTypeParam splits "K comparable" into its name and constraint. A bare
// name is constrained by any.
func SplitTypeParam(param string) (name, constraint string) {
	param = strings.TrimSpace(param)
	name, constraint, _ = strings.Cut(param, " ")
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		constraint = "any"
	}
	return name, constraint
}
