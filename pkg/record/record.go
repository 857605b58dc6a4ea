// Package record holds the runtime shared by generated record types: the
// ordered update description passed to Derive, and the derive engine that
// decides whether an update changes anything at all.
package record

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/bobcob7/record-gen/pkg/is"
)

var (
	// ErrUnknownField is returned when an update names a field the record does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldType is returned when an update value does not fit the field's type.
	ErrFieldType = errors.New("field type mismatch")
)

// Fielder exposes the fields of a record by name.
type Fielder interface {
	// Fields returns the field names in declaration order.
	Fields() []string
	// Field returns the current value of the named field.
	Field(name string) (any, bool)
}

// Derive applies u to src. It reports false when u is empty or every value
// in it is equal to the current one, in which case the caller keeps src.
// Otherwise it returns the merged field values in declaration order.
//
// Keys are compared in update order and the scan stops at the first real
// change. Keys that src does not have are rejected before any comparison.
func Derive(src Fielder, u *Update) ([]any, bool, error) {
	if u.Len() == 0 {
		return nil, false, nil
	}
	for _, k := range u.keys {
		if _, ok := src.Field(k); !ok {
			return nil, false, fmt.Errorf("%w %q", ErrUnknownField, k)
		}
	}
	unchanged := true
	for _, k := range u.keys {
		current, _ := src.Field(k)
		proposed := u.values[k]
		if alreadyNil(current, proposed) {
			continue
		}
		if !is.Equal(current, proposed) {
			unchanged = false
			break
		}
	}
	if unchanged {
		return nil, false, nil
	}
	fields := src.Fields()
	values := make([]any, len(fields))
	for i, name := range fields {
		if v, ok := u.Get(name); ok {
			values[i] = v
			continue
		}
		values[i], _ = src.Field(name)
	}
	return values, true, nil
}

// As converts a merged field value back to the field's type. An untyped nil
// becomes the zero value of nilable types.
func As[T any](field string, v any) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	var zero T
	typ := reflect.TypeFor[T]()
	if v == nil && nilable(typ) {
		return zero, nil
	}
	return zero, fmt.Errorf("%w: %s wants %s, got %T", ErrFieldType, field, typ, v)
}

// alreadyNil reports whether an untyped nil is proposed for a field whose
// current value is a typed nil. is.Equal tells the two apart, Derive does not.
func alreadyNil(current, proposed any) bool {
	if proposed != nil {
		return false
	}
	if current == nil {
		return true
	}
	v := reflect.ValueOf(current)
	return nilable(v.Type()) && v.IsNil()
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}
