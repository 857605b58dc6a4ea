// Package is implements the value equality used by generated records.
//
// Equal compares two arbitrary values in a fixed order of precedence:
//
//  1. identical values, or two NaNs, are equal
//  2. a nil value is only equal to another nil
//  3. values that both expose a raw value (Valuer or driver.Valuer) are
//     replaced by it and checked again under rules 1 and 2, with extracted
//     []byte values compared by content
//  4. values that both expose a custom equality method are equal when the
//     first one says so
//
// Anything else is unequal. There is no recursive, field-by-field fallback:
// field types that want structural equality provide it themselves.
package is

import (
	"bytes"
	"database/sql/driver"
	"math"
	"math/cmplx"
	"reflect"
)

// Equaler is implemented by values with a domain-specific notion of equality.
// Generated records implement it, so records can be nested in records.
type Equaler interface {
	Equals(other any) bool
}

// Valuer is implemented by wrapper values that compare by an underlying
// primitive rather than by themselves.
type Valuer interface {
	RawValue() any
}

// Equal reports whether a and b are the same value. It never panics on its
// own account; custom equality methods are called as they are.
func Equal(a, b any) bool {
	if same(a, b) {
		return true
	}
	if empty(a) || empty(b) {
		return false
	}
	if ra, ok := raw(a); ok {
		if rb, ok := raw(b); ok {
			a, b = ra, rb
			if same(a, b) || sameBytes(a, b) {
				return true
			}
			if empty(a) || empty(b) {
				return false
			}
		}
	}
	return custom(a, b)
}

func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if isNaN(va) && isNaN(vb) {
		return true
	}
	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	}
	// Comparable checks the dynamic contents, so interface fields holding
	// slices do not reach Equal.
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

// sameBytes compares extracted []byte values by content.
func sameBytes(a, b any) bool {
	ba, ok := a.([]byte)
	if !ok {
		return false
	}
	bb, ok := b.([]byte)
	return ok && bytes.Equal(ba, bb)
}

func isNaN(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(v.Float())
	case reflect.Complex64, reflect.Complex128:
		return cmplx.IsNaN(v.Complex())
	}
	return false
}

func empty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func raw(v any) (any, bool) {
	switch t := v.(type) {
	case Valuer:
		return t.RawValue(), true
	case driver.Valuer:
		r, err := t.Value()
		if err != nil {
			return nil, false
		}
		return r, true
	}
	return nil, false
}

var boolType = reflect.TypeOf(false)

func custom(a, b any) bool {
	if ea, ok := a.(Equaler); ok {
		if _, ok := b.(Equaler); ok {
			return ea.Equals(b)
		}
		return false
	}
	// Equal(T) bool, as on time.Time.
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	ma, ok := va.Type().MethodByName("Equal")
	if !ok {
		return false
	}
	if _, ok := vb.Type().MethodByName("Equal"); !ok {
		return false
	}
	mt := ma.Type
	if mt.IsVariadic() || mt.NumIn() != 2 || mt.NumOut() != 1 || mt.Out(0) != boolType {
		return false
	}
	if !vb.Type().AssignableTo(mt.In(1)) {
		return false
	}
	return ma.Func.Call([]reflect.Value{va, vb})[0].Bool()
}
