package record

import "slices"

// Update is a partial mapping from field names to proposed values. Keys keep
// the order in which they were first set. The zero value is an empty update.
//
// An Update is a builder: it is not safe for concurrent modification.
type Update struct {
	keys   []string
	values map[string]any
}

// Set proposes v as the new value of the named field. Setting a key again
// replaces its value but keeps its position.
func (u *Update) Set(name string, v any) {
	if u.values == nil {
		u.values = make(map[string]any)
	}
	if _, ok := u.values[name]; !ok {
		u.keys = append(u.keys, name)
	}
	u.values[name] = v
}

// Has reports whether the named field is part of the update.
func (u *Update) Has(name string) bool {
	if u == nil {
		return false
	}
	_, ok := u.values[name]
	return ok
}

// Get returns the proposed value of the named field.
func (u *Update) Get(name string) (any, bool) {
	if u == nil {
		return nil, false
	}
	v, ok := u.values[name]
	return v, ok
}

// Keys returns the field names in the order they were first set.
func (u *Update) Keys() []string {
	if u == nil {
		return nil
	}
	return slices.Clone(u.keys)
}

// Len returns the number of fields in the update.
func (u *Update) Len() int {
	if u == nil {
		return 0
	}
	return len(u.keys)
}
