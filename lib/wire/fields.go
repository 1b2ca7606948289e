package wire

import (
	"fmt"
	"math"
	"strings"
)

/**
This package provides the shared plumbing for decoding the OpenSky API's
positional record format.

A record arrives either as a JSON array, where field identity is determined
solely by position, or as a keyed object using the canonical snake_case field
names. Some endpoints emit lowerCamelCase keys instead, so keyed lookups fall
back to that alias.
*/

type (
	// Fields reads one record in either of its two wire shapes. Callers supply
	// both the index into the array shape and the canonical field name; the
	// unused one is ignored depending on the shape.
	Fields struct {
		arr   []any
		obj   map[string]any
		keyed bool
	}
)

// Array wraps a record in its positional wire shape.
func Array(values []any) Fields {
	return Fields{arr: values}
}

// Object wraps a record in its keyed wire shape.
func Object(values map[string]any) Fields {
	return Fields{obj: values, keyed: true}
}

// Value returns the raw field value, or nil when the field is absent or wire
// null. The two cases are deliberately indistinguishable.
func (f Fields) Value(idx int, name string) any {
	if f.keyed {
		if v, ok := f.obj[name]; ok {
			return v
		}
		return f.obj[camelAlias(name)]
	}
	if idx >= 0 && idx < len(f.arr) {
		return f.arr[idx]
	}
	return nil
}

func (f Fields) index(idx int) int {
	if f.keyed {
		return -1
	}
	return idx
}

func (f Fields) fail(idx int, name, want string, got any) error {
	return &FieldError{Field: name, Index: f.index(idx), Want: want, Got: got}
}

// Req returns the raw value of a required field, failing on absence or null.
func (f Fields) Req(idx int, name string) (any, error) {
	v := f.Value(idx, name)
	if nil == v {
		return nil, f.fail(idx, name, "a value", nil)
	}
	return v, nil
}

func (f Fields) ReqString(idx int, name string) (string, error) {
	v := f.Value(idx, name)
	s, ok := v.(string)
	if !ok {
		return "", f.fail(idx, name, "string", v)
	}
	return s, nil
}

func (f Fields) OptString(idx int, name string) (*string, error) {
	v := f.Value(idx, name)
	if nil == v {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, f.fail(idx, name, "string or null", v)
	}
	return &s, nil
}

func (f Fields) ReqBool(idx int, name string) (bool, error) {
	v := f.Value(idx, name)
	b, ok := v.(bool)
	if !ok {
		return false, f.fail(idx, name, "boolean", v)
	}
	return b, nil
}

func (f Fields) ReqUint(idx int, name string) (uint64, error) {
	v := f.Value(idx, name)
	u, ok := AsUint(v)
	if !ok {
		return 0, f.fail(idx, name, "unsigned integer", v)
	}
	return u, nil
}

func (f Fields) OptUint(idx int, name string) (*uint64, error) {
	v := f.Value(idx, name)
	if nil == v {
		return nil, nil
	}
	u, ok := AsUint(v)
	if !ok {
		return nil, f.fail(idx, name, "unsigned integer or null", v)
	}
	return &u, nil
}

func (f Fields) ReqFloat(idx int, name string) (float64, error) {
	v := f.Value(idx, name)
	n, ok := v.(float64)
	if !ok {
		return 0, f.fail(idx, name, "number", v)
	}
	return n, nil
}

func (f Fields) OptFloat(idx int, name string) (*float64, error) {
	v := f.Value(idx, name)
	if nil == v {
		return nil, nil
	}
	n, ok := v.(float64)
	if !ok {
		return nil, f.fail(idx, name, "number or null", v)
	}
	return &n, nil
}

// OptUints reads an optional list of unsigned integers, e.g. receiver serial
// numbers. Null and absent both decode to nil.
func (f Fields) OptUints(idx int, name string) ([]uint64, error) {
	v := f.Value(idx, name)
	if nil == v {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, f.fail(idx, name, "array of unsigned integers or null", v)
	}
	out := make([]uint64, 0, len(arr))
	for _, item := range arr {
		u, ok := AsUint(item)
		if !ok {
			return nil, f.fail(idx, name, "array of unsigned integers", item)
		}
		out = append(out, u)
	}
	return out, nil
}

// AsUint reports v as an unsigned integer. JSON numbers arrive as float64, so
// anything negative or fractional is rejected.
func AsUint(v any) (uint64, bool) {
	n, ok := v.(float64)
	if !ok || n < 0 || n != math.Trunc(n) {
		return 0, false
	}
	return uint64(n), true
}

// camelAlias converts a canonical snake_case field name into the
// lowerCamelCase key some endpoints emit (first_seen -> firstSeen).
func camelAlias(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if "" == parts[i] {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}

type (
	// FieldError reports a field that violated its expected wire type. Index
	// is the position within the array shape, or -1 for the keyed shape.
	FieldError struct {
		Field string
		Index int
		Want  string
		Got   any
	}

	// LengthError reports a positional record with an unexpected number of
	// elements.
	LengthError struct {
		Want string
		Got  int
	}
)

func (e *FieldError) Error() string {
	got := "null"
	if nil != e.Got {
		got = fmt.Sprintf("%T", e.Got)
	}
	if e.Index >= 0 {
		return fmt.Sprintf("field %s (element %d): expected %s, got %s", e.Field, e.Index, e.Want, got)
	}
	return fmt.Sprintf("field %s: expected %s, got %s", e.Field, e.Want, got)
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("expected %s elements, got %d", e.Want, e.Got)
}
