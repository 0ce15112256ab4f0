// Package rison implements a codec for Rison, a URL-friendly
// serialization format that represents the same value space as JSON
// (null, booleans, numbers, strings, arrays, objects) using syntax that
// needs no percent-encoding in common cases.
//
//	s, _ := rison.Marshal(map[string]any{"a": 1, "b": []any{true, nil}})
//	// s == "(a:1,b:!(!t,!n))"
//
//	var v rison.Value
//	_ = rison.UnmarshalString("(a:1,b:!(!t,!n))", &v)
//
// See https://github.com/rison-rs (the reference implementation this
// package follows) for the wire grammar in full.
package rison

import (
	"fmt"
	"strings"
)

// Kind identifies which of the six Rison value kinds a Value holds.
type Kind int

// The Rison value kinds. This is the whole abstract value space; it has
// identical cardinality to JSON.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject

	numKinds
)

var kindStrings = [numKinds]string{
	"<null>",
	"<bool>",
	"<number>",
	"<string>",
	"<array>",
	"<object>",
}

// String returns a human-readable name for k, or "<unknown>" for an
// out-of-range value.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}

// Value is a decoded (or to-be-encoded) Rison value. The zero Value is
// null. Values are ephemeral: there is no shared or mutable state once
// constructed, so a Value may be freely copied or handed across
// goroutines.
type Value struct {
	kind Kind
	num  float64
	str  string
	bol  bool
	arr  []*Value
	obj  []member
}

type member struct {
	key string
	val *Value
}

// Null returns the null value.
func Null() *Value { return &Value{} }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, bol: b} }

// Number returns a numeric value.
func Number(n float64) *Value { return &Value{kind: KindNumber, num: n} }

// String returns a string value.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// Array returns an array value wrapping elems. elems is not copied.
func Array(elems ...*Value) *Value { return &Value{kind: KindArray, arr: elems} }

// Object builds an object value, preserving the order keys are passed
// in. Rison imposes no key ordering (spec §3), so callers that care
// about deterministic output should sort ahead of time.
func Object() *ObjectBuilder { return &ObjectBuilder{v: &Value{kind: KindObject}} }

// ObjectBuilder incrementally builds an object Value.
type ObjectBuilder struct{ v *Value }

// Set appends a key/value pair, in call order, and returns the builder
// for chaining.
func (b *ObjectBuilder) Set(key string, val *Value) *ObjectBuilder {
	b.v.obj = append(b.v.obj, member{key, val})
	return b
}

// Value returns the built object.
func (b *ObjectBuilder) Value() *Value { return b.v }

// Kind reports the value's kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// AsNull succeeds if v is null and returns ErrType otherwise. It carries
// no payload and is included for symmetry with the other As* accessors.
func (v *Value) AsNull() (struct{}, error) {
	if v.Kind() == KindNull {
		return struct{}{}, nil
	}
	return struct{}{}, fmt.Errorf("%w: value is %v, not null", ErrType, v.Kind())
}

// AsBool extracts a boolean. Returns ErrType if v is not a bool.
func (v *Value) AsBool() (bool, error) {
	if v.Kind() == KindBool {
		return v.bol, nil
	}
	return false, fmt.Errorf("%w: value is %v, not bool", ErrType, v.Kind())
}

// AsFloat64 extracts a number as a float64. Returns ErrType if v is not
// a number.
func (v *Value) AsFloat64() (float64, error) {
	if v.Kind() == KindNumber {
		return v.num, nil
	}
	return 0, fmt.Errorf("%w: value is %v, not number", ErrType, v.Kind())
}

// AsInt64 extracts a number as a range-checked int64. Returns ErrType if
// v is not a number, and ErrRange if the number has no exact int64
// representation (a fraction, or magnitude beyond int64's range).
func (v *Value) AsInt64() (int64, error) {
	f, err := v.AsFloat64()
	if err != nil {
		return 0, err
	}
	i := int64(f)
	if float64(i) != f {
		return 0, fmt.Errorf("%w: %v has no exact int64 representation", ErrRange, f)
	}
	return i, nil
}

// AsString extracts a string. Returns ErrType if v is not a string.
func (v *Value) AsString() (string, error) {
	if v.Kind() == KindString {
		return v.str, nil
	}
	return "", fmt.Errorf("%w: value is %v, not string", ErrType, v.Kind())
}

// AsArray extracts an array's elements. Returns ErrType if v is not an
// array.
func (v *Value) AsArray() ([]*Value, error) {
	if v.Kind() == KindArray {
		return v.arr, nil
	}
	return nil, fmt.Errorf("%w: value is %v, not array", ErrType, v.Kind())
}

// AsObject extracts an object as a map. Key order is not preserved;
// use Members to walk entries in wire order. Returns ErrType if v is
// not an object.
func (v *Value) AsObject() (map[string]*Value, error) {
	if v.Kind() != KindObject {
		return nil, fmt.Errorf("%w: value is %v, not object", ErrType, v.Kind())
	}
	m := make(map[string]*Value, len(v.obj))
	for _, p := range v.obj {
		m[p.key] = p.val
	}
	return m, nil
}

// Member is one key/value pair of an object, in wire order.
type Member struct {
	Key   string
	Value *Value
}

// Members returns an object's key/value pairs in wire order. Returns
// ErrType if v is not an object.
func (v *Value) Members() ([]Member, error) {
	if v.Kind() != KindObject {
		return nil, fmt.Errorf("%w: value is %v, not object", ErrType, v.Kind())
	}
	out := make([]Member, len(v.obj))
	for i, p := range v.obj {
		out[i] = Member{p.key, p.val}
	}
	return out, nil
}

// Index is a fluent accessor for array elements. Out-of-range indices
// and non-array values both yield null rather than an error or panic,
// so chained lookups (val.Index(0).Key("x").Index(1)) can drill into a
// tree without intermediate error checks.
func (v *Value) Index(i int) *Value {
	if v.Kind() != KindArray || i < 0 || i >= len(v.arr) {
		return Null()
	}
	return v.arr[i]
}

// Key is a fluent accessor for object members. A missing key or a
// non-object value both yield null; see Index.
func (v *Value) Key(k string) *Value {
	if v.Kind() != KindObject {
		return Null()
	}
	for _, p := range v.obj {
		if p.key == k {
			return p.val
		}
	}
	return Null()
}

// String renders v as Rison text. It never fails: the Value tree was
// either built by the decoder (which only accepts well-formed input) or
// by hand through the constructors above, which admit no invalid state.
func (v *Value) String() string {
	var buf strings.Builder
	enc := NewEncoder(&buf)
	_ = enc.encodeValue(v)
	return buf.String()
}

// GoString makes *Value print as Rison text under %#v / fmt's debug
// verbs too, which is friendlier than the default struct dump for a
// type whose fields are all private.
func (v *Value) GoString() string { return v.String() }
