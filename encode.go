package rison

import (
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/mcvoid/rison/internal/escape"
	"github.com/mcvoid/rison/internal/numfmt"
)

// Marshal encodes v as Rison text. v may be a *Value, any primitive Go
// kind, a slice/array, a map (whose keys must encode as strings — see
// KeyMustBeAString), a struct, or a pointer/interface wrapping one of
// those (nil encodes as null, the "Option" production of spec.md §4.5).
func Marshal(v any) (string, error) {
	var buf strings.Builder
	enc := NewEncoder(&buf)
	if err := enc.encodeValue(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Encoder is a stateful, single-use serializer holding an output
// buffer. Its methods implement the per-kind productions of spec.md
// §4.5; element separation (a comma before every element but the
// first) is handled locally by each composite-encoding method rather
// than a shared sub-serializer, since Go has no trait object to carry
// that state across calls the way the reference SeqSerializer does.
type Encoder struct {
	buf *strings.Builder
}

// NewEncoder creates an Encoder writing into buf.
func NewEncoder(buf *strings.Builder) *Encoder { return &Encoder{buf: buf} }

func (e *Encoder) encodeValue(v any) error {
	switch x := v.(type) {
	case nil:
		e.buf.WriteString("!n")
		return nil
	case *Value:
		return e.encodeRisonValue(x)
	case Char:
		escape.WriteString(e.buf, string(rune(x)))
		return nil
	case Tagged:
		return e.encodeTagged(x)
	case bool:
		return e.encodeBool(x)
	case string:
		escape.WriteString(e.buf, x)
		return nil
	case []byte:
		return e.encodeByteSlice(x)
	}
	return e.encodeReflect(reflect.ValueOf(v))
}

func (e *Encoder) encodeBool(v bool) error {
	if v {
		e.buf.WriteString("!t")
	} else {
		e.buf.WriteString("!f")
	}
	return nil
}

func (e *Encoder) encodeTagged(t Tagged) error {
	e.buf.WriteByte('(')
	if err := e.encodeKey(t.Tag); err != nil {
		return err
	}
	e.buf.WriteByte(':')
	if err := e.encodeValue(t.Value); err != nil {
		return err
	}
	e.buf.WriteByte(')')
	return nil
}

// encodeByteSlice implements spec.md §4.5's "Bytes: emit as an array of
// u8 elements" production (confirmed against the reference test suite's
// to_string(&[u8]) == "!(97,98,...)" rather than treating bytes as text).
func (e *Encoder) encodeByteSlice(b []byte) error {
	e.buf.WriteString("!(")
	for i, c := range b {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteString(numfmt.FormatUint(uint64(c)))
	}
	e.buf.WriteByte(')')
	return nil
}

func (e *Encoder) encodeRisonValue(v *Value) error {
	switch v.Kind() {
	case KindNull:
		e.buf.WriteString("!n")
	case KindBool:
		return e.encodeBool(v.bol)
	case KindNumber:
		return e.encodeFloat64(v.num)
	case KindString:
		escape.WriteString(e.buf, v.str)
	case KindArray:
		e.buf.WriteString("!(")
		for i, elem := range v.arr {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.encodeRisonValue(elem); err != nil {
				return err
			}
		}
		e.buf.WriteByte(')')
	case KindObject:
		e.buf.WriteByte('(')
		for i, m := range v.obj {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.encodeKey(m.key); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if err := e.encodeRisonValue(m.val); err != nil {
				return err
			}
		}
		e.buf.WriteByte(')')
	}
	return nil
}

func (e *Encoder) encodeFloat64(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		e.buf.WriteString("!n")
		return nil
	}
	e.buf.WriteString(numfmt.FormatFloat(v))
	return nil
}

func (e *Encoder) encodeFloat32(v float32) error {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.buf.WriteString("!n")
		return nil
	}
	e.buf.WriteString(numfmt.FormatFloat32(v))
	return nil
}

// encodeReflect walks an arbitrary Go value, generalizing the
// reference Serializer's per-primitive-type dispatch (spec.md §4.5)
// across reflect.Kind the way encoding/json's encoder does, since Go
// has no serde-style derive macro to do this ahead of time.
func (e *Encoder) encodeReflect(rv reflect.Value) error {
	if !rv.IsValid() {
		e.buf.WriteString("!n")
		return nil
	}

	switch rv.Kind() {
	case reflect.Invalid:
		e.buf.WriteString("!n")
		return nil
	case reflect.Pointer, reflect.Interface:
		// None / unit -> null; Some(v) is transparent, matching spec.md
		// §4.5's Option production.
		if rv.IsNil() {
			e.buf.WriteString("!n")
			return nil
		}
		return e.encodeReflect(rv.Elem())
	case reflect.Bool:
		return e.encodeBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(numfmt.FormatInt(rv.Int()))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.buf.WriteString(numfmt.FormatUint(rv.Uint()))
		return nil
	case reflect.Float32:
		return e.encodeFloat32(float32(rv.Float()))
	case reflect.Float64:
		return e.encodeFloat64(rv.Float())
	case reflect.String:
		escape.WriteString(e.buf, rv.String())
		return nil
	case reflect.Slice:
		if rv.IsNil() {
			e.buf.WriteString("!n")
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.encodeByteSlice(rv.Bytes())
		}
		return e.encodeSeq(rv)
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return e.encodeByteSlice(b)
		}
		return e.encodeSeq(rv)
	case reflect.Map:
		return e.encodeMap(rv)
	case reflect.Struct:
		return e.encodeStruct(rv)
	default:
		return encodeMessage("unsupported type %s", rv.Type())
	}
}

// encodeSeq implements spec.md §4.5's "Sequence / tuple / tuple-struct:
// emit !( e0 , e1 , … )".
func (e *Encoder) encodeSeq(rv reflect.Value) error {
	e.buf.WriteString("!(")
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.encodeReflect(rv.Index(i)); err != nil {
			return err
		}
	}
	e.buf.WriteByte(')')
	return nil
}

// encodeMap implements spec.md §4.5's "Map / struct: emit
// ( k0 : v0 , k1 : v1 , … )". Keys are sorted for deterministic output
// since a Go map carries no inherent order to preserve (unlike a
// struct's field order, which is already fixed by declaration and is
// walked as-is in encodeStruct).
func (e *Encoder) encodeMap(rv reflect.Value) error {
	if rv.IsNil() {
		e.buf.WriteString("!n")
		return nil
	}
	keys := rv.MapKeys()
	rendered := make([]string, len(keys))
	for i, k := range keys {
		s, err := e.renderKey(k)
		if err != nil {
			return err
		}
		rendered[i] = s
	}
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return rendered[order[i]] < rendered[order[j]] })

	e.buf.WriteByte('(')
	for i, idx := range order {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteString(rendered[idx])
		e.buf.WriteByte(':')
		if err := e.encodeReflect(rv.MapIndex(keys[idx])); err != nil {
			return err
		}
	}
	e.buf.WriteByte(')')
	return nil
}

// renderKey runs a map key through the key encoder in isolation so its
// rendered text can be used both as the emitted token and as the sort
// key, without writing it to the output buffer twice.
func (e *Encoder) renderKey(k reflect.Value) (string, error) {
	var buf strings.Builder
	sub := NewEncoder(&buf)
	if err := sub.encodeKeyReflect(k); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Encoder) encodeStruct(rv reflect.Value) error {
	t := rv.Type()
	e.buf.WriteByte('(')
	first := true
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		name, omitempty, skip := fieldTag(field)
		if skip {
			continue
		}
		fv := rv.Field(i)
		if omitempty && isEmptyValue(fv) {
			continue
		}
		if !first {
			e.buf.WriteByte(',')
		}
		first = false
		if err := e.encodeKey(name); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if err := e.encodeReflect(fv); err != nil {
			return err
		}
	}
	e.buf.WriteByte(')')
	return nil
}

func fieldTag(field reflect.StructField) (name string, omitempty bool, skip bool) {
	name = field.Name
	tag, ok := field.Tag.Lookup("rison")
	if !ok {
		return name, false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] == "-" {
		return "", false, true
	}
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// encodeKey writes s as a map/object key through the string escaper,
// the Go-string-specific fast path of the key serializer (spec.md
// §4.6). Struct field names and explicit Tagged tags are always plain
// Go strings, so they never hit KeyMustBeAString.
func (e *Encoder) encodeKey(s string) error {
	escape.WriteString(e.buf, s)
	return nil
}

// encodeKeyReflect is the restricted serializer mode of spec.md §4.6:
// only string-producing kinds are accepted as a map key. Everything
// else — bool, numbers, slices, maps, structs — is rejected with
// KeyMustBeAString, matching the reference ser.rs key-serializer
// contract (there implemented as a distinct SerializeMap::serialize_key
// surface; here as a narrower reflect.Kind switch reusing the same
// buffer).
func (e *Encoder) encodeKeyReflect(rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return keyMustBeAString()
		}
		rv = rv.Elem()
	}
	if rv.Type() == reflect.TypeOf(Char(0)) {
		// char is in §4.6's accepted-key set alongside str, distinct from
		// a plain integer kind.
		escape.WriteString(e.buf, string(rune(rv.Int())))
		return nil
	}
	switch rv.Kind() {
	case reflect.String:
		escape.WriteString(e.buf, rv.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// A unit-variant-like named integer (e.g. a Stringer-less enum)
		// still must be string-valued to be a key; bare integer keys are
		// not strings and are rejected, matching the Rust crate where an
		// integer key type simply never implements the "is a string"
		// subset of Serialize that the key serializer accepts.
		return keyMustBeAString()
	default:
		return keyMustBeAString()
	}
}
