package rison

import (
	"fmt"
	"reflect"
)

// Unmarshal decodes data into v, which must be a non-nil pointer. This
// is the two-pass convenience path built on top of the low-level
// Decoder/Visitor machinery: it parses into a *Value tree with
// ParseValue, then walks the tree into v by reflection, the same shape
// ccl.go's Unmarshal takes (parse once, then unpack field by field with
// range-checked numeric coercion) rather than driving the reflect walk
// directly off the byte stream.
func Unmarshal(data []byte, v any) error {
	val, err := ParseValue(data)
	if err != nil {
		return err
	}
	return unmarshalValue(val, v)
}

// UnmarshalString is Unmarshal over a string.
func UnmarshalString(s string, v any) error {
	return Unmarshal([]byte(s), v)
}

func unmarshalValue(src *Value, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return decodeMessage(0, "Unmarshal target must be a non-nil pointer, got %T", dst)
	}
	return unpackVal(src, rv.Elem())
}

// unpackVal dispatches on dst's static Go type, the generalization of
// ccl.go's unpackVal to Rison's six-kind value space plus this
// package's Value/*Value/Char escape hatches. Tagged gets no special
// handling here; it unpacks like any other struct (fields Tag, Value).
func unpackVal(src *Value, dst reflect.Value) error {
	if dst.Type() == reflect.TypeOf(Value{}) {
		dst.Set(reflect.ValueOf(*src))
		return nil
	}
	if dst.Kind() == reflect.Pointer {
		if src.Kind() == KindNull {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return unpackVal(src, dst.Elem())
	}

	switch dst.Kind() {
	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return decodeMessage(0, "cannot unmarshal into non-empty interface %s", dst.Type())
		}
		gv, err := toGoValue(src)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(gv))
		return nil
	case reflect.Bool:
		b, err := src.AsBool()
		if err != nil {
			return err
		}
		dst.SetBool(b)
		return nil
	case reflect.String:
		s, err := src.AsString()
		if err != nil {
			return err
		}
		dst.SetString(s)
		return nil
	case reflect.Int32:
		if dst.Type() == reflect.TypeOf(Char(0)) {
			s, err := src.AsString()
			if err != nil {
				return err
			}
			r := []rune(s)
			if len(r) != 1 {
				return decodeMessage(0, "expected a single character, got %q", s)
			}
			dst.Set(reflect.ValueOf(Char(r[0])))
			return nil
		}
		return unpackInt(src, dst)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64:
		return unpackInt(src, dst)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unpackUint(src, dst)
	case reflect.Float32, reflect.Float64:
		f, err := src.AsFloat64()
		if err != nil {
			return err
		}
		dst.SetFloat(f)
		return nil
	case reflect.Slice:
		return unpackSlice(src, dst)
	case reflect.Array:
		return unpackArray(src, dst)
	case reflect.Map:
		return unpackMap(src, dst)
	case reflect.Struct:
		return unpackStruct(src, dst)
	default:
		return decodeMessage(0, "cannot unmarshal into unsupported type %s", dst.Type())
	}
}

// unpackInt is the range-checked signed-integer coercion ccl.go performs
// via intLimits, generalized here off AsInt64's exact-round-trip check.
func unpackInt(src *Value, dst reflect.Value) error {
	i, err := src.AsInt64()
	if err != nil {
		return err
	}
	if dst.OverflowInt(i) {
		return fmt.Errorf("%w: %d overflows %s", ErrRange, i, dst.Type())
	}
	dst.SetInt(i)
	return nil
}

func unpackUint(src *Value, dst reflect.Value) error {
	i, err := src.AsInt64()
	if err != nil {
		return err
	}
	if i < 0 {
		return fmt.Errorf("%w: %d is negative, cannot fit in %s", ErrRange, i, dst.Type())
	}
	u := uint64(i)
	if dst.OverflowUint(u) {
		return fmt.Errorf("%w: %d overflows %s", ErrRange, u, dst.Type())
	}
	dst.SetUint(u)
	return nil
}

func unpackSlice(src *Value, dst reflect.Value) error {
	if dst.Type().Elem().Kind() == reflect.Uint8 {
		elems, err := src.AsArray()
		if err != nil {
			return err
		}
		out := make([]byte, len(elems))
		for i, e := range elems {
			n, err := e.AsInt64()
			if err != nil {
				return err
			}
			if n < 0 || n > 255 {
				return fmt.Errorf("%w: byte element %d out of range", ErrRange, n)
			}
			out[i] = byte(n)
		}
		dst.SetBytes(out)
		return nil
	}
	elems, err := src.AsArray()
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
	for i, e := range elems {
		if err := unpackVal(e, out.Index(i)); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

func unpackArray(src *Value, dst reflect.Value) error {
	elems, err := src.AsArray()
	if err != nil {
		return err
	}
	if len(elems) != dst.Len() {
		return decodeMessage(0, "array length mismatch: got %d, want %d", len(elems), dst.Len())
	}
	for i, e := range elems {
		if err := unpackVal(e, dst.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func unpackMap(src *Value, dst reflect.Value) error {
	members, err := src.Members()
	if err != nil {
		return err
	}
	if dst.Type().Key().Kind() != reflect.String {
		return decodeMessage(0, "map key type %s must be a string", dst.Type().Key())
	}
	out := reflect.MakeMapWithSize(dst.Type(), len(members))
	elemType := dst.Type().Elem()
	for _, m := range members {
		ev := reflect.New(elemType).Elem()
		if err := unpackVal(m.Value, ev); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(m.Key).Convert(dst.Type().Key()), ev)
	}
	dst.Set(out)
	return nil
}

// unpackStruct matches object members to exported fields by name
// (honoring the "rison" struct tag the same way encodeStruct writes
// it), the direct analogue of ccl.go's fieldMap-driven unpackStruct.
func unpackStruct(src *Value, dst reflect.Value) error {
	members, err := src.Members()
	if err != nil {
		return err
	}
	t := dst.Type()
	fieldByName := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, _, skip := fieldTag(f)
		if skip {
			continue
		}
		fieldByName[name] = i
	}
	for _, m := range members {
		idx, ok := fieldByName[m.Key]
		if !ok {
			continue // unknown fields are ignored, matching encoding/json's default
		}
		if err := unpackVal(m.Value, dst.Field(idx)); err != nil {
			return err
		}
	}
	return nil
}

// toGoValue converts src into the "any" shape Unmarshal produces when
// the destination is interface{}: the same default mapping
// encoding/json uses (bool, float64, string, []any, map[string]any),
// substituting nil for null.
func toGoValue(src *Value) (any, error) {
	switch src.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		return src.AsBool()
	case KindNumber:
		return src.AsFloat64()
	case KindString:
		return src.AsString()
	case KindArray:
		elems, _ := src.AsArray()
		out := make([]any, len(elems))
		for i, e := range elems {
			gv, err := toGoValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = gv
		}
		return out, nil
	case KindObject:
		members, _ := src.Members()
		out := make(map[string]any, len(members))
		for _, m := range members {
			gv, err := toGoValue(m.Value)
			if err != nil {
				return nil, err
			}
			out[m.Key] = gv
		}
		return out, nil
	default:
		return nil, decodeMessage(0, "unknown value kind")
	}
}
