package rison_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/rison"
)

func TestDecodeScenarios(t *testing.T) {
	t.Run("D1 true", func(t *testing.T) {
		v, err := rison.ParseValueString("!t")
		require.NoError(t, err)
		b, err := v.AsBool()
		require.NoError(t, err)
		assert.True(t, b)
	})

	t.Run("D2 false", func(t *testing.T) {
		v, err := rison.ParseValueString("!f")
		require.NoError(t, err)
		b, err := v.AsBool()
		require.NoError(t, err)
		assert.False(t, b)
	})

	t.Run("D3 invalid escape", func(t *testing.T) {
		_, err := rison.ParseValueString("!x")
		require.Error(t, err)
		var de *rison.DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, rison.InvalidEscape, de.Code)
		assert.Equal(t, byte('x'), de.Seen)
		assert.Equal(t, 1, de.Position)
	})

	t.Run("D4 eof parsing fraction", func(t *testing.T) {
		_, err := rison.ParseValueString("0.")
		require.Error(t, err)
		assert.ErrorIs(t, err, rison.ErrEofWhileParsingValue)
	})

	t.Run("D5 leading zero run is invalid", func(t *testing.T) {
		_, err := rison.ParseValueString("00")
		require.Error(t, err)
		assert.ErrorIs(t, err, rison.ErrInvalidNumber)
	})

	t.Run("D6 empty input requesting bool", func(t *testing.T) {
		dec := rison.NewDecoder(nil)
		_, err := dec.DecodeBool()
		require.Error(t, err)
		assert.ErrorIs(t, err, rison.ErrEofWhileParsingValue)
	})
}

func TestDecodeArrayAndObject(t *testing.T) {
	v, err := rison.ParseValueString("!((a:A))")
	require.NoError(t, err)
	elems, err := v.AsArray()
	require.NoError(t, err)
	require.Len(t, elems, 1)
	s, err := elems[0].Key("a").AsString()
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}

func TestDecodeQuotedStringEscapes(t *testing.T) {
	v, err := rison.ParseValueString("'I!'m not a JSON!!'")
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "I'm not a JSON!", s)
}

func TestRoundTrip(t *testing.T) {
	cases := []any{
		nil,
		true,
		false,
		int64(0),
		int64(-2147483648),
		"hello",
		"I'm not a JSON!",
		"1",
		[]any{},
		[]any{int64(1), nil, "x"},
		map[string]any{},
		map[string]any{"a": int64(1), "b": []any{true, nil}},
	}
	for _, want := range cases {
		s, err := rison.Marshal(want)
		require.NoError(t, err)

		var got any
		require.NoError(t, rison.UnmarshalString(s, &got))

		if want == nil {
			assert.Nil(t, got)
			continue
		}
		wv := toComparable(want)
		if diff := cmp.Diff(wv, got); diff != "" {
			t.Errorf("round trip mismatch for %v (-want +got):\n%s", want, diff)
		}
	}
}

// toComparable reshapes the quantified property's input values (which
// use Go int64 literals for convenience) into the float64 shape
// Unmarshal-into-interface{} always produces, since Rison's only
// numeric kind is a float.
func toComparable(v any) any {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = toComparable(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = toComparable(e)
		}
		return out
	default:
		return v
	}
}

func TestIdempotentReencode(t *testing.T) {
	inputs := []string{"hello", "I'm not a JSON!", "1", "\t", ""}
	for _, in := range inputs {
		first, err := rison.Marshal(in)
		require.NoError(t, err)
		v, err := rison.ParseValueString(first)
		require.NoError(t, err)
		second := v.String()
		assert.Equal(t, first, second)
	}
}

func TestErrorPositionBounds(t *testing.T) {
	inputs := []string{"!x", "00", "0.", "", "(a:1", "!(1,2"}
	for _, in := range inputs {
		_, err := rison.ParseValueString(in)
		require.Error(t, err)
		var de *rison.DecodeError
		if require.ErrorAs(t, err, &de) {
			assert.GreaterOrEqual(t, de.Position, 0)
			assert.LessOrEqual(t, de.Position, len(in))
		}
	}
}
