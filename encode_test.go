package rison_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/rison"
	"github.com/mcvoid/rison/internal/numfmt"
)

func TestMarshalLiteralScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"unit", nil, "!n"},
		{"true", true, "!t"},
		{"i32 min", int32(math.MinInt32), "-2147483648"},
		{"f64 max", math.MaxFloat64, "1.7976931348623157e308"},
		{"char", rison.Char('!'), "'!!'"},
		{"quoted string", "I'm not a JSON!", "'I!'m not a JSON!!'"},
		{"empty array", []int32{}, "!()"},
		{"array with null", []any{1, nil}, "!(1,!n)"},
		{"empty object", map[string]any{}, "()"},
		{
			"quoted key and value",
			map[string]any{"I'm a key!": "I'm a value!"},
			"('I!'m a key!!':'I!'m a value!!')",
		},
		{"tagged union", rison.Tagged{Tag: "B", Value: []int{0, 1}}, "(B:!(0,1))"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rison.Marshal(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMarshalNestedObject(t *testing.T) {
	v := rison.Object().
		Set("key1", rison.Object().
			Set("1", rison.Array(
				rison.Object().Set("a", rison.String("A")).Value(),
			)).Value()).
		Set("key2", rison.Object().Value()).
		Value()

	got := v.String()
	// The "1" key is digit-first, so it falls in NOT_ID_START and must be
	// quoted — same rule TestMarshalDigitPrefixedStringIsQuoted checks for
	// string values, and the one the decoder itself enforces on the way in
	// (a bare digit-first key is InvalidChar, see decode.go's NotIDStart
	// check), so a bare "1:" here would not even round-trip.
	assert.Equal(t, "(key1:('1':!((a:A))),key2:())", got)
}

func TestMarshalCharKeyIsAccepted(t *testing.T) {
	s, err := rison.Marshal(map[rison.Char]int{'a': 1})
	require.NoError(t, err)
	assert.Equal(t, "(a:1)", s)
}

func TestMarshalMapKeyMustBeAString(t *testing.T) {
	type notAString struct{}
	_, err := rison.Marshal(map[notAString]int{{}: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, rison.ErrKeyMustBeAString)
}

func TestMarshalNonFiniteCollapsesToNull(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		s, err := rison.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, "!n", s)
	}
}

func TestMarshalBytesAsArrayOfU8(t *testing.T) {
	s, err := rison.Marshal([][]byte{[]byte("ab"), []byte("")})
	require.NoError(t, err)
	assert.Equal(t, "!(!(97,98),!())", s)
}

func TestMarshalDigitPrefixedStringIsQuoted(t *testing.T) {
	s, err := rison.Marshal("1")
	require.NoError(t, err)
	assert.Equal(t, "'1'", s)
}

func TestMarshalTabStaysBare(t *testing.T) {
	s, err := rison.Marshal("\t")
	require.NoError(t, err)
	assert.Equal(t, "\t", s)
}

func TestFormatFloatMatchesReference(t *testing.T) {
	assert.Equal(t, "1.0", numfmt.FormatFloat(1.0))
	assert.Equal(t, "1.1920929e-7", numfmt.FormatFloat32(float32(1.1920929e-7)))
}
