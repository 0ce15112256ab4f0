package rison_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/rison"
)

func TestValueAccessorsMismatchedKind(t *testing.T) {
	v := rison.String("x")
	_, err := v.AsBool()
	require.Error(t, err)
	assert.ErrorIs(t, err, rison.ErrType)
}

func TestValueAsInt64RangeCheck(t *testing.T) {
	v := rison.Number(1.5)
	_, err := v.AsInt64()
	require.Error(t, err)
	assert.ErrorIs(t, err, rison.ErrRange)

	whole := rison.Number(42)
	i, err := whole.AsInt64()
	require.NoError(t, err)
	assert.EqualValues(t, 42, i)
}

func TestValueIndexAndKeyNeverFail(t *testing.T) {
	v := rison.String("x")
	assert.Equal(t, rison.KindNull, v.Index(0).Kind())
	assert.Equal(t, rison.KindNull, v.Key("missing").Kind())

	arr := rison.Array(rison.Number(1), rison.Number(2))
	assert.Equal(t, rison.KindNull, arr.Index(5).Kind())
}

func TestValueMembersPreservesWireOrder(t *testing.T) {
	obj := rison.Object().
		Set("z", rison.Number(1)).
		Set("a", rison.Number(2)).
		Value()

	members, err := obj.Members()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "z", members[0].Key)
	assert.Equal(t, "a", members[1].Key)
}

func TestValueGoStringMatchesString(t *testing.T) {
	v := rison.Bool(true)
	assert.Equal(t, v.String(), v.GoString())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "<array>", rison.KindArray.String())
	assert.Equal(t, "<unknown>", rison.Kind(99).String())
}
