package rison_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/rison"
)

type address struct {
	City string `rison:"city"`
	Zip  string `rison:"zip,omitempty"`
}

type person struct {
	Name    string            `rison:"name"`
	Age     int               `rison:"age"`
	Tags    []string          `rison:"tags"`
	Address address           `rison:"address"`
	Meta    map[string]string `rison:"meta"`
}

func TestUnmarshalStruct(t *testing.T) {
	const wire = "(name:Ada,age:30,tags:!(math,computing),address:(city:London,zip:''),meta:(lang:en))"

	var p person
	require.NoError(t, rison.UnmarshalString(wire, &p))

	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, []string{"math", "computing"}, p.Tags)
	assert.Equal(t, "London", p.Address.City)
	assert.Equal(t, map[string]string{"lang": "en"}, p.Meta)
}

func TestMarshalUnmarshalStructRoundTrip(t *testing.T) {
	p := person{
		Name:    "Grace",
		Age:     85,
		Tags:    []string{"compilers"},
		Address: address{City: "Arlington"},
		Meta:    map[string]string{"branch": "navy"},
	}

	s, err := rison.Marshal(p)
	require.NoError(t, err)

	var got person
	require.NoError(t, rison.UnmarshalString(s, &got))
	assert.Equal(t, p, got)
}

func TestUnmarshalOverflowIsRangeError(t *testing.T) {
	var v int8
	err := rison.UnmarshalString("200", &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, rison.ErrRange)
}

func TestUnmarshalIntoInterface(t *testing.T) {
	var v any
	require.NoError(t, rison.UnmarshalString("!(1,!t,hello,!n)", &v))
	assert.Equal(t, []any{1.0, true, "hello", nil}, v)
}

func TestUnmarshalOmitemptyRoundTrip(t *testing.T) {
	a := address{City: "Paris"}
	s, err := rison.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, "(city:Paris)", s)

	var got address
	require.NoError(t, rison.UnmarshalString(s, &got))
	assert.Equal(t, a, got)
}
