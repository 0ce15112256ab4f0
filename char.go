package rison

// Char is a single Unicode scalar value, Go's answer to the reference
// crate's serialize_char: a plain rune is just an alias for int32 and
// would be indistinguishable from an integer to reflect, so Marshal
// only recognizes the defined type Char, encoding it as its one-rune
// string form (supplementing a feature spec.md's distillation dropped;
// see original_source/src/ser.rs serialize_char / tests/test.rs
// test_ser_str).
type Char rune

// Tagged is Go's answer to serde's newtype variant: a single-field enum
// payload, which spec.md §4.5 encodes as `( <variant-name> : <inner> )`
// (literal scenario 12). Go has no enum/variant type, so Marshal
// special-cases this wrapper to produce that shape directly.
type Tagged struct {
	Tag   string
	Value any
}
