package rison

// The methods in this file are the "kind-specific" half of spec.md
// §4.9: a consumer that already knows it wants a bool (or number, or
// string, ...) calls these directly instead of going through
// DecodeAny/Visitor. Each checks the peeked prefix matches the
// requested kind and reports invalid_type-style mismatches using the
// actual observed kind, exactly as the self-describing path would.

// DecodeBool requires the next value to be a boolean.
func (d *Decoder) DecodeBool() (bool, error) {
	b, ok := d.r.Peek()
	if !ok {
		return false, eofWhileParsingValue(d.r.Position())
	}
	if b != '!' {
		return false, decodeMessage(d.r.Position(), "invalid type: %s, expected bool", d.describeKind(b))
	}
	d.r.EatChar()
	esc, ok := d.r.Peek()
	if !ok {
		return false, eofWhileParsingValue(d.r.Position())
	}
	switch esc {
	case 't':
		d.r.EatChar()
		return true, nil
	case 'f':
		d.r.EatChar()
		return false, nil
	default:
		return false, d.mismatchedEscape(esc, "bool")
	}
}

// DecodeNumber requires the next value to be a number.
func (d *Decoder) DecodeNumber() (float64, error) {
	b, ok := d.r.Peek()
	if !ok {
		return 0, eofWhileParsingValue(d.r.Position())
	}
	if b != '-' && !isDigit(b) {
		return 0, decodeMessage(d.r.Position(), "invalid type: %s, expected number", d.describeKind(b))
	}
	var v any
	v, err := d.decodeNumber(rawNumberVisitor{})
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// DecodeString requires the next value to be a string (bare or quoted).
func (d *Decoder) DecodeString() (string, error) {
	b, ok := d.r.Peek()
	if !ok {
		return "", eofWhileParsingValue(d.r.Position())
	}
	if b == '!' || b == '(' || b == '-' || isDigit(b) {
		return "", decodeMessage(d.r.Position(), "invalid type: %s, expected string", d.describeKind(b))
	}
	return d.decodeStringToken()
}

// DecodeArray requires the next value to be an array and returns the
// ArrayDecoder to pull elements from.
func (d *Decoder) DecodeArray() (*ArrayDecoder, error) {
	b, ok := d.r.Peek()
	if !ok {
		return nil, eofWhileParsingValue(d.r.Position())
	}
	if b != '!' {
		return nil, decodeMessage(d.r.Position(), "invalid type: %s, expected array", d.describeKind(b))
	}
	d.r.EatChar()
	esc, ok := d.r.Peek()
	if !ok {
		return nil, eofWhileParsingValue(d.r.Position())
	}
	if esc != '(' {
		return nil, d.mismatchedEscape(esc, "array")
	}
	d.r.EatChar()
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	return &ArrayDecoder{d: d}, nil
}

// DecodeObject requires the next value to be an object and returns the
// ObjectDecoder to pull members from.
func (d *Decoder) DecodeObject() (*ObjectDecoder, error) {
	b, ok := d.r.Peek()
	if !ok {
		return nil, eofWhileParsingValue(d.r.Position())
	}
	if b != '(' {
		return nil, decodeMessage(d.r.Position(), "invalid type: %s, expected object", d.describeKind(b))
	}
	d.r.EatChar()
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	return &ObjectDecoder{d: d}, nil
}

// mismatchedEscape distinguishes a well-formed escape that names the
// wrong kind (invalid_type) from a genuinely malformed escape byte
// (InvalidEscape), mirroring de.rs's invalid_escaped_type.
func (d *Decoder) mismatchedEscape(seen byte, want string) error {
	switch seen {
	case 'n', 't', 'f', '(':
		return decodeMessage(d.r.Position(), "invalid type: %s, expected %s", describeEscapedKind(seen), want)
	default:
		return invalidEscape(d.r.Position(), seen)
	}
}

func describeEscapedKind(seen byte) string {
	switch seen {
	case 'n':
		return "null"
	case 't', 'f':
		return "bool"
	case '(':
		return "array"
	default:
		return "unknown"
	}
}

func (d *Decoder) describeKind(b byte) string {
	switch {
	case b == '!':
		return "escaped value"
	case b == '(':
		return "object"
	case b == '\'':
		return "string"
	case b == '-' || isDigit(b):
		return "number"
	default:
		return "string"
	}
}

// rawNumberVisitor is a minimal Visitor used internally by DecodeNumber
// to reuse decodeNumber's error handling without pulling in the public
// ValueVisitor machinery.
type rawNumberVisitor struct{}

func (rawNumberVisitor) VisitNull() (any, error)  { return nil, nil }
func (rawNumberVisitor) VisitBool(bool) (any, error) { return nil, nil }
func (rawNumberVisitor) VisitNumber(v float64) (any, error) { return v, nil }
func (rawNumberVisitor) VisitString(string) (any, error) { return nil, nil }
func (rawNumberVisitor) VisitArray(*ArrayDecoder) (any, error)  { return nil, nil }
func (rawNumberVisitor) VisitObject(*ObjectDecoder) (any, error) { return nil, nil }
