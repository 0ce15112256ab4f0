package rison

import (
	"strings"

	"github.com/mcvoid/rison/internal/escape"
	"github.com/mcvoid/rison/internal/numfmt"
	"github.com/mcvoid/rison/internal/read"
)

// maxNestDepth bounds array/object nesting the same way mcvoid-json's
// parser bounds its mode stack: input nested deeper than this has
// bigger problems than the decoder refusing it.
const maxNestDepth = 1024

// Decoder drives a Visitor over Rison input held in memory. A Decoder
// borrows its input for the duration of the decode and holds no state
// beyond a cursor and a nesting counter; it is not safe to reuse
// concurrently from multiple goroutines, but two Decoders over disjoint
// inputs need no coordination.
type Decoder struct {
	r     read.Reader
	depth int
}

// NewDecoder creates a Decoder over data. data is not copied and must
// not be mutated while the Decoder is in use.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{r: read.NewSliceReader(data)}
}

// Decode parses exactly one Rison value from data, driving visitor.
func Decode(data []byte, visitor Visitor) (any, error) {
	return NewDecoder(data).DecodeAny(visitor)
}

// ParseValue decodes data into a *Value tree.
func ParseValue(data []byte) (*Value, error) {
	v, err := Decode(data, ValueVisitor{})
	if err != nil {
		return nil, err
	}
	return v.(*Value), nil
}

// ParseValueString is ParseValue over a string.
func ParseValueString(s string) (*Value, error) {
	return ParseValue([]byte(s))
}

// DecodeAny is the self-describing entry point: it peeks a single byte,
// commits to a kind, and calls exactly one Visitor method. This is the
// only decode path that composes recursively (array/object elements
// decode through it too), so it is where the nesting guard lives.
func (d *Decoder) DecodeAny(visitor Visitor) (any, error) {
	b, ok := d.r.Peek()
	if !ok {
		return nil, eofWhileParsingValue(d.r.Position())
	}

	switch {
	case b == '!':
		return d.decodeEscaped(visitor)
	case b == '(':
		d.r.EatChar()
		return d.decodeObjectBody(visitor)
	case b == '-' || isDigit(b):
		return d.decodeNumber(visitor)
	default:
		s, err := d.decodeStringToken()
		if err != nil {
			return nil, err
		}
		return visitor.VisitString(s)
	}
}

// decodeEscaped handles the '!' dispatch of spec.md §4.8: having seen
// '!' where a value was expected, the next byte selects null, bool, or
// array. Any other next byte is InvalidEscape; EOF right after '!' is
// EofWhileParsingValue.
func (d *Decoder) decodeEscaped(visitor Visitor) (any, error) {
	d.r.EatChar() // consume '!'
	b, ok := d.r.Peek()
	if !ok {
		return nil, eofWhileParsingValue(d.r.Position())
	}
	switch b {
	case 'n':
		d.r.EatChar()
		return visitor.VisitNull()
	case 't':
		d.r.EatChar()
		return visitor.VisitBool(true)
	case 'f':
		d.r.EatChar()
		return visitor.VisitBool(false)
	case '(':
		d.r.EatChar()
		return d.decodeArrayBody(visitor)
	default:
		// Left unconsumed: position() is the offset of the next
		// unread byte, so reporting it here (before eating the bad
		// byte) points InvalidEscape at the byte itself.
		return nil, invalidEscape(d.r.Position(), b)
	}
}

func (d *Decoder) decodeNumber(visitor Visitor) (any, error) {
	n, err := numfmt.Parse(d.r)
	if err != nil {
		return nil, translateNumberError(err)
	}
	return visitor.VisitNumber(n)
}

func translateNumberError(err error) error {
	if pe, ok := err.(*numfmt.ParseError); ok {
		if pe.Code == numfmt.ErrEOF {
			return eofWhileParsingValue(pe.Position)
		}
		return invalidNumber(pe.Position)
	}
	return err
}

func (d *Decoder) enterContainer() error {
	d.depth++
	if d.depth > maxNestDepth {
		return decodeMessage(d.r.Position(), "max nesting depth %d exceeded", maxNestDepth)
	}
	return nil
}

func (d *Decoder) leaveContainer() { d.depth-- }

func (d *Decoder) decodeArrayBody(visitor Visitor) (any, error) {
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	defer d.leaveContainer()
	return visitor.VisitArray(&ArrayDecoder{d: d})
}

func (d *Decoder) decodeObjectBody(visitor Visitor) (any, error) {
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	defer d.leaveContainer()
	return visitor.VisitObject(&ObjectDecoder{d: d})
}

// ArrayDecoder pulls one element at a time from an array already opened
// by "!(". Next returns ok == false once the closing ')' is consumed;
// it must not be called again afterward.
type ArrayDecoder struct {
	d       *Decoder
	started bool
	done    bool
}

// Next decodes the next element, driving visitor. ok is false and err
// is nil once the array is exhausted.
func (a *ArrayDecoder) Next(visitor Visitor) (value any, ok bool, err error) {
	if a.done {
		return nil, false, nil
	}
	b, has := a.d.r.Peek()
	if !has {
		return nil, false, eofWhileParsingValue(a.d.r.Position())
	}
	if b == ')' {
		a.d.r.EatChar()
		a.done = true
		return nil, false, nil
	}
	if a.started {
		if b != ',' {
			return nil, false, invalidChar(a.d.r.Position(), b, ',')
		}
		a.d.r.EatChar()
	}
	a.started = true
	v, err := a.d.DecodeAny(visitor)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// ObjectDecoder pulls one key/value member at a time from an object
// already opened by "(". Next returns ok == false once the closing ')'
// is consumed.
type ObjectDecoder struct {
	d       *Decoder
	started bool
	done    bool
}

// Next decodes the next member's key and value, driving visitor for the
// value. ok is false and err is nil once the object is exhausted.
func (o *ObjectDecoder) Next(visitor Visitor) (key string, value any, ok bool, err error) {
	if o.done {
		return "", nil, false, nil
	}
	b, has := o.d.r.Peek()
	if !has {
		return "", nil, false, eofWhileParsingValue(o.d.r.Position())
	}
	if b == ')' {
		o.d.r.EatChar()
		o.done = true
		return "", nil, false, nil
	}
	if o.started {
		if b != ',' {
			return "", nil, false, invalidChar(o.d.r.Position(), b, ',')
		}
		o.d.r.EatChar()
	}
	o.started = true

	key, err = o.d.decodeStringToken()
	if err != nil {
		return "", nil, false, err
	}

	cb, has := o.d.r.Peek()
	if !has {
		return "", nil, false, eofWhileParsingValue(o.d.r.Position())
	}
	if cb != ':' {
		return "", nil, false, invalidChar(o.d.r.Position(), cb, ':')
	}
	o.d.r.EatChar()

	value, err = o.d.DecodeAny(visitor)
	if err != nil {
		return "", nil, false, err
	}
	return key, value, true, nil
}

// decodeStringToken decodes one string (bare or quoted) wherever the
// grammar calls for a string: a self-describing "any" value, or an
// object key. It is the one place that enforces the bare-identifier
// rules symmetric to internal/escape.CanBeBare on the way out.
func (d *Decoder) decodeStringToken() (string, error) {
	b, ok := d.r.Peek()
	if !ok {
		return "", eofWhileParsingValue(d.r.Position())
	}
	if b == '\'' {
		d.r.EatChar()
		return d.decodeQuotedBody()
	}
	if escape.NotIDStart(b) {
		return "", invalidChar(d.r.Position(), b, 0)
	}
	return d.decodeBareBody(), nil
}

// decodeQuotedBody scans a quoted string after the opening ' has been
// consumed, recognizing ! as the escape prefix for the next literal
// byte (only ' and ! may follow it, per spec.md invariant 4).
func (d *Decoder) decodeQuotedBody() (string, error) {
	var buf strings.Builder
	for {
		b, ok := d.r.Next()
		if !ok {
			return "", eofWhileParsingValue(d.r.Position())
		}
		switch b {
		case '\'':
			return buf.String(), nil
		case '!':
			esc, ok := d.r.Peek()
			if !ok {
				return "", eofWhileParsingValue(d.r.Position())
			}
			switch esc {
			case '\'':
				d.r.EatChar()
				buf.WriteByte('\'')
			case '!':
				d.r.EatChar()
				buf.WriteByte('!')
			default:
				return "", invalidEscape(d.r.Position(), esc)
			}
		default:
			buf.WriteByte(b)
		}
	}
}

// decodeBareBody scans a bare identifier: every byte that clears
// escape.NotID extends it, EOF or the first NOT_ID byte ends it. The
// caller has already confirmed the first byte clears NOT_ID_START.
func (d *Decoder) decodeBareBody() string {
	var buf strings.Builder
	for {
		b, ok := d.r.Peek()
		if !ok || escape.NotID(b) {
			return buf.String()
		}
		buf.WriteByte(b)
		d.r.EatChar()
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
