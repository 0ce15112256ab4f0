// Package read provides the byte cursor the decoder scans Rison input
// with. It is a direct port of the Reader trait the reference crate
// borrows input through (next/peek/position), generalized to the
// slice-only, no-backtracking-past-one-byte contract this codec needs.
package read

// Reader is a random-forward byte cursor over an input buffer. Only a
// single byte of lookahead is ever required by the decoder.
type Reader interface {
	// Next consumes and returns the next byte. ok is false at EOF.
	Next() (b byte, ok bool)
	// Peek returns the next byte without consuming it. ok is false at EOF.
	Peek() (b byte, ok bool)
	// PeekOrZero returns the next byte, or 0x00 at EOF. Handy as a match
	// arm sentinel when EOF should fall through to a default case.
	PeekOrZero() byte
	// EatChar advances the cursor by one byte, presumed already peeked.
	EatChar()
	// Position is the zero-based offset of the next byte to be consumed.
	Position() int
}

// SliceReader reads from an in-memory byte slice. It is the only Reader
// implementation this codec needs: input is never streamed (spec
// non-goal), so there is nothing to buffer.
type SliceReader struct {
	buf []byte
	pos int
}

// NewSliceReader wraps buf for sequential scanning starting at offset 0.
func NewSliceReader(buf []byte) *SliceReader {
	return &SliceReader{buf: buf}
}

func (r *SliceReader) Next() (byte, bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	b := r.buf[r.pos]
	r.pos++
	return b, true
}

func (r *SliceReader) Peek() (byte, bool) {
	if r.pos >= len(r.buf) {
		return 0, false
	}
	return r.buf[r.pos], true
}

func (r *SliceReader) PeekOrZero() byte {
	b, _ := r.Peek()
	return b
}

func (r *SliceReader) EatChar() {
	r.pos++
}

func (r *SliceReader) Position() int {
	return r.pos
}
