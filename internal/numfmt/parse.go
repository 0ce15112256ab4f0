package numfmt

import (
	"strconv"

	"github.com/mcvoid/rison/internal/read"
)

// ErrorCode classifies why Parse failed, mirroring the decode error
// codes spec.md §7 assigns to number-grammar violations.
type ErrorCode int

const (
	// ErrInvalidNumber: grammar violated (leading zero + digit, '.' or
	// 'e' not followed by a digit run).
	ErrInvalidNumber ErrorCode = iota
	// ErrEOF: input ended mid-required-digit-run.
	ErrEOF
)

// ParseError reports a number-grammar failure at a byte position.
// Position is the offset of the offending byte itself — Reader.Position
// always reports the offset of the next unconsumed byte, so an error
// raised before eating the bad byte points exactly at it.
type ParseError struct {
	Code     ErrorCode
	Position int
}

func (e *ParseError) Error() string {
	switch e.Code {
	case ErrEOF:
		return "EOF while parsing a number"
	default:
		return "invalid number"
	}
}

// Parse consumes a number token from r per the grammar:
//
//	number      := '-'? significand fraction? exponent?
//	significand := '0' | [1-9][0-9]*
//	fraction    := '.' [0-9]+
//	exponent    := 'e' ('-'|'+')? [0-9]+
//
// matching is leftmost and greedy: Parse stops as soon as no further
// byte extends the grammar, leaving the reader positioned just past the
// consumed token. The token text is collected while validating; once it
// is complete, a pure integer token (no fraction, no exponent) is parsed
// exactly as an int64 and converted to float64, while a token with a
// fraction or exponent, or an integer that overflows int64, is handed to
// strconv.ParseFloat, trading exactness for never failing on a
// merely-large-but-valid number.
func Parse(r read.Reader) (float64, error) {
	var raw []byte

	if b, ok := r.Peek(); ok && b == '-' {
		raw = append(raw, b)
		r.EatChar()
	}

	b, ok := r.Peek()
	if !ok {
		return 0, &ParseError{Code: ErrEOF, Position: r.Position()}
	}
	switch {
	case b == '0':
		raw = append(raw, b)
		r.EatChar()
		if b, ok := r.Peek(); ok && isDigit(b) {
			return 0, &ParseError{Code: ErrInvalidNumber, Position: r.Position()}
		}
	case isDigit(b):
		for {
			b, ok := r.Peek()
			if !ok || !isDigit(b) {
				break
			}
			raw = append(raw, b)
			r.EatChar()
		}
	default:
		return 0, &ParseError{Code: ErrInvalidNumber, Position: r.Position()}
	}

	hasFrac := false
	if b, ok := r.Peek(); ok && b == '.' {
		hasFrac = true
		raw = append(raw, b)
		r.EatChar()
		n := 0
		for {
			b, ok := r.Peek()
			if !ok || !isDigit(b) {
				break
			}
			raw = append(raw, b)
			r.EatChar()
			n++
		}
		if n == 0 {
			if _, ok := r.Peek(); !ok {
				return 0, &ParseError{Code: ErrEOF, Position: r.Position()}
			}
			return 0, &ParseError{Code: ErrInvalidNumber, Position: r.Position()}
		}
	}

	hasExp := false
	if b, ok := r.Peek(); ok && b == 'e' {
		hasExp = true
		raw = append(raw, b)
		r.EatChar()
		if b, ok := r.Peek(); ok && (b == '-' || b == '+') {
			raw = append(raw, b)
			r.EatChar()
		}
		n := 0
		for {
			b, ok := r.Peek()
			if !ok || !isDigit(b) {
				break
			}
			raw = append(raw, b)
			r.EatChar()
			n++
		}
		if n == 0 {
			if _, ok := r.Peek(); !ok {
				return 0, &ParseError{Code: ErrEOF, Position: r.Position()}
			}
			return 0, &ParseError{Code: ErrInvalidNumber, Position: r.Position()}
		}
	}

	if !hasFrac && !hasExp {
		// Pure integer token: try the exact 64-bit integer accumulator
		// first, falling back to float64 only on overflow.
		if iv, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			return float64(iv), nil
		}
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		// Grammar already validated the token; the only way ParseFloat
		// fails here is an out-of-range exponent, which strconv reports
		// as ErrRange while still returning ±Inf. Truncation beyond
		// float64 precision is acceptable per spec.
		return f, nil
	}
	return f, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
