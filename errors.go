package rison

import (
	"errors"
	"fmt"
)

// Sentinel errors a caller can match with errors.Is. ErrType and
// ErrRange mirror mcvoid-json's ErrType (a value accessor was called on
// the wrong kind) but add ErrRange for the int64 coercion AsInt64
// performs on Value.
var (
	ErrType  = errors.New("rison: type error")
	ErrRange = errors.New("rison: value out of range")
)

// EncodeErrorCode classifies why an encode failed, per spec.md §7.
type EncodeErrorCode int

const (
	// KeyMustBeAString: an object key resolved to a non-string kind.
	KeyMustBeAString EncodeErrorCode = iota
	// EncodeMessage: the value holds a Go kind the encoder does not
	// support (a channel, func, complex number, ...). There is no
	// user-defined marshaling hook.
	EncodeMessage
)

// EncodeError is returned by Marshal and the Encoder methods. All
// encode errors are fatal: encoding stops at the point of failure and
// no partial result is returned.
type EncodeError struct {
	Code EncodeErrorCode
	Msg  string
}

func (e *EncodeError) Error() string {
	switch e.Code {
	case KeyMustBeAString:
		return "rison: map/object key must be a string"
	default:
		return "rison: " + e.Msg
	}
}

// Is lets errors.Is(err, ErrKeyMustBeAString) work without exposing the
// EncodeErrorCode enum as part of the error-matching API.
func (e *EncodeError) Is(target error) bool {
	switch target {
	case ErrKeyMustBeAString:
		return e.Code == KeyMustBeAString
	}
	return false
}

// ErrKeyMustBeAString is the sentinel for EncodeError{Code: KeyMustBeAString}.
var ErrKeyMustBeAString = errors.New("rison: map/object key must be a string")

func keyMustBeAString() error {
	return &EncodeError{Code: KeyMustBeAString}
}

func encodeMessage(format string, args ...any) error {
	return &EncodeError{Code: EncodeMessage, Msg: fmt.Sprintf(format, args...)}
}

// DecodeErrorCode classifies why a decode failed, per spec.md §7.
type DecodeErrorCode int

const (
	// InvalidChar: a specific byte was required and a different one was read.
	InvalidChar DecodeErrorCode = iota
	// InvalidEscape: '!' was followed by a byte not in {n,t,f,(,!,'}.
	InvalidEscape
	// EofWhileParsingValue: input ended where more bytes were required.
	EofWhileParsingValue
	// InvalidNumber: number grammar violated.
	InvalidNumber
	// DecodeMessage: visitor-level custom error (e.g. type mismatch).
	DecodeMessage
)

// DecodeError is returned by Unmarshal, Decode, and ParseValue. Position
// is the absolute byte offset at which the condition was detected: the
// reader's cursor at that moment. A rejected byte is peeked, not
// consumed, before the error is raised, so Position is the offset of
// that byte itself (for "!x", 1); at end of input it is len(input).
type DecodeError struct {
	Code     DecodeErrorCode
	Position int
	Seen     byte
	Expected byte
	Msg      string
}

func (e *DecodeError) Error() string {
	switch e.Code {
	case InvalidChar:
		return fmt.Sprintf("rison: invalid char %q at position %d, expected %q", e.Seen, e.Position, e.Expected)
	case InvalidEscape:
		return fmt.Sprintf("rison: invalid escape %q at position %d", e.Seen, e.Position)
	case EofWhileParsingValue:
		return fmt.Sprintf("rison: unexpected EOF at position %d", e.Position)
	case InvalidNumber:
		return fmt.Sprintf("rison: invalid number at position %d", e.Position)
	default:
		return fmt.Sprintf("rison: %s at position %d", e.Msg, e.Position)
	}
}

// Is lets errors.Is match against the decode-error sentinels below
// without the caller needing to type-assert *DecodeError first.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrEofWhileParsingValue:
		return e.Code == EofWhileParsingValue
	case ErrInvalidNumber:
		return e.Code == InvalidNumber
	case ErrInvalidEscape:
		return e.Code == InvalidEscape
	case ErrInvalidChar:
		return e.Code == InvalidChar
	}
	return false
}

var (
	ErrEofWhileParsingValue = errors.New("rison: unexpected EOF")
	ErrInvalidNumber        = errors.New("rison: invalid number")
	ErrInvalidEscape        = errors.New("rison: invalid escape")
	ErrInvalidChar          = errors.New("rison: invalid char")
)

func invalidChar(pos int, seen, expected byte) error {
	return &DecodeError{Code: InvalidChar, Position: pos, Seen: seen, Expected: expected}
}

func invalidEscape(pos int, seen byte) error {
	return &DecodeError{Code: InvalidEscape, Position: pos, Seen: seen}
}

func eofWhileParsingValue(pos int) error {
	return &DecodeError{Code: EofWhileParsingValue, Position: pos}
}

func invalidNumber(pos int) error {
	return &DecodeError{Code: InvalidNumber, Position: pos}
}

func decodeMessage(pos int, format string, args ...any) error {
	return &DecodeError{Code: DecodeMessage, Position: pos, Msg: fmt.Sprintf(format, args...)}
}
