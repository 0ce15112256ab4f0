// Package escape holds the normative byte-classification tables that
// decide whether a Rison string can be written bare or must be quoted,
// plus the escaper that writes the quoted form (unescaping is done by
// the decoder's quoted-string scanner, not here). This is a
// direct generalization of the table-driven byte classification idiom
// mcvoid-json's parser.go uses for its own lexer (asciiClasses), fixed
// here to the two sets the Rison wire grammar defines rather than JSON's.
package escape

import "strings"

// notID classifies bytes that terminate a bare identifier wherever they
// occur, per the wire grammar:
//
//	NOT_ID = { 0x20, '!', '\'', '(', ')', ',', ':', '*', '@', '$' }
var notID [256]bool

// notIDStart is NOT_ID plus '-' and the decimal digits, since a bare
// identifier may never start with something that could be confused with
// a number.
var notIDStart [256]bool

func init() {
	for _, b := range []byte{' ', '!', '\'', '(', ')', ',', ':', '*', '@', '$'} {
		notID[b] = true
		notIDStart[b] = true
	}
	notIDStart['-'] = true
	for b := byte('0'); b <= '9'; b++ {
		notIDStart[b] = true
	}
}

// NotID reports whether b terminates a bare identifier at a non-first
// position.
func NotID(b byte) bool {
	return notID[b]
}

// NotIDStart reports whether b cannot begin a bare identifier.
func NotIDStart(b byte) bool {
	return notIDStart[b]
}

// CanBeBare reports whether s may be written without surrounding quotes:
// its first byte must clear NOT_ID_START and every following byte must
// clear NOT_ID. The empty string is never bare (it encodes as `''`).
func CanBeBare(s string) bool {
	if len(s) == 0 {
		return false
	}
	if notIDStart[s[0]] {
		return false
	}
	for i := 1; i < len(s); i++ {
		if notID[s[i]] {
			return false
		}
	}
	return true
}

// WriteString appends the Rison string token for s to buf: bare when
// CanBeBare(s), otherwise single-quoted with `'` and `!` escaped by a
// leading `!`. This function never fails — every Go string is valid
// UTF-8 text and has some Rison spelling.
func WriteString(buf *strings.Builder, s string) {
	if s == "" {
		buf.WriteString("''")
		return
	}
	if CanBeBare(s) {
		buf.WriteString(s)
		return
	}
	buf.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			buf.WriteString("!'")
		case '!':
			buf.WriteString("!!")
		default:
			buf.WriteByte(s[i])
		}
	}
	buf.WriteByte('\'')
}
