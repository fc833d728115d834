package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes a decode failure.
type Kind string

const (
	KindInvalidVersion     Kind = "invalid_version"     // version string mismatch
	KindVarintTooLarge     Kind = "varint_too_large"    // LEB128 value exceeds 32 bits
	KindVarintMalformed    Kind = "varint_malformed"    // continuation bit never clears
	KindUnexpectedEOF      Kind = "unexpected_eof"      // input ended mid-token
	KindTruncated          Kind = "truncated"           // length prefix exceeds remaining bytes
	KindInvalidUTF8        Kind = "invalid_utf8"        // string bytes are not valid UTF-8
	KindInvalidSection     Kind = "invalid_section"     // unknown section id
	KindInvalidValType     Kind = "invalid_valtype"     // unknown value type code
	KindInvalidInstruction Kind = "invalid_instruction" // unknown opcode byte
	KindTrailingBytes      Kind = "trailing_bytes"      // leftover bytes in a scoped range
	KindUnresolvedIndex    Kind = "unresolved_index"    // symbolic index reached the encoder
)

// Error is the structured error type used throughout the codec. Offset is
// the absolute byte offset of the token that failed to decode; the cursor is
// always restored to that offset before the error is built, so the offset
// points at the offending byte rather than wherever decoding happened to
// stop. An Error is immutable once constructed.
type Error struct {
	Kind   Kind
	Offset int
	Byte   byte   // offending byte for invalid_section/valtype/instruction
	Value  uint64 // decoded value for varint_too_large
	Want   int    // expected byte count for truncated
	Found  string // version string actually present for invalid_version
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "offset %d: ", e.Offset)
	b.WriteString(string(e.Kind))

	switch e.Kind {
	case KindInvalidVersion:
		fmt.Fprintf(&b, ": found %q", e.Found)
	case KindVarintTooLarge:
		fmt.Fprintf(&b, ": %d does not fit in 32 bits", e.Value)
	case KindTruncated:
		fmt.Fprintf(&b, ": expected %d more bytes", e.Want)
	case KindInvalidSection, KindInvalidValType, KindInvalidInstruction:
		fmt.Fprintf(&b, ": 0x%02x", e.Byte)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Is reports whether target matches this error. Two Errors match when their
// Kinds are equal, which lets callers test the taxonomy with errors.Is
// without caring about offsets:
//
//	if errors.Is(err, &errors.Error{Kind: errors.KindTruncated}) { ... }
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Convenience constructors, one per taxonomy entry.

// InvalidVersion reports a version string mismatch. The offset is always 0:
// the whole input is considered unparsed on a version mismatch.
func InvalidVersion(found string) *Error {
	return &Error{Kind: KindInvalidVersion, Offset: 0, Found: found}
}

// VarintTooLarge reports a LEB128 value that does not fit in 32 bits.
func VarintTooLarge(offset int, value uint64) *Error {
	return &Error{Kind: KindVarintTooLarge, Offset: offset, Value: value}
}

// VarintMalformed reports a LEB128 sequence whose continuation bit never
// clears within the maximum byte width.
func VarintMalformed(offset int) *Error {
	return &Error{Kind: KindVarintMalformed, Offset: offset}
}

// UnexpectedEOF reports that the input ended in the middle of a token.
func UnexpectedEOF(offset int) *Error {
	return &Error{Kind: KindUnexpectedEOF, Offset: offset}
}

// Truncated reports a length prefix that exceeds the remaining input.
func Truncated(offset, want int) *Error {
	return &Error{Kind: KindTruncated, Offset: offset, Want: want}
}

// InvalidUTF8 reports string bytes that are not valid UTF-8. The offset
// points at the string's length prefix.
func InvalidUTF8(offset int) *Error {
	return &Error{Kind: KindInvalidUTF8, Offset: offset}
}

// InvalidSection reports an unknown section id byte.
func InvalidSection(offset int, id byte) *Error {
	return &Error{Kind: KindInvalidSection, Offset: offset, Byte: id}
}

// InvalidValType reports an unknown value type code.
func InvalidValType(offset int, code byte) *Error {
	return &Error{Kind: KindInvalidValType, Offset: offset, Byte: code}
}

// InvalidInstruction reports an unknown opcode byte.
func InvalidInstruction(offset int, opcode byte) *Error {
	return &Error{Kind: KindInvalidInstruction, Offset: offset, Byte: opcode}
}

// TrailingBytes reports leftover bytes inside a scoped range after its
// declared item count was consumed.
func TrailingBytes(offset int) *Error {
	return &Error{Kind: KindTrailingBytes, Offset: offset}
}

// UnresolvedIndex reports a symbolic index that reached the encoder without
// being resolved to a number first.
func UnresolvedIndex(name string) *Error {
	return &Error{Kind: KindUnresolvedIndex, Detail: fmt.Sprintf("symbolic index $%s not resolved", name)}
}
