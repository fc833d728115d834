package wit

import (
	"unicode/utf8"

	"github.com/wippyai/wit-codec/errors"
)

// Cursor is a non-owning, position-tracked view over a byte range. The
// position is the absolute offset into the original input buffer and exists
// only for diagnostics; it is never used for addressing.
//
// Every read either succeeds and advances the cursor past the consumed
// bytes, or fails and leaves the cursor at the position where the failing
// token began. Cursors are plain values: copying one yields an independent
// view over the same bytes.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor over data with position 0.
func NewCursor(data []byte) Cursor {
	return Cursor{buf: data}
}

// Pos returns the absolute byte offset of the next unread byte.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Empty reports whether the cursor has no unread bytes.
func (c *Cursor) Empty() bool {
	return len(c.buf) == 0
}

// Rest returns the unread bytes without consuming them. The returned slice
// borrows from the original input.
func (c *Cursor) Rest() []byte {
	return c.buf
}

// ReadByte consumes a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if len(c.buf) == 0 {
		return 0, errors.UnexpectedEOF(c.pos)
	}
	b := c.buf[0]
	c.buf = c.buf[1:]
	c.pos++
	return b, nil
}

// ReadBytes consumes exactly n raw bytes. The returned slice borrows from
// the original input.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n > len(c.buf) {
		return nil, errors.Truncated(c.pos, n)
	}
	b := c.buf[:n]
	c.buf = c.buf[n:]
	c.pos += n
	return b, nil
}

// ReadU32 consumes an unsigned LEB128 integer constrained to 32 bits. The
// encoding is read as a full 64-bit varint first so that over-wide but
// well-formed encodings report varint_too_large rather than
// varint_malformed; encodings that overflow even 64 bits are malformed.
func (c *Cursor) ReadU32() (uint32, error) {
	saved := *c

	var result uint64
	var shift uint
	for {
		if len(c.buf) == 0 {
			*c = saved
			return 0, errors.VarintMalformed(saved.pos)
		}
		b := c.buf[0]
		c.buf = c.buf[1:]
		c.pos++

		// The tenth byte carries only bit 63; anything wider cannot be
		// accumulated without dropping bits.
		if shift > 63 || (shift == 63 && b&0x7f > 1) {
			*c = saved
			return 0, errors.VarintMalformed(saved.pos)
		}

		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}

	if result > 0xFFFFFFFF {
		*c = saved
		return 0, errors.VarintTooLarge(saved.pos, result)
	}
	return uint32(result), nil
}

// ReadScoped consumes a length-prefixed byte range and returns a fresh
// cursor scoped exactly to it, with its position recomputed to the range's
// true offset in the original buffer. If the declared length exceeds the
// remaining input, the cursor is restored to the length prefix and the
// truncated error reports the prefix's offset.
func (c *Cursor) ReadScoped() (Cursor, error) {
	saved := *c

	n, err := c.ReadU32()
	if err != nil {
		return Cursor{}, err
	}
	body, err := c.ReadBytes(int(n))
	if err != nil {
		*c = saved
		return Cursor{}, errors.Truncated(saved.pos, int(n))
	}
	return Cursor{buf: body, pos: c.pos - len(body)}, nil
}

// ReadString consumes a length-prefixed UTF-8 string. The returned string
// is a copy; invalid UTF-8 leaves the cursor at the length prefix.
func (c *Cursor) ReadString() (string, error) {
	saved := *c

	sub, err := c.ReadScoped()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(sub.buf) {
		*c = saved
		return "", errors.InvalidUTF8(saved.pos)
	}
	return string(sub.buf), nil
}
