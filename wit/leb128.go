package wit

// AppendUleb128 appends the unsigned LEB128 encoding of v to dst. This is
// the forward direction of the varint codec Cursor.ReadU32 consumes.
func AppendUleb128(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}
