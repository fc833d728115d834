package wittext

import "github.com/wippyai/wit-codec/wit"

// Buffer accumulates the binary encoding of a wit stream.
type Buffer struct {
	Bytes []byte
}

func (b *Buffer) AppendByte(v byte) {
	b.Bytes = append(b.Bytes, v)
}

func (b *Buffer) WriteBytes(v []byte) {
	b.Bytes = append(b.Bytes, v...)
}

// WriteU32 writes unsigned LEB128 encoding.
func (b *Buffer) WriteU32(v uint32) {
	b.Bytes = wit.AppendUleb128(b.Bytes, v)
}

// WriteString writes a length-prefixed UTF-8 string.
func (b *Buffer) WriteString(s string) {
	b.WriteU32(uint32(len(s)))
	b.WriteBytes([]byte(s))
}

// WriteRange writes a length-prefixed byte range.
func (b *Buffer) WriteRange(payload []byte) {
	b.WriteU32(uint32(len(payload)))
	b.WriteBytes(payload)
}

// WriteVersion writes the stream's leading version string.
func (b *Buffer) WriteVersion(version string) {
	b.WriteString(version)
}

// WriteSection writes a section header and its length-prefixed payload.
// The payload must already begin with its record count.
func (b *Buffer) WriteSection(kind wit.SectionKind, payload []byte) {
	b.AppendByte(byte(kind))
	b.WriteRange(payload)
}
