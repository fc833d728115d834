// Package witcodec provides a zero-copy codec for the wit binary schema
// format: a version-tagged stream of sections describing function types,
// imports, exports, and function bodies.
//
// The library is organized into a small set of packages:
//
//	witcodec/        Root package with the schema version constant
//	├── wit/         Binary format decoder and instruction codec
//	├── wittext/     Text-side instruction nodes and binary encoder
//	├── errors/      Structured decode errors with byte offsets
//	└── cmd/witdump/ CLI inspector for wit binaries
//
// # Decoding
//
// Decode a binary stream section by section:
//
//	d, err := wit.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for !d.Empty() {
//	    s, err := d.Section()
//	    ...
//	}
//
// Cursors, iterators, and raw body ranges borrow from the caller's buffer;
// the buffer must outlive them. Strings are the one thing copied out.
//
// # Encoding
//
// The text side mirrors the decoder through a single shared opcode table:
//
//	var b wittext.Buffer
//	instr := wittext.Instruction{Op: wit.OpArgGet, Index: wittext.NumIndex(3)}
//	err := instr.Encode(&b)
package witcodec
