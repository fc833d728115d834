// Package wittext provides the text-side half of the wit codec.
//
// The textual grammar itself lives outside this module; what arrives here
// are already-parsed instruction nodes whose index operands are either
// numeric or symbolic ($name). Encoding goes through the same opcode table
// the binary decoder dispatches on, which keeps the two directions
// byte-for-byte compatible.
//
//	instrs, err := wittext.ParseInstructions("arg.get $msg call-core 0 end")
//	instrs, err = wittext.Resolve(instrs, map[string]uint32{"msg": 3})
//	body, err := wittext.EncodeInstructions(instrs)
//
// Buffer additionally knows how to frame whole streams (version header,
// sections, length-prefixed function bodies), which is enough to assemble a
// well-formed binary from parsed text.
package wittext
