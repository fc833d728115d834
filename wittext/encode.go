package wittext

import (
	"github.com/wippyai/wit-codec/errors"
	"github.com/wippyai/wit-codec/wit"
)

// Encode appends the instruction's binary encoding: the opcode byte from
// the shared table, then the index operand as unsigned LEB128 (the same
// varint codec the decoder reads). Encoding a symbolic index is an error;
// resolution is the grammar's job and must happen first.
func (in Instruction) Encode(b *Buffer) error {
	info, ok := wit.Lookup(in.Op)
	if !ok {
		return errors.InvalidInstruction(0, byte(in.Op))
	}
	b.AppendByte(byte(info.Op))
	if info.Operand == wit.OperandIndex {
		if in.Index.Symbolic() {
			return errors.UnresolvedIndex(in.Index.Name())
		}
		b.WriteU32(in.Index.Num())
	}
	return nil
}

// EncodeInstructions encodes a whole instruction sequence.
func EncodeInstructions(instrs []Instruction) ([]byte, error) {
	var b Buffer
	for _, in := range instrs {
		if err := in.Encode(&b); err != nil {
			return nil, err
		}
	}
	return b.Bytes, nil
}

// WriteFunc writes one Func record: a length-prefixed body holding the type
// index followed by the encoded instruction stream.
func (b *Buffer) WriteFunc(typeIdx uint32, instrs []Instruction) error {
	var body Buffer
	body.WriteU32(typeIdx)
	for _, in := range instrs {
		if err := in.Encode(&body); err != nil {
			return err
		}
	}
	b.WriteRange(body.Bytes)
	return nil
}
