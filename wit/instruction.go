package wit

import (
	"fmt"

	"github.com/wippyai/wit-codec/errors"
)

// Op is an instruction's opcode byte.
type Op byte

const (
	OpArgGet   Op = 0x00 // push the indexed argument
	OpCallCore Op = 0x01 // call the indexed core function
	OpEnd      Op = 0x02 // terminate the instruction stream
)

// OperandKind describes the operand shape that follows an opcode byte.
type OperandKind int

const (
	OperandNone  OperandKind = iota // no operand
	OperandIndex                    // one unsigned LEB128 index
)

// OpInfo is one row of the opcode table: opcode byte, mnemonic, and operand
// shape.
type OpInfo struct {
	Op      Op
	Name    string
	Operand OperandKind
}

// opTable is the single source of truth for the instruction set. The binary
// decoder, the binary encoder, and the text front end all consult this
// table; there is deliberately no second switch over opcodes anywhere.
var opTable = [...]OpInfo{
	{OpArgGet, "arg.get", OperandIndex},
	{OpCallCore, "call-core", OperandIndex},
	{OpEnd, "end", OperandNone},
}

var opByName = func() map[string]OpInfo {
	m := make(map[string]OpInfo, len(opTable))
	for _, info := range opTable {
		m[info.Name] = info
	}
	return m
}()

// Lookup returns the table row for an opcode byte.
func Lookup(op Op) (OpInfo, bool) {
	if int(op) < len(opTable) {
		return opTable[op], true
	}
	return OpInfo{}, false
}

// LookupName returns the table row for a mnemonic.
func LookupName(name string) (OpInfo, bool) {
	info, ok := opByName[name]
	return info, ok
}

func (op Op) String() string {
	if info, ok := Lookup(op); ok {
		return info.Name
	}
	return fmt.Sprintf("op(0x%02x)", byte(op))
}

// Instruction is one decoded instruction. Index is meaningful only for
// opcodes whose operand shape is OperandIndex.
type Instruction struct {
	Op    Op
	Index uint32
}

func (in Instruction) String() string {
	if info, ok := Lookup(in.Op); ok && info.Operand == OperandIndex {
		return fmt.Sprintf("%s %d", info.Name, in.Index)
	}
	return in.Op.String()
}

// DecodeInstruction consumes one opcode byte and its operand. An
// unrecognized opcode restores the cursor to that byte.
func DecodeInstruction(c *Cursor) (Instruction, error) {
	saved := *c

	b, err := c.ReadByte()
	if err != nil {
		return Instruction{}, err
	}
	info, ok := Lookup(Op(b))
	if !ok {
		*c = saved
		return Instruction{}, errors.InvalidInstruction(saved.pos, b)
	}

	in := Instruction{Op: info.Op}
	if info.Operand == OperandIndex {
		in.Index, err = c.ReadU32()
		if err != nil {
			return Instruction{}, err
		}
	}
	return in, nil
}

// AppendTo appends the instruction's binary encoding: the opcode byte
// followed by the operand as unsigned LEB128. The encoding is driven by the
// same table the decoder dispatches on, so the two directions cannot
// diverge.
func (in Instruction) AppendTo(dst []byte) ([]byte, error) {
	info, ok := Lookup(in.Op)
	if !ok {
		return dst, errors.InvalidInstruction(0, byte(in.Op))
	}
	dst = append(dst, byte(info.Op))
	if info.Operand == OperandIndex {
		dst = AppendUleb128(dst, in.Index)
	}
	return dst, nil
}

// Instructions iterates a function body's instruction stream. The stream
// must contain exactly one end instruction, positioned so that consuming it
// exhausts the body's scoped range exactly. End is yielded like any other
// instruction; the call after it reports the end of iteration.
type Instructions struct {
	cur  Cursor
	done bool
}

// Pos returns the absolute offset of the iterator's next unread byte.
func (it *Instructions) Pos() int {
	return it.cur.Pos()
}

// Next decodes the next instruction. Bytes remaining after end are a
// trailing_bytes error; a stream that runs out before end surfaces as
// unexpected_eof.
func (it *Instructions) Next() (Instruction, bool, error) {
	if it.done {
		return Instruction{}, false, nil
	}
	in, err := DecodeInstruction(&it.cur)
	if err != nil {
		return Instruction{}, false, err
	}
	if in.Op == OpEnd {
		if !it.cur.Empty() {
			return Instruction{}, false, errors.TrailingBytes(it.cur.Pos())
		}
		it.done = true
	}
	return in, true, nil
}

// Collect drains the stream into a slice, stopping at the first error.
func (it *Instructions) Collect() ([]Instruction, error) {
	var out []Instruction
	for {
		in, ok, err := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, in)
	}
}
