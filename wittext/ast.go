package wittext

import (
	"fmt"

	"github.com/wippyai/wit-codec/wit"
)

// Index is an instruction operand as it appears in text: either a number,
// or a $name the surrounding grammar resolves before encoding.
type Index struct {
	name string
	num  uint32
	sym  bool
}

// NumIndex returns a numeric index.
func NumIndex(n uint32) Index {
	return Index{num: n}
}

// SymIndex returns a symbolic index for name (without the $ sigil).
func SymIndex(name string) Index {
	return Index{name: name, sym: true}
}

// Symbolic reports whether the index is still a $name.
func (i Index) Symbolic() bool {
	return i.sym
}

// Num returns the numeric value. Meaningful only when Symbolic is false.
func (i Index) Num() uint32 {
	return i.num
}

// Name returns the symbolic name without the $ sigil.
func (i Index) Name() string {
	return i.name
}

func (i Index) String() string {
	if i.sym {
		return "$" + i.name
	}
	return fmt.Sprintf("%d", i.num)
}

// Instruction is one parsed text instruction. Index is meaningful only for
// opcodes whose operand shape is OperandIndex.
type Instruction struct {
	Op    wit.Op
	Index Index
}

func (in Instruction) String() string {
	if info, ok := wit.Lookup(in.Op); ok && info.Operand == wit.OperandIndex {
		return fmt.Sprintf("%s %s", info.Name, in.Index)
	}
	return in.Op.String()
}
