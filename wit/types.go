package wit

import (
	"fmt"
	"strings"

	"github.com/wippyai/wit-codec/errors"
)

// ValType is a value type code as it appears in the binary format.
type ValType byte

// Value type encodings. The same table drives both decode (byte to kind)
// and encode (kind is the byte).
const (
	ValString ValType = 0
	ValS8     ValType = 1
	ValS16    ValType = 2
	ValS32    ValType = 3
	ValS64    ValType = 4
	ValU8     ValType = 5
	ValU16    ValType = 6
	ValU32    ValType = 7
	ValU64    ValType = 8
	ValF32    ValType = 9
	ValF64    ValType = 10
)

var valTypeNames = [...]string{
	ValString: "string",
	ValS8:     "s8",
	ValS16:    "s16",
	ValS32:    "s32",
	ValS64:    "s64",
	ValU8:     "u8",
	ValU16:    "u16",
	ValU32:    "u32",
	ValU64:    "u64",
	ValF32:    "f32",
	ValF64:    "f64",
}

func (v ValType) String() string {
	if int(v) < len(valTypeNames) {
		return valTypeNames[v]
	}
	return fmt.Sprintf("valtype(0x%02x)", byte(v))
}

// DecodeValType consumes a single value type byte. An unrecognized code
// restores the cursor to that byte.
func DecodeValType(c *Cursor) (ValType, error) {
	saved := *c
	b, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	if int(b) >= len(valTypeNames) {
		*c = saved
		return 0, errors.InvalidValType(saved.pos, b)
	}
	return ValType(b), nil
}

// Type is a function signature: ordered parameter and result types.
type Type struct {
	Params  []ValType
	Results []ValType
}

func (t Type) String() string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	if len(t.Results) > 0 {
		b.WriteString(" -> (")
		for i, r := range t.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

func decodeValTypes(c *Cursor) ([]ValType, error) {
	count, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([]ValType, count)
	for i := range out {
		out[i], err = DecodeValType(c)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DecodeType consumes one Type record: a varint-counted run of parameter
// types followed by a varint-counted run of result types.
func DecodeType(c *Cursor) (Type, error) {
	params, err := decodeValTypes(c)
	if err != nil {
		return Type{}, err
	}
	results, err := decodeValTypes(c)
	if err != nil {
		return Type{}, err
	}
	return Type{Params: params, Results: results}, nil
}

// Import names a function provided by the host: the module and field it
// lives under, plus the index of its signature in the type section.
type Import struct {
	Module  string
	Name    string
	TypeIdx uint32
}

func (im Import) String() string {
	return fmt.Sprintf("import %q %q (type %d)", im.Module, im.Name, im.TypeIdx)
}

// DecodeImport consumes one Import record.
func DecodeImport(c *Cursor) (Import, error) {
	module, err := c.ReadString()
	if err != nil {
		return Import{}, err
	}
	name, err := c.ReadString()
	if err != nil {
		return Import{}, err
	}
	ty, err := c.ReadU32()
	if err != nil {
		return Import{}, err
	}
	return Import{Module: module, Name: name, TypeIdx: ty}, nil
}

// Export gives a function an externally visible name.
type Export struct {
	FuncIdx uint32
	Name    string
}

func (ex Export) String() string {
	return fmt.Sprintf("export %q (func %d)", ex.Name, ex.FuncIdx)
}

// DecodeExport consumes one Export record.
func DecodeExport(c *Cursor) (Export, error) {
	idx, err := c.ReadU32()
	if err != nil {
		return Export{}, err
	}
	name, err := c.ReadString()
	if err != nil {
		return Export{}, err
	}
	return Export{FuncIdx: idx, Name: name}, nil
}

// Func is a function record: the index of its signature plus its
// instruction stream, retained unconsumed as a scoped cursor over the
// original buffer.
type Func struct {
	TypeIdx uint32
	body    Cursor
}

// DecodeFunc consumes one Func record: a length-prefixed body whose leading
// varint is the type index. The rest of the body is kept as the instruction
// stream.
func DecodeFunc(c *Cursor) (Func, error) {
	body, err := c.ReadScoped()
	if err != nil {
		return Func{}, err
	}
	ty, err := body.ReadU32()
	if err != nil {
		return Func{}, err
	}
	return Func{TypeIdx: ty, body: body}, nil
}

// Body returns the raw instruction bytes. The slice borrows from the
// original input.
func (f Func) Body() []byte {
	return f.body.Rest()
}

// Instructions returns a fresh iterator over the function's instruction
// stream. Each call returns an independent iterator scanning from the start
// of the body, so a Func may be enumerated any number of times.
func (f Func) Instructions() *Instructions {
	return &Instructions{cur: f.body}
}

func (f Func) String() string {
	return fmt.Sprintf("func (type %d) [%d byte body]", f.TypeIdx, f.body.Len())
}
