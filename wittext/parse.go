package wittext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/wit-codec/errors"
	"github.com/wippyai/wit-codec/wit"
)

// ParseInstructions reads a whitespace-separated instruction sequence:
// mnemonics from the shared opcode table, each followed by its operand as a
// decimal number or a $name. Line comments start with ;;.
//
//	arg.get $msg
//	call-core 0
//	end
//
// Symbolic indices are returned unresolved; pass the result through Resolve
// before encoding.
func ParseInstructions(src string) ([]Instruction, error) {
	tokens := tokenize(src)

	var out []Instruction
	for i := 0; i < len(tokens); i++ {
		info, ok := wit.LookupName(tokens[i])
		if !ok {
			return nil, fmt.Errorf("unknown instruction %q", tokens[i])
		}
		in := Instruction{Op: info.Op}
		if info.Operand == wit.OperandIndex {
			i++
			if i == len(tokens) {
				return nil, fmt.Errorf("%s: missing index operand", info.Name)
			}
			idx, err := parseIndex(tokens[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", info.Name, err)
			}
			in.Index = idx
		}
		out = append(out, in)
	}
	return out, nil
}

func tokenize(src string) []string {
	var tokens []string
	for _, line := range strings.Split(src, "\n") {
		if i := strings.Index(line, ";;"); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	return tokens
}

func parseIndex(tok string) (Index, error) {
	if name, ok := strings.CutPrefix(tok, "$"); ok {
		if name == "" {
			return Index{}, fmt.Errorf("empty symbolic index")
		}
		return SymIndex(name), nil
	}
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return Index{}, fmt.Errorf("bad index %q", tok)
	}
	return NumIndex(uint32(n)), nil
}

// Resolve replaces symbolic indices with the numbers they name. A name
// missing from names is an unresolved_index error.
func Resolve(instrs []Instruction, names map[string]uint32) ([]Instruction, error) {
	out := make([]Instruction, len(instrs))
	for i, in := range instrs {
		if in.Index.Symbolic() {
			n, ok := names[in.Index.Name()]
			if !ok {
				return nil, errors.UnresolvedIndex(in.Index.Name())
			}
			in.Index = NumIndex(n)
		}
		out[i] = in
	}
	return out, nil
}
