package wittext_test

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/wit-codec/errors"
	"github.com/wippyai/wit-codec/wit"
	"github.com/wippyai/wit-codec/wittext"
)

func TestParseInstructions(t *testing.T) {
	instrs, err := wittext.ParseInstructions(`
		arg.get $msg   ;; the string argument
		call-core 0
		end
	`)
	if err != nil {
		t.Fatalf("ParseInstructions: %v", err)
	}
	if len(instrs) != 3 {
		t.Fatalf("got %d instructions, want 3", len(instrs))
	}

	if instrs[0].Op != wit.OpArgGet || !instrs[0].Index.Symbolic() || instrs[0].Index.Name() != "msg" {
		t.Errorf("instr 0: got %v, want arg.get $msg", instrs[0])
	}
	if instrs[1].Op != wit.OpCallCore || instrs[1].Index.Symbolic() || instrs[1].Index.Num() != 0 {
		t.Errorf("instr 1: got %v, want call-core 0", instrs[1])
	}
	if instrs[2].Op != wit.OpEnd {
		t.Errorf("instr 2: got %v, want end", instrs[2])
	}
}

func TestParseInstructionsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown mnemonic", "local.get 0"},
		{"missing operand", "arg.get"},
		{"bad index", "arg.get abc"},
		{"index out of range", "arg.get 4294967296"},
		{"empty symbol", "arg.get $"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := wittext.ParseInstructions(tt.src); err == nil {
				t.Errorf("expected error for %q", tt.src)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	instrs, err := wittext.ParseInstructions("arg.get $msg call-core $log end")
	if err != nil {
		t.Fatalf("ParseInstructions: %v", err)
	}

	resolved, err := wittext.Resolve(instrs, map[string]uint32{"msg": 3, "log": 1})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved[0].Index.Num() != 3 || resolved[1].Index.Num() != 1 {
		t.Errorf("got %v", resolved)
	}
	// The input is left untouched.
	if !instrs[0].Index.Symbolic() {
		t.Error("Resolve mutated its input")
	}
}

func TestResolveUnknownName(t *testing.T) {
	instrs := []wittext.Instruction{{Op: wit.OpArgGet, Index: wittext.SymIndex("nope")}}
	_, err := wittext.Resolve(instrs, nil)
	if !stderrors.Is(err, &errors.Error{Kind: errors.KindUnresolvedIndex}) {
		t.Fatalf("got %v, want unresolved_index", err)
	}
}

// Text in, binary out, decoded back by the wit package: the full mirror.
func TestParseResolveEncodeDecode(t *testing.T) {
	instrs, err := wittext.ParseInstructions("arg.get $a arg.get $b call-core 2 end")
	if err != nil {
		t.Fatalf("ParseInstructions: %v", err)
	}
	instrs, err = wittext.Resolve(instrs, map[string]uint32{"a": 0, "b": 1})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var b wittext.Buffer
	if err := b.WriteFunc(0, instrs); err != nil {
		t.Fatalf("WriteFunc: %v", err)
	}

	c := wit.NewCursor(b.Bytes)
	fn, err := wit.DecodeFunc(&c)
	if err != nil {
		t.Fatalf("DecodeFunc: %v", err)
	}
	got, err := fn.Instructions().Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []wit.Instruction{
		{Op: wit.OpArgGet, Index: 0},
		{Op: wit.OpArgGet, Index: 1},
		{Op: wit.OpCallCore, Index: 2},
		{Op: wit.OpEnd},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instr %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
