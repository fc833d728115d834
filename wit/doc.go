// Package wit provides zero-copy parsing of the wit binary schema format.
//
// A wit binary is a version-tagged stream of sections. Each section is a
// length-prefixed, self-scoped group of one of four record kinds: function
// types, imports, exports, or function bodies. Function bodies carry a small
// instruction stream terminated by an end instruction.
//
// # Parsing
//
// Parsing is lazy: a Decoder yields sections on demand, and each section
// yields its records on demand through a count-bounded iterator. Cursors and
// raw byte ranges borrow from the input buffer, so the buffer must outlive
// them; only strings are copied out.
//
//	d, err := wit.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for !d.Empty() {
//	    s, err := d.Section()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    switch s.Kind {
//	    case wit.SectionType:
//	        for {
//	            ty, ok, err := s.Types.Next()
//	            if err != nil || !ok {
//	                break
//	            }
//	            fmt.Println(ty)
//	        }
//	    }
//	}
//
// Every decode failure carries the absolute byte offset of the offending
// token; the cursor is restored to that offset, so diagnostics point at the
// byte that failed rather than wherever parsing happened to stop.
//
// # Instructions
//
// The opcode table maps each instruction's opcode byte, mnemonic, and
// operand shape in one place. The binary decoder, the binary encoder, and
// the wittext package all consult the same table, so the two directions
// cannot diverge.
//
//	body := fn.Instructions()
//	for {
//	    in, ok, err := body.Next()
//	    if err != nil || !ok {
//	        break
//	    }
//	    fmt.Println(in) // "arg.get 3", "call-core 0", "end"
//	}
package wit
