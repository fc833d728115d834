package wit_test

import (
	stderrors "errors"
	"testing"

	witcodec "github.com/wippyai/wit-codec"
	"github.com/wippyai/wit-codec/errors"
	"github.com/wippyai/wit-codec/wit"
)

// stream builds a wit binary: version string followed by raw section bytes.
func stream(t *testing.T, sections ...[]byte) []byte {
	t.Helper()
	buf := wit.AppendUleb128(nil, uint32(len(witcodec.SchemaVersion)))
	buf = append(buf, witcodec.SchemaVersion...)
	for _, s := range sections {
		buf = append(buf, s...)
	}
	return buf
}

// section builds one section: id byte plus length-prefixed payload.
func section(id byte, payload ...byte) []byte {
	buf := []byte{id}
	buf = wit.AppendUleb128(buf, uint32(len(payload)))
	return append(buf, payload...)
}

func headerLen() int {
	return 1 + len(witcodec.SchemaVersion)
}

func TestDecoderVersionGuard(t *testing.T) {
	d, err := wit.Parse(stream(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !d.Empty() {
		t.Errorf("empty stream: %d bytes left", d.Pos())
	}
}

func TestDecoderVersionMismatch(t *testing.T) {
	buf := wit.AppendUleb128(nil, 5)
	buf = append(buf, "bogus"...)

	_, err := wit.Parse(buf)
	var decodeErr *errors.Error
	if !stderrors.As(err, &decodeErr) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if decodeErr.Kind != errors.KindInvalidVersion || decodeErr.Found != "bogus" {
		t.Errorf("got %+v, want invalid_version found=bogus", decodeErr)
	}
	// The whole input is considered unparsed on a version mismatch.
	if decodeErr.Offset != 0 {
		t.Errorf("offset: got %d, want 0", decodeErr.Offset)
	}
}

func TestDecoderVersionDeterministic(t *testing.T) {
	data := stream(t, section(0, 0x00))
	for i := 0; i < 2; i++ {
		d, err := wit.Parse(data)
		if err != nil {
			t.Fatalf("Parse #%d: %v", i, err)
		}
		if d.Pos() != headerLen() {
			t.Errorf("Parse #%d: pos %d, want %d", i, d.Pos(), headerLen())
		}
	}
}

func TestDecodeTypeSection(t *testing.T) {
	// count=1, one type: zero params, one u32 result.
	data := stream(t, section(0, 0x01, 0x00, 0x01, 0x07))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := d.Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if s.Kind != wit.SectionType || s.Count() != 1 {
		t.Fatalf("got kind %s count %d, want type count 1", s.Kind, s.Count())
	}

	types, err := s.Types.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(types) != 1 {
		t.Fatalf("got %d types, want 1", len(types))
	}
	ty := types[0]
	if len(ty.Params) != 0 {
		t.Errorf("params: got %v, want []", ty.Params)
	}
	if len(ty.Results) != 1 || ty.Results[0] != wit.ValU32 {
		t.Errorf("results: got %v, want [u32]", ty.Results)
	}
	if !d.Empty() {
		t.Errorf("stream not exhausted: pos %d", d.Pos())
	}
}

func TestDecodeImportSection(t *testing.T) {
	payload := []byte{0x01} // count
	payload = append(payload, 0x03)
	payload = append(payload, "env"...)
	payload = append(payload, 0x03)
	payload = append(payload, "log"...)
	payload = append(payload, 0x02) // type index
	data := stream(t, section(1, payload...))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := d.Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if s.Kind != wit.SectionImport {
		t.Fatalf("kind: got %s, want import", s.Kind)
	}

	imports, err := s.Imports.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := wit.Import{Module: "env", Name: "log", TypeIdx: 2}
	if len(imports) != 1 || imports[0] != want {
		t.Errorf("got %+v, want [%+v]", imports, want)
	}
}

func TestDecodeExportSection(t *testing.T) {
	payload := []byte{0x02} // count
	payload = append(payload, 0x00, 0x03)
	payload = append(payload, "foo"...)
	payload = append(payload, 0x07, 0x03)
	payload = append(payload, "bar"...)
	data := stream(t, section(2, payload...))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := d.Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}

	exports, err := s.Exports.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := []wit.Export{
		{FuncIdx: 0, Name: "foo"},
		{FuncIdx: 7, Name: "bar"},
	}
	if len(exports) != 2 || exports[0] != want[0] || exports[1] != want[1] {
		t.Errorf("got %+v, want %+v", exports, want)
	}
}

func TestDecodeInvalidSectionID(t *testing.T) {
	data := stream(t, section(9, 0x00))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = d.Section()
	var decodeErr *errors.Error
	if !stderrors.As(err, &decodeErr) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if decodeErr.Kind != errors.KindInvalidSection || decodeErr.Byte != 9 {
		t.Errorf("got %+v, want invalid_section id=9", decodeErr)
	}
	// The error points at the id byte, and the decoder is restored there.
	if decodeErr.Offset != headerLen() || d.Pos() != headerLen() {
		t.Errorf("offset %d pos %d, want %d", decodeErr.Offset, d.Pos(), headerLen())
	}
}

func TestDecodeTrailingBytesInSection(t *testing.T) {
	// count=1, one valid empty type, then a stray byte inside the payload.
	data := stream(t, section(0, 0x01, 0x00, 0x00, 0xAA))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := d.Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}

	if _, ok, err := s.Types.Next(); err != nil || !ok {
		t.Fatalf("first item: ok=%v err=%v", ok, err)
	}
	_, _, err = s.Types.Next()
	if !stderrors.Is(err, &errors.Error{Kind: errors.KindTrailingBytes}) {
		t.Fatalf("got %v, want trailing_bytes", err)
	}
}

func TestDecodeSectionNotRestartable(t *testing.T) {
	data := stream(t, section(0, 0x01, 0x00, 0x00))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := d.Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}

	if _, err := s.Types.Collect(); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	// A drained iterator stays drained.
	for i := 0; i < 2; i++ {
		_, ok, err := s.Types.Next()
		if ok || err != nil {
			t.Fatalf("drained Next #%d: ok=%v err=%v", i, ok, err)
		}
	}
}

func TestDecodeFuncSection(t *testing.T) {
	// One func: body = type_idx 5, arg.get 0, call-core 1, end.
	body := []byte{0x05, 0x00, 0x00, 0x01, 0x01, 0x02}
	payload := []byte{0x01}
	payload = wit.AppendUleb128(payload, uint32(len(body)))
	payload = append(payload, body...)
	data := stream(t, section(3, payload...))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := d.Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if s.Kind != wit.SectionFunc {
		t.Fatalf("kind: got %s, want func", s.Kind)
	}

	funcs, err := s.Funcs.Collect()
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(funcs) != 1 {
		t.Fatalf("got %d funcs, want 1", len(funcs))
	}
	fn := funcs[0]
	if fn.TypeIdx != 5 {
		t.Errorf("type index: got %d, want 5", fn.TypeIdx)
	}

	instrs, err := fn.Instructions().Collect()
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	want := []wit.Instruction{
		{Op: wit.OpArgGet, Index: 0},
		{Op: wit.OpCallCore, Index: 1},
		{Op: wit.OpEnd},
	}
	if len(instrs) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(instrs), len(want))
	}
	for i := range want {
		if instrs[i] != want[i] {
			t.Errorf("instr %d: got %v, want %v", i, instrs[i], want[i])
		}
	}
}

func TestDecodeFuncBodyTruncated(t *testing.T) {
	// The func item declares a 9-byte body but only 2 bytes follow.
	payload := []byte{0x01, 0x09, 0x00, 0x02}
	data := stream(t, section(3, payload...))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := d.Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}

	_, _, err = s.Funcs.Next()
	var decodeErr *errors.Error
	if !stderrors.As(err, &decodeErr) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if decodeErr.Kind != errors.KindTruncated || decodeErr.Want != 9 {
		t.Errorf("got %+v, want truncated want=9", decodeErr)
	}
	// The offset is the body length prefix: right after the count byte.
	wantOffset := headerLen() + 2 /* id + payload len */ + 1 /* count */
	if decodeErr.Offset != wantOffset {
		t.Errorf("offset: got %d, want %d", decodeErr.Offset, wantOffset)
	}
}

func TestDecodeMultipleSections(t *testing.T) {
	data := stream(t,
		section(0, 0x01, 0x00, 0x00), // one empty type
		section(2, 0x00),             // empty export section
	)

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var kinds []wit.SectionKind
	for !d.Empty() {
		s, err := d.Section()
		if err != nil {
			t.Fatalf("Section: %v", err)
		}
		kinds = append(kinds, s.Kind)
	}
	if len(kinds) != 2 || kinds[0] != wit.SectionType || kinds[1] != wit.SectionExport {
		t.Errorf("got %v, want [type export]", kinds)
	}
}

func TestDecodeInvalidValType(t *testing.T) {
	// count=1, one type: one param with code 0x0B (out of range).
	data := stream(t, section(0, 0x01, 0x01, 0x0B, 0x00))

	d, err := wit.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, err := d.Section()
	if err != nil {
		t.Fatalf("Section: %v", err)
	}

	_, _, err = s.Types.Next()
	var decodeErr *errors.Error
	if !stderrors.As(err, &decodeErr) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if decodeErr.Kind != errors.KindInvalidValType || decodeErr.Byte != 0x0B {
		t.Errorf("got %+v, want invalid_valtype code=0x0b", decodeErr)
	}
	// id + payload len + count + params count
	wantOffset := headerLen() + 2 + 2
	if decodeErr.Offset != wantOffset {
		t.Errorf("offset: got %d, want %d", decodeErr.Offset, wantOffset)
	}
}
