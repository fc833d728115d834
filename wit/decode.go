package wit

import (
	"go.uber.org/zap"

	witcodec "github.com/wippyai/wit-codec"
	"github.com/wippyai/wit-codec/errors"
)

// Decoder walks a wit binary stream section by section. The version string
// at the start of the stream is checked on construction; no section is
// visible before that check succeeds.
type Decoder struct {
	cur Cursor
}

// NewDecoder validates the leading version string against version and
// returns a decoder positioned at the first section. On a mismatch the
// whole input is considered unparsed: the error's offset is 0.
func NewDecoder(data []byte, version string) (*Decoder, error) {
	cur := NewCursor(data)
	found, err := cur.ReadString()
	if err != nil {
		return nil, err
	}
	if found != version {
		return nil, errors.InvalidVersion(found)
	}
	Logger().Debug("decoder ready",
		zap.String("version", found),
		zap.Int("remaining", cur.Len()))
	return &Decoder{cur: cur}, nil
}

// Parse is NewDecoder with the schema version this release of the library
// was built against.
func Parse(data []byte) (*Decoder, error) {
	return NewDecoder(data, witcodec.SchemaVersion)
}

// Empty reports whether the stream has no further sections.
func (d *Decoder) Empty() bool {
	return d.cur.Empty()
}

// Pos returns the absolute offset of the next unread byte. After a failed
// Section call this is the offset of the token that failed.
func (d *Decoder) Pos() int {
	return d.cur.Pos()
}

// SectionKind identifies one of the four section payload kinds.
type SectionKind byte

const (
	SectionType   SectionKind = 0 // function signatures
	SectionImport SectionKind = 1 // host functions
	SectionExport SectionKind = 2 // exported functions
	SectionFunc   SectionKind = 3 // function bodies
)

func (k SectionKind) String() string {
	switch k {
	case SectionType:
		return "type"
	case SectionImport:
		return "import"
	case SectionExport:
		return "export"
	case SectionFunc:
		return "func"
	}
	return "unknown"
}

// Iterators over each section's record kind.
type (
	Types   = Iterator[Type]
	Imports = Iterator[Import]
	Exports = Iterator[Export]
	Funcs   = Iterator[Func]
)

// Section is one decoded section header: its kind plus a bounded iterator
// over its records. Exactly one of the iterator fields is non-nil,
// determined by Kind.
type Section struct {
	Kind    SectionKind
	Types   *Types
	Imports *Imports
	Exports *Exports
	Funcs   *Funcs
}

// Count returns the section's declared remaining record count.
func (s *Section) Count() uint32 {
	switch s.Kind {
	case SectionType:
		return s.Types.Remaining()
	case SectionImport:
		return s.Imports.Remaining()
	case SectionExport:
		return s.Exports.Remaining()
	case SectionFunc:
		return s.Funcs.Remaining()
	}
	return 0
}

// Section decodes the next section header: one id byte, then a
// length-prefixed payload carved into a sub-cursor scoped exactly to it.
// The payload's leading varint (the record count) is consumed immediately;
// the records themselves are decoded lazily by the returned iterator.
//
// An unknown id restores the decoder to the id byte, so the reported
// position is the id's offset.
func (d *Decoder) Section() (*Section, error) {
	saved := d.cur

	id, err := d.cur.ReadByte()
	if err != nil {
		return nil, err
	}
	payload, err := d.cur.ReadScoped()
	if err != nil {
		return nil, err
	}

	kind := SectionKind(id)
	switch kind {
	case SectionType, SectionImport, SectionExport, SectionFunc:
	default:
		d.cur = saved
		return nil, errors.InvalidSection(saved.pos, id)
	}

	count, err := payload.ReadU32()
	if err != nil {
		return nil, err
	}
	Logger().Debug("section decoded",
		zap.Stringer("kind", kind),
		zap.Uint32("count", count),
		zap.Int("payload", payload.Len()))

	s := &Section{Kind: kind}
	switch kind {
	case SectionType:
		s.Types = newIterator(payload, count, DecodeType)
	case SectionImport:
		s.Imports = newIterator(payload, count, DecodeImport)
	case SectionExport:
		s.Exports = newIterator(payload, count, DecodeExport)
	case SectionFunc:
		s.Funcs = newIterator(payload, count, DecodeFunc)
	}
	return s, nil
}

// DecodeFn decodes one record from a cursor, advancing it on success.
type DecodeFn[T any] func(*Cursor) (T, error)

// Iterator decodes exactly its declared count of records from a scoped
// sub-cursor, then requires the sub-cursor to be empty. It is the driver
// behind every section's record stream.
//
// Once a Next call returns an error, the iterator's position is no longer
// reliable; callers must stop consuming. An exhausted iterator is not
// restartable.
type Iterator[T any] struct {
	cur       Cursor
	remaining uint32
	decode    DecodeFn[T]
}

func newIterator[T any](cur Cursor, count uint32, decode DecodeFn[T]) *Iterator[T] {
	return &Iterator[T]{cur: cur, remaining: count, decode: decode}
}

// Remaining returns the number of records not yet decoded.
func (it *Iterator[T]) Remaining() uint32 {
	return it.remaining
}

// Pos returns the absolute offset of the iterator's next unread byte.
func (it *Iterator[T]) Pos() int {
	return it.cur.Pos()
}

// Next decodes the next record. It returns ok=false with a nil error when
// the declared count has been consumed and the scoped range is exactly
// exhausted; stray bytes after the last record are a trailing_bytes error.
func (it *Iterator[T]) Next() (T, bool, error) {
	var zero T
	if it.remaining == 0 {
		if !it.cur.Empty() {
			return zero, false, errors.TrailingBytes(it.cur.Pos())
		}
		return zero, false, nil
	}
	it.remaining--
	v, err := it.decode(&it.cur)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Collect drains the iterator into a slice, stopping at the first error.
func (it *Iterator[T]) Collect() ([]T, error) {
	var out []T
	for {
		v, ok, err := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
