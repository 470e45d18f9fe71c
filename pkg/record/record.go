// Package record is the runtime counterpart to cmd/cramgen: where the
// generator emits precomputed tags and a dense dispatch switch at
// build time for types it has seen in source form, Describe builds the
// same per-field dispatch table at first use for types that only exist
// as a field list supplied in code (plugin-loaded types, types composed
// across package boundaries the generator didn't walk, or records built
// up programmatically). Both paths must agree byte-for-byte on the
// wire: a Schema[T] built here and a generated T.Encode for the same
// field list produce identical output.
package record

import (
	"reflect"
	"sync"

	"github.com/blockberries/cramwire/internal/wire"
	"github.com/blockberries/cramwire/pkg/cramwire"
)

// Field describes one wire field of T: its number, and how to size,
// encode and decode it. Callers build these with the Uint/Sint/String/
// etc. constructors below rather than populating the struct directly,
// so that WireType and the three functions always agree with each
// other.
type Field[T any] struct {
	Number      int
	WireType    cramwire.WireType
	EncodedSize func(*T) int
	Encode      func(*cramwire.Writer, []byte, *T)
	DecodeField func(*T, *cramwire.Reader, cramwire.WireType) error
}

// Schema is a memoized description of T's wire encoding: one Field per
// struct field, each with its tag precomputed once rather than on every
// Encode/Decode call. Build one with Describe, not with &Schema[T]{}.
type Schema[T any] struct {
	fields []schemaField[T]
	byTag  map[uint64]*schemaField[T]
}

type schemaField[T any] struct {
	field Field[T]
	tag   []byte
}

var registry sync.Map // reflect.Type -> any (*Schema[T])

// Describe returns the Schema for T, building and memoizing it on the
// first call for a given T and returning the cached Schema on every
// call after that. fields must list every wire field of T; Describe
// keeps them in the order given (Encode writes them in that order) and
// precomputes each one's tag. Concurrent calls for
// the same T may race to build the schema, but LoadOrStore ensures
// every caller observes the same winning *Schema[T].
func Describe[T any](fields ...Field[T]) *Schema[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := registry.Load(key); ok {
		return cached.(*Schema[T])
	}

	s := &Schema[T]{
		fields: make([]schemaField[T], len(fields)),
		byTag:  make(map[uint64]*schemaField[T], len(fields)),
	}
	for i, f := range fields {
		tag := wire.AppendTag(nil, f.Number, wire.WireType(f.WireType))
		s.fields[i] = schemaField[T]{field: f, tag: tag}
	}
	for i := range s.fields {
		s.byTag[uint64(wire.NewTag(s.fields[i].field.Number, wire.WireType(s.fields[i].field.WireType)))] = &s.fields[i]
	}

	actual, _ := registry.LoadOrStore(key, s)
	return actual.(*Schema[T])
}

// EncodedSize returns the total encoded size of every field in v.
func (s *Schema[T]) EncodedSize(v *T) int {
	size := 0
	for i := range s.fields {
		size += s.fields[i].field.EncodedSize(v)
	}
	return size
}

// Encode writes every field of v to w in schema order, using each
// field's precomputed tag.
func (s *Schema[T]) Encode(w *cramwire.Writer, v *T) {
	for i := range s.fields {
		f := &s.fields[i]
		f.field.Encode(w, f.tag, v)
	}
}

// DecodeField dispatches one decoded field occurrence into v. An
// unrecognized (fieldNum, wireType) pair is skipped, not an error, the
// same forward-compatibility rule generated DecodeField methods follow.
func (s *Schema[T]) DecodeField(v *T, r *cramwire.Reader, fieldNum int, wireType cramwire.WireType) error {
	tag := uint64(wire.NewTag(fieldNum, wire.WireType(wireType)))
	f, ok := s.byTag[tag]
	if !ok {
		r.SkipValue(wireType)
		return r.Err()
	}
	return f.field.DecodeField(v, r, wireType)
}

// Of adapts a Schema and a *T into cramwire.EncodableMessage and
// cramwire.DecodableMessage, so a schema-described type can be used
// anywhere a generated record is expected — as a Message[T] field, or
// passed to EncodeRecord/DecodeRecord directly.
type Of[T any] struct {
	Schema *Schema[T]
	Value  *T
}

func (o Of[T]) EncodedSize() int { return o.Schema.EncodedSize(o.Value) }

func (o Of[T]) Encode(w *cramwire.Writer) { o.Schema.Encode(w, o.Value) }

func (o Of[T]) DecodeField(r *cramwire.Reader, fieldNum int, wireType cramwire.WireType) error {
	return o.Schema.DecodeField(o.Value, r, fieldNum, wireType)
}
