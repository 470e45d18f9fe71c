package cramwire

// Encodable is implemented by any value that knows how to serialize
// itself onto the wire at a given field number. In this package
// Message[T] implements it; generated records implement
// EncodableMessage instead, and the other value shapes are plain
// Encode*/Size*/Decode* functions.
//
// EncodedSize must return the exact number of bytes Encode will write
// for fieldNum; callers use it to preallocate buffers and the record
// generator uses it to implement a record's own EncodedSize.
type Encodable interface {
	// WireType reports which of the four wire types this value is
	// encoded as, independent of any particular field number.
	WireType() WireType

	// EncodedSize returns the number of bytes Encode(w, fieldNum) will
	// write, including the field's own tag.
	EncodedSize(fieldNum int) int

	// Encode writes the field's tag followed by its value to w.
	Encode(w *Writer, fieldNum int)
}

// Most value shapes also expose a *Precomputed variant of their encode
// function (EncodeUintPrecomputed, EncodeStringPrecomputed,
// Message[T].EncodePrecomputed, PackedFixed32Precomputed, and so on)
// taking a pre-encoded tag ([]byte, via Writer.WritePrecomputedTag)
// instead of a fieldNum. These aren't part of the Encodable interface
// itself, since the tag bytes depend on the field's wire type which is
// fixed per value shape, not per interface method — but they are the
// calls the record generator emits once it knows a field's tag at
// compile time (see pkg/codegen).

// Decodable is implemented by any value that can be populated from a
// single field's worth of wire data. Decode is called with the reader
// positioned immediately after the field's tag has already been
// consumed by the caller; wireType is the wire type the tag declared,
// so a Decodable that only accepts one wire type can reject mismatches.
//
// Repeated occurrences of the same field number are combined by the
// code that decodes the field: generated scalar and string fields
// overwrite, repeated fields append, map fields insert the entry, and
// Message[T] decodes into its existing Value field by field.
type Decodable interface {
	// Decode reads one field occurrence from r, whose tag declared
	// wireType, into the receiver.
	Decode(r *Reader, wireType WireType) error
}

// EncodableMessage is implemented by generated record types. Unlike
// Encodable, a message's EncodedSize/Encode operate on the message's
// own fields directly (not as a single tagged field value) — they are
// wrapped as a length-delimited Encodable by Message[T].
type EncodableMessage interface {
	EncodedSize() int
	Encode(w *Writer)
}

// DecodableMessage is implemented by generated record types and
// mirrors EncodableMessage for decoding: DecodeField is dispatched once
// per field tag encountered inside the enclosing length-delimited frame.
type DecodableMessage interface {
	// DecodeField handles one field occurrence. For a field number it
	// does not recognize it calls r.SkipValue itself; DecodeRecord's
	// loop does no skipping of its own. Skipped fields are dropped,
	// not kept for re-encoding.
	DecodeField(r *Reader, fieldNum int, wireType WireType) error
}
