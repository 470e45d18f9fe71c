package cramwire

// Enum fields are encoded as plain (non-zigzag) varints of the
// underlying int32 discriminant, the same as protobuf enums. Every
// generated enum type must define a zero value as its default; a
// discriminant the decoder doesn't recognize is not an error — it
// silently falls back to the zero value, so that a reader built
// against an older enum definition can still decode data written by a
// newer one that added cases.

// EncodeEnum writes an enum field.
func EncodeEnum[E ~int32](w *Writer, fieldNum int, v E) {
	w.WriteTag(fieldNum, WireVarint)
	w.WriteUvarint(uint64(uint32(int32(v))))
}

// SizeEnum returns the encoded size of an enum field.
func SizeEnum[E ~int32](fieldNum int, v E) int {
	return TagSize(fieldNum) + SizeOfUvarint(uint64(uint32(int32(v))))
}

// DecodeEnum reads an enum field. isValid reports whether a
// discriminant is one of the type's known cases; an unrecognized value
// decodes to the zero value rather than propagating an error.
func DecodeEnum[E ~int32](r *Reader, isValid func(E) bool) E {
	v := E(int32(uint32(r.ReadUvarint())))
	if r.Err() != nil {
		return E(0)
	}
	if !isValid(v) {
		return E(0)
	}
	return v
}

// EncodeEnumPrecomputed writes an enum field using a precomputed tag
// for WireVarint.
func EncodeEnumPrecomputed[E ~int32](w *Writer, tag []byte, v E) {
	w.WritePrecomputedTag(tag)
	w.WriteUvarint(uint64(uint32(int32(v))))
}
