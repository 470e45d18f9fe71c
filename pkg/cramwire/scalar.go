package cramwire

// Scalar value encode/decode helpers. These are the building blocks the
// record generator calls directly; they are not wrapped in a type
// because a Go field of type int32 has no room for a method set of its
// own. Generated map fields pass closures over these to EncodeMap and
// DecodeMapEntry for their key and value encoding.

// EncodeUint writes an unsigned integer field as WireVarint.
func EncodeUint(w *Writer, fieldNum int, v uint64) {
	w.WriteTag(fieldNum, WireVarint)
	w.WriteUvarint(v)
}

// SizeUint returns the encoded size of an unsigned integer field.
func SizeUint(fieldNum int, v uint64) int {
	return TagSize(fieldNum) + SizeOfUvarint(v)
}

// DecodeUint reads an unsigned integer value. The caller has already
// consumed the field's tag and knows wireType == WireVarint.
func DecodeUint(r *Reader) uint64 {
	return r.ReadUvarint()
}

// EncodeSint writes a signed integer field as WireVarint using the
// zig-zag transform, so small-magnitude negative values stay compact.
func EncodeSint(w *Writer, fieldNum int, v int64) {
	w.WriteTag(fieldNum, WireVarint)
	w.WriteSvarint(v)
}

// SizeSint returns the encoded size of a zig-zag signed integer field.
func SizeSint(fieldNum int, v int64) int {
	return TagSize(fieldNum) + SizeOfSvarint(v)
}

// DecodeSint reads a zig-zag signed integer value.
func DecodeSint(r *Reader) int64 {
	return r.ReadSvarint()
}

// EncodeBool writes a boolean field as WireVarint (0 or 1).
func EncodeBool(w *Writer, fieldNum int, v bool) {
	w.WriteTag(fieldNum, WireVarint)
	if v {
		w.WriteUvarint(1)
	} else {
		w.WriteUvarint(0)
	}
}

// SizeBool returns the encoded size of a boolean field.
func SizeBool(fieldNum int) int {
	return TagSize(fieldNum) + 1
}

// DecodeBool reads a boolean value.
func DecodeBool(r *Reader) bool {
	return r.ReadUvarint() != 0
}

// EncodeFixed32 writes a uint32 field as WireFixed32.
func EncodeFixed32(w *Writer, fieldNum int, v uint32) {
	w.WriteTag(fieldNum, WireFixed32)
	w.WriteFixed32(v)
}

// SizeFixed32 returns the encoded size of a fixed32 field.
func SizeFixed32(fieldNum int) int {
	return TagSize(fieldNum) + Fixed32Size
}

// DecodeFixed32 reads a fixed32 value.
func DecodeFixed32(r *Reader) uint32 {
	return r.ReadFixed32()
}

// EncodeFixed64 writes a uint64 field as WireFixed64.
func EncodeFixed64(w *Writer, fieldNum int, v uint64) {
	w.WriteTag(fieldNum, WireFixed64)
	w.WriteFixed64(v)
}

// SizeFixed64 returns the encoded size of a fixed64 field.
func SizeFixed64(fieldNum int) int {
	return TagSize(fieldNum) + Fixed64Size
}

// DecodeFixed64 reads a fixed64 value.
func DecodeFixed64(r *Reader) uint64 {
	return r.ReadFixed64()
}

// EncodeFloat32 writes a float32 field as WireFixed32, canonicalizing
// NaN and negative zero so two encoders produce identical bytes for
// the same logical value.
func EncodeFloat32(w *Writer, fieldNum int, v float32) {
	w.WriteTag(fieldNum, WireFixed32)
	w.WriteFloat32(v)
}

// SizeFloat32 returns the encoded size of a float32 field.
func SizeFloat32(fieldNum int) int {
	return TagSize(fieldNum) + Float32Size
}

// DecodeFloat32 reads a float32 value.
func DecodeFloat32(r *Reader) float32 {
	return r.ReadFloat32()
}

// EncodeFloat64 writes a float64 field as WireFixed64, canonicalizing
// NaN and negative zero.
func EncodeFloat64(w *Writer, fieldNum int, v float64) {
	w.WriteTag(fieldNum, WireFixed64)
	w.WriteFloat64(v)
}

// SizeFloat64 returns the encoded size of a float64 field.
func SizeFloat64(fieldNum int) int {
	return TagSize(fieldNum) + Float64Size
}

// DecodeFloat64 reads a float64 value.
func DecodeFloat64(r *Reader) float64 {
	return r.ReadFloat64()
}

// Precomputed-tag variants. A record whose field tags are known at
// compile time (the record generator's output, see pkg/codegen) writes
// the tag with WritePrecomputedTag instead of recomputing and
// varint-encoding it on every call; the value encoding is identical.

// EncodeUintPrecomputed writes an unsigned integer field using a
// precomputed tag for WireVarint.
func EncodeUintPrecomputed(w *Writer, tag []byte, v uint64) {
	w.WritePrecomputedTag(tag)
	w.WriteUvarint(v)
}

// EncodeSintPrecomputed writes a zig-zag signed integer field using a
// precomputed tag for WireVarint.
func EncodeSintPrecomputed(w *Writer, tag []byte, v int64) {
	w.WritePrecomputedTag(tag)
	w.WriteSvarint(v)
}

// EncodeBoolPrecomputed writes a boolean field using a precomputed tag
// for WireVarint.
func EncodeBoolPrecomputed(w *Writer, tag []byte, v bool) {
	w.WritePrecomputedTag(tag)
	if v {
		w.WriteUvarint(1)
	} else {
		w.WriteUvarint(0)
	}
}

// EncodeFloat32Precomputed writes a float32 field using a precomputed
// tag for WireFixed32.
func EncodeFloat32Precomputed(w *Writer, tag []byte, v float32) {
	w.WritePrecomputedTag(tag)
	w.WriteFloat32(v)
}

// EncodeFloat64Precomputed writes a float64 field using a precomputed
// tag for WireFixed64.
func EncodeFloat64Precomputed(w *Writer, tag []byte, v float64) {
	w.WritePrecomputedTag(tag)
	w.WriteFloat64(v)
}
