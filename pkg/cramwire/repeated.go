package cramwire

// Repeated fields are, by default, encoded non-packed: one tag plus
// value per element, appearing consecutively under the same field
// number. This matches the wire format's rule that repeated occurrences
// of a scalar field merge by concatenation rather than by overwrite.
// Packed encoding (all values back-to-back behind a single length
// prefix) is available as an explicit opt-in for fixed-width numeric
// element types via the Packed* helpers below, not as the default.

// Message is a generic wrapper that turns any EncodableMessage into a
// length-delimited Encodable, and any DecodableMessage into a Decodable,
// for use as a nested message field. This mirrors a length-delimited
// field being "a varint size followed by the encoding of the inner
// message" with no special-casing at the wire level.
type Message[T interface {
	EncodableMessage
	DecodableMessage
}] struct {
	Value T
}

// WireType reports WireBytes: nested messages are always length-delimited.
func (Message[T]) WireType() WireType { return WireBytes }

// EncodedSize returns the tag plus length-prefix plus inner body size.
func (m Message[T]) EncodedSize(fieldNum int) int {
	body := m.Value.EncodedSize()
	return TagSize(fieldNum) + SizeOfUvarint(uint64(body)) + body
}

// Encode writes the field tag, the inner message's length, and its body.
func (m Message[T]) Encode(w *Writer, fieldNum int) {
	w.WriteTag(fieldNum, WireBytes)
	token := w.BeginMessage()
	m.Value.Encode(w)
	w.EndMessage(token)
}

// EncodePrecomputed is Encode using a precomputed tag for WireBytes
// instead of recomputing it from fieldNum.
func (m Message[T]) EncodePrecomputed(w *Writer, tag []byte) {
	w.WritePrecomputedTag(tag)
	token := w.BeginMessage()
	m.Value.Encode(w)
	w.EndMessage(token)
}

// Decode reads one occurrence of a nested message field, merging into
// m.Value via field-by-field dispatch to DecodeField.
func (m *Message[T]) Decode(r *Reader, wireType WireType) error {
	if wireType != WireBytes {
		return ErrInvalidWireType
	}
	token := r.BeginMessage()
	for r.LimitRemaining() > 0 && r.Err() == nil {
		fieldNum, wt := r.ReadTag()
		if r.Err() != nil {
			break
		}
		if err := m.Value.DecodeField(r, fieldNum, wt); err != nil {
			return err
		}
	}
	r.EndMessage(token)
	return r.Err()
}

// RepeatedMessage appends one decoded T per call; it is the merge
// semantics generated code uses for a `repeated` nested-message field
// (as opposed to a singular nested-message field, which overwrites).
func RepeatedMessage[T interface {
	EncodableMessage
	DecodableMessage
}](r *Reader, dst *[]T, wireType WireType, zero func() T) error {
	var wrapped Message[T]
	wrapped.Value = zero()
	if err := wrapped.Decode(r, wireType); err != nil {
		return err
	}
	*dst = append(*dst, wrapped.Value)
	return nil
}

// EncodeRepeatedMessage writes each element of values as a separate
// tagged occurrence of fieldNum (non-packed, per the default above).
func EncodeRepeatedMessage[T interface {
	EncodableMessage
	DecodableMessage
}](w *Writer, fieldNum int, values []T) {
	for _, v := range values {
		(Message[T]{Value: v}).Encode(w, fieldNum)
	}
}

// SizeRepeatedMessage returns the combined encoded size of all elements.
func SizeRepeatedMessage[T interface {
	EncodableMessage
	DecodableMessage
}](fieldNum int, values []T) int {
	total := 0
	for _, v := range values {
		total += (Message[T]{Value: v}).EncodedSize(fieldNum)
	}
	return total
}

// PackedFixed32 writes a repeated fixed32/float32 field in packed form:
// a single tag, a single byte-length prefix, and the concatenated raw
// 4-byte values. This is an explicit opt-in (see generator option
// `packed`), not the default non-packed repeated encoding.
func PackedFixed32(w *Writer, fieldNum int, values []uint32) {
	w.WriteTag(fieldNum, WireBytes)
	w.WriteUvarint(uint64(len(values) * Fixed32Size))
	for _, v := range values {
		w.WriteFixed32(v)
	}
}

// PackedFixed32Precomputed is PackedFixed32 using a precomputed tag for
// WireBytes instead of recomputing it from fieldNum.
func PackedFixed32Precomputed(w *Writer, tag []byte, values []uint32) {
	w.WritePrecomputedTag(tag)
	w.WriteUvarint(uint64(len(values) * Fixed32Size))
	for _, v := range values {
		w.WriteFixed32(v)
	}
}

// SizePackedFixed32 returns the encoded size of a packed fixed32 field.
func SizePackedFixed32(fieldNum int, values []uint32) int {
	n := len(values) * Fixed32Size
	return TagSize(fieldNum) + SizeOfUvarint(uint64(n)) + n
}

// DecodePackedFixed32 reads a packed fixed32 field's body, which the
// caller has already framed with BeginMessage/EndMessage or an
// equivalent length-bounded sub-slice.
func DecodePackedFixed32(r *Reader, dst *[]uint32) {
	for r.LimitRemaining() >= Fixed32Size {
		*dst = append(*dst, r.ReadFixed32())
		if r.Err() != nil {
			return
		}
	}
}

// PackedFixed64 is the 8-byte analogue of PackedFixed32.
func PackedFixed64(w *Writer, fieldNum int, values []uint64) {
	w.WriteTag(fieldNum, WireBytes)
	w.WriteUvarint(uint64(len(values) * Fixed64Size))
	for _, v := range values {
		w.WriteFixed64(v)
	}
}

// PackedFixed64Precomputed is PackedFixed64 using a precomputed tag for
// WireBytes instead of recomputing it from fieldNum.
func PackedFixed64Precomputed(w *Writer, tag []byte, values []uint64) {
	w.WritePrecomputedTag(tag)
	w.WriteUvarint(uint64(len(values) * Fixed64Size))
	for _, v := range values {
		w.WriteFixed64(v)
	}
}

// SizePackedFixed64 returns the encoded size of a packed fixed64 field.
func SizePackedFixed64(fieldNum int, values []uint64) int {
	n := len(values) * Fixed64Size
	return TagSize(fieldNum) + SizeOfUvarint(uint64(n)) + n
}

// DecodePackedFixed64 reads a packed fixed64 field's body.
func DecodePackedFixed64(r *Reader, dst *[]uint64) {
	for r.LimitRemaining() >= Fixed64Size {
		*dst = append(*dst, r.ReadFixed64())
		if r.Err() != nil {
			return
		}
	}
}
