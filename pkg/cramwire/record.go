package cramwire

// EncodeRecord serializes a top-level record (one that implements
// EncodableMessage) to a freshly allocated byte slice. Unlike a nested
// message field, a top-level record has no enclosing tag or length
// prefix — the record's own Encode writes exactly its fields.
func EncodeRecord(v EncodableMessage) []byte {
	w := GetWriter()
	defer PutWriter(w)
	v.Encode(w)
	return w.BytesCopy()
}

// EncodeRecordWithOptions is EncodeRecord with explicit Options (limits,
// determinism, UTF-8 validation).
func EncodeRecordWithOptions(v EncodableMessage, opts Options) []byte {
	w := NewWriterWithOptions(opts)
	v.Encode(w)
	return w.Bytes()
}

// EncodeRecordSized is EncodeRecord for a caller that can afford to
// call v.EncodedSize() first. It draws its working buffer from the
// size-tiered pool sized to fit the record exactly, instead of the
// growable 256-byte default GetWriter starts from, so large records
// encode without an intermediate grow-and-copy.
func EncodeRecordSized(v EncodableMessage) []byte {
	w := GetWriterWithHint(OptimalBufferSize(v.EncodedSize()))
	v.Encode(w)
	out := w.BytesCopy()
	PutWriterBuffer(w)
	return out
}

// AppendRecord encodes v and appends it to buf, returning the extended
// slice. Useful for building up a buffer of concatenated records
// without an intermediate allocation per record.
func AppendRecord(buf []byte, v EncodableMessage) []byte {
	w := NewWriterWithBuffer(buf, DefaultOptions)
	v.Encode(w)
	return w.Bytes()
}

// DecodeRecord decodes data into v (which implements DecodableMessage)
// by dispatching each top-level field tag to v.DecodeField. Fields
// whose number DecodeField does not recognize are skipped, so old
// readers can tolerate data written by a newer writer with additional
// fields.
func DecodeRecord(data []byte, v DecodableMessage) error {
	return DecodeRecordWithOptions(data, v, DefaultOptions)
}

// DecodeRecordWithOptions is DecodeRecord with explicit Options.
func DecodeRecordWithOptions(data []byte, v DecodableMessage, opts Options) error {
	r := NewReaderWithOptions(data, opts)
	for !r.EOF() && r.Err() == nil {
		fieldNum, wireType := r.ReadTag()
		if r.Err() != nil {
			break
		}
		if err := v.DecodeField(r, fieldNum, wireType); err != nil {
			return err
		}
	}
	return r.Err()
}
