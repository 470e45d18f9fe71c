package cramwire

// Map fields are encoded as a repeated occurrence of a synthetic entry
// sub-message, one per key/value pair, with the entry's own inner tags
// fixed at 1 (key) and 2 (value) — the same convention protobuf maps
// use. EncodeMap/DecodeMapEntry take caller-supplied encode/decode
// closures for the key and value rather than requiring K and V to
// implement Encodable/Decodable themselves, since map keys are often
// plain comparable scalars with no method set.

// EncodeMapEntry encodes a single key/value pair as one occurrence of
// fieldNum: a length-delimited sub-message containing inner field 1
// (key) and inner field 2 (value).
func EncodeMapEntry[K comparable, V any](w *Writer, fieldNum int, key K, value V, encodeKey func(w *Writer, fieldNum int, k K), encodeValue func(w *Writer, fieldNum int, v V)) {
	w.WriteTag(fieldNum, WireBytes)
	token := w.BeginMessage()
	encodeKey(w, 1, key)
	encodeValue(w, 2, value)
	w.EndMessage(token)
}

// SizeMapEntry returns the encoded size of a single map entry.
func SizeMapEntry[K comparable, V any](fieldNum int, key K, value V, sizeKey func(fieldNum int, k K) int, sizeValue func(fieldNum int, v V) int) int {
	body := sizeKey(1, key) + sizeValue(2, value)
	return TagSize(fieldNum) + SizeOfUvarint(uint64(body)) + body
}

// EncodeMap writes every entry of m as a separate tagged occurrence of
// fieldNum, in the order given by keys. Generated records pass the
// output of SortedStringKeys/SortedIntKeys, so their map encoding is
// deterministic; Options.Deterministic plays no part in it.
func EncodeMap[K comparable, V any](w *Writer, fieldNum int, m map[K]V, keys []K, encodeKey func(w *Writer, fieldNum int, k K), encodeValue func(w *Writer, fieldNum int, v V)) {
	for _, k := range keys {
		EncodeMapEntry(w, fieldNum, k, m[k], encodeKey, encodeValue)
	}
}

// DecodeMapEntry reads one entry sub-message and returns its key/value.
// wireType must be WireBytes; the caller consumed the field's own tag.
func DecodeMapEntry[K comparable, V any](r *Reader, wireType WireType, zeroKey K, zeroValue V, decodeKey func(r *Reader) K, decodeValue func(r *Reader) V) (K, V, error) {
	if wireType != WireBytes {
		return zeroKey, zeroValue, ErrInvalidWireType
	}
	token := r.BeginMessage()
	key := zeroKey
	value := zeroValue
	for r.LimitRemaining() > 0 && r.Err() == nil {
		innerField, innerWire := r.ReadTag()
		if r.Err() != nil {
			break
		}
		switch innerField {
		case 1:
			key = decodeKey(r)
		case 2:
			value = decodeValue(r)
		default:
			r.SkipValue(innerWire)
		}
	}
	r.EndMessage(token)
	if r.Err() != nil {
		return zeroKey, zeroValue, r.Err()
	}
	return key, value, nil
}

// SortedStringKeys returns the keys of m in ascending order, for
// deterministic map encoding.
func SortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	insertionSortStrings(keys)
	return keys
}

// SortedIntKeys returns the keys of m in ascending order.
func SortedIntKeys[K ~int | ~int8 | ~int16 | ~int32 | ~int64 |
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	insertionSortOrdered(keys)
	return keys
}

// SortedFloat64Keys returns the keys of m in ascending order, for
// deterministic map encoding. NaN compares greater than every other
// float64 (including +Inf) and sorts after them; among themselves,
// multiple NaN keys keep the map's iteration order, which can differ
// from call to call. -0 and +0 compare equal.
func SortedFloat64Keys[V any](m map[float64]V) []float64 {
	keys := make([]float64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	insertionSortFloat64(keys)
	return keys
}

func float64Less(a, b float64) bool {
	aNaN, bNaN := a != a, b != b
	if aNaN || bNaN {
		return !aNaN && bNaN
	}
	return a < b
}

func insertionSortFloat64(a []float64) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && float64Less(a[j], a[j-1]); j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

// insertionSortStrings sorts small-to-medium key sets without pulling
// in sort.Slice's reflection-based comparator, matching the
// allocation-free bent of the rest of the package.
func insertionSortStrings(a []string) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

func insertionSortOrdered[K ~int | ~int8 | ~int16 | ~int32 | ~int64 |
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a []K) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}
