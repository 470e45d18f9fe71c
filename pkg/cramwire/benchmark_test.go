package cramwire

import (
	"bytes"
	"encoding/json"
	"testing"
)

// Benchmark types
type BenchSmall struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

func (m *BenchSmall) EncodedSize() int {
	return SizeOfTag(1) + SizeOfSvarint(int64(m.ID)) +
		SizeOfTag(2) + SizeOfString(m.Name)
}

func (m *BenchSmall) Encode(w *Writer) {
	w.WriteTag(1, WireVarint)
	w.WriteSvarint(int64(m.ID))
	w.WriteTag(2, WireBytes)
	w.WriteString(m.Name)
}

func (m *BenchSmall) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		m.ID = int32(r.ReadSvarint())
	case 2:
		m.Name = r.ReadString()
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

type BenchMedium struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Active bool     `json:"active"`
	Score  float64  `json:"score"`
	Tags   []string `json:"tags"`
}

func (m *BenchMedium) EncodedSize() int {
	n := SizeOfTag(1) + SizeOfSvarint(m.ID) +
		SizeOfTag(2) + SizeOfString(m.Name) +
		SizeOfTag(3) + SizeOfString(m.Email) +
		SizeOfTag(4) + BoolSize +
		SizeOfTag(5) + Float64Size
	for _, t := range m.Tags {
		n += SizeOfTag(6) + SizeOfString(t)
	}
	return n
}

func (m *BenchMedium) Encode(w *Writer) {
	w.WriteTag(1, WireVarint)
	w.WriteSvarint(m.ID)
	w.WriteTag(2, WireBytes)
	w.WriteString(m.Name)
	w.WriteTag(3, WireBytes)
	w.WriteString(m.Email)
	w.WriteTag(4, WireVarint)
	w.WriteBool(m.Active)
	w.WriteTag(5, WireFixed64)
	w.WriteFloat64(m.Score)
	for _, t := range m.Tags {
		w.WriteTag(6, WireBytes)
		w.WriteString(t)
	}
}

func (m *BenchMedium) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		m.ID = r.ReadSvarint()
	case 2:
		m.Name = r.ReadString()
	case 3:
		m.Email = r.ReadString()
	case 4:
		m.Active = r.ReadBool()
	case 5:
		m.Score = r.ReadFloat64()
	case 6:
		m.Tags = append(m.Tags, r.ReadString())
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

type BenchLarge struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Active      bool              `json:"active"`
	Score       float64           `json:"score"`
	Tags        []string          `json:"tags"`
	Metadata    map[string]string `json:"metadata"`
	Nested      *BenchMedium      `json:"nested"`
	Numbers     []int32           `json:"numbers"`
	Description string            `json:"description"`
}

func (m *BenchLarge) EncodedSize() int {
	n := SizeOfTag(1) + SizeOfSvarint(m.ID) +
		SizeOfTag(2) + SizeOfString(m.Name) +
		SizeOfTag(3) + SizeOfString(m.Email) +
		SizeOfTag(4) + BoolSize +
		SizeOfTag(5) + Float64Size
	for _, t := range m.Tags {
		n += SizeOfTag(6) + SizeOfString(t)
	}
	keys := SortedStringKeys(m.Metadata)
	for _, k := range keys {
		n += SizeMapEntry(7, k, m.Metadata[k], func(f int, s string) int { return SizeOfTag(f) + SizeOfString(s) }, func(f int, s string) int { return SizeOfTag(f) + SizeOfString(s) })
	}
	if m.Nested != nil {
		body := m.Nested.EncodedSize()
		n += SizeOfTag(8) + SizeOfUvarint(uint64(body)) + body
	}
	for range m.Numbers {
		n += SizeOfTag(9) + 10 // conservative per-varint upper bound
	}
	n += SizeOfTag(10) + SizeOfString(m.Description)
	return n
}

func (m *BenchLarge) Encode(w *Writer) {
	w.WriteTag(1, WireVarint)
	w.WriteSvarint(m.ID)
	w.WriteTag(2, WireBytes)
	w.WriteString(m.Name)
	w.WriteTag(3, WireBytes)
	w.WriteString(m.Email)
	w.WriteTag(4, WireVarint)
	w.WriteBool(m.Active)
	w.WriteTag(5, WireFixed64)
	w.WriteFloat64(m.Score)
	for _, t := range m.Tags {
		w.WriteTag(6, WireBytes)
		w.WriteString(t)
	}
	keys := SortedStringKeys(m.Metadata)
	encodeStr := func(w *Writer, f int, s string) {
		w.WriteTag(f, WireBytes)
		w.WriteString(s)
	}
	for _, k := range keys {
		EncodeMapEntry(w, 7, k, m.Metadata[k], encodeStr, encodeStr)
	}
	if m.Nested != nil {
		w.WriteTag(8, WireBytes)
		token := w.BeginMessage()
		m.Nested.Encode(w)
		w.EndMessage(token)
	}
	for _, n := range m.Numbers {
		w.WriteTag(9, WireVarint)
		w.WriteSvarint(int64(n))
	}
	w.WriteTag(10, WireBytes)
	w.WriteString(m.Description)
}

func (m *BenchLarge) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		m.ID = r.ReadSvarint()
	case 2:
		m.Name = r.ReadString()
	case 3:
		m.Email = r.ReadString()
	case 4:
		m.Active = r.ReadBool()
	case 5:
		m.Score = r.ReadFloat64()
	case 6:
		m.Tags = append(m.Tags, r.ReadString())
	case 7:
		decodeStr := func(r *Reader) string { return r.ReadString() }
		key, value, err := DecodeMapEntry(r, wireType, "", "", decodeStr, decodeStr)
		if err != nil {
			return err
		}
		if m.Metadata == nil {
			m.Metadata = make(map[string]string)
		}
		m.Metadata[key] = value
	case 8:
		token := r.BeginMessage()
		nested := &BenchMedium{}
		for r.LimitRemaining() > 0 && r.Err() == nil {
			innerField, innerWire := r.ReadTag()
			if r.Err() != nil {
				break
			}
			if err := nested.DecodeField(r, innerField, innerWire); err != nil {
				return err
			}
		}
		r.EndMessage(token)
		m.Nested = nested
	case 9:
		m.Numbers = append(m.Numbers, int32(r.ReadSvarint()))
	case 10:
		m.Description = r.ReadString()
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

type BenchNested struct {
	Level1 *BenchNestedLevel1 `json:"level1"`
}

func (m *BenchNested) EncodedSize() int {
	if m.Level1 == nil {
		return 0
	}
	body := m.Level1.EncodedSize()
	return SizeOfTag(1) + SizeOfUvarint(uint64(body)) + body
}

func (m *BenchNested) Encode(w *Writer) {
	if m.Level1 == nil {
		return
	}
	w.WriteTag(1, WireBytes)
	token := w.BeginMessage()
	m.Level1.Encode(w)
	w.EndMessage(token)
}

func (m *BenchNested) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		token := r.BeginMessage()
		level1 := &BenchNestedLevel1{}
		for r.LimitRemaining() > 0 && r.Err() == nil {
			innerField, innerWire := r.ReadTag()
			if r.Err() != nil {
				break
			}
			if err := level1.DecodeField(r, innerField, innerWire); err != nil {
				return err
			}
		}
		r.EndMessage(token)
		m.Level1 = level1
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

type BenchNestedLevel1 struct {
	Level2 *BenchNestedLevel2 `json:"level2"`
	Value  string             `json:"value"`
}

func (m *BenchNestedLevel1) EncodedSize() int {
	n := SizeOfTag(2) + SizeOfString(m.Value)
	if m.Level2 != nil {
		body := m.Level2.EncodedSize()
		n += SizeOfTag(1) + SizeOfUvarint(uint64(body)) + body
	}
	return n
}

func (m *BenchNestedLevel1) Encode(w *Writer) {
	if m.Level2 != nil {
		w.WriteTag(1, WireBytes)
		token := w.BeginMessage()
		m.Level2.Encode(w)
		w.EndMessage(token)
	}
	w.WriteTag(2, WireBytes)
	w.WriteString(m.Value)
}

func (m *BenchNestedLevel1) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		token := r.BeginMessage()
		level2 := &BenchNestedLevel2{}
		for r.LimitRemaining() > 0 && r.Err() == nil {
			innerField, innerWire := r.ReadTag()
			if r.Err() != nil {
				break
			}
			if err := level2.DecodeField(r, innerField, innerWire); err != nil {
				return err
			}
		}
		r.EndMessage(token)
		m.Level2 = level2
	case 2:
		m.Value = r.ReadString()
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

type BenchNestedLevel2 struct {
	Level3 *BenchNestedLevel3 `json:"level3"`
	Value  string             `json:"value"`
}

func (m *BenchNestedLevel2) EncodedSize() int {
	n := SizeOfTag(2) + SizeOfString(m.Value)
	if m.Level3 != nil {
		body := m.Level3.EncodedSize()
		n += SizeOfTag(1) + SizeOfUvarint(uint64(body)) + body
	}
	return n
}

func (m *BenchNestedLevel2) Encode(w *Writer) {
	if m.Level3 != nil {
		w.WriteTag(1, WireBytes)
		token := w.BeginMessage()
		m.Level3.Encode(w)
		w.EndMessage(token)
	}
	w.WriteTag(2, WireBytes)
	w.WriteString(m.Value)
}

func (m *BenchNestedLevel2) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		token := r.BeginMessage()
		level3 := &BenchNestedLevel3{}
		for r.LimitRemaining() > 0 && r.Err() == nil {
			innerField, innerWire := r.ReadTag()
			if r.Err() != nil {
				break
			}
			if err := level3.DecodeField(r, innerField, innerWire); err != nil {
				return err
			}
		}
		r.EndMessage(token)
		m.Level3 = level3
	case 2:
		m.Value = r.ReadString()
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

type BenchNestedLevel3 struct {
	Value string `json:"value"`
}

func (m *BenchNestedLevel3) EncodedSize() int {
	return SizeOfTag(1) + SizeOfString(m.Value)
}

func (m *BenchNestedLevel3) Encode(w *Writer) {
	w.WriteTag(1, WireBytes)
	w.WriteString(m.Value)
}

func (m *BenchNestedLevel3) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		m.Value = r.ReadString()
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

var (
	benchSmall = BenchSmall{
		ID:   42,
		Name: "benchmark",
	}

	benchMedium = BenchMedium{
		ID:     12345678,
		Name:   "Test User",
		Email:  "test@example.com",
		Active: true,
		Score:  95.5,
		Tags:   []string{"tag1", "tag2", "tag3"},
	}

	benchLarge = BenchLarge{
		ID:          9876543210,
		Name:        "Complex User",
		Email:       "complex@example.com",
		Active:      true,
		Score:       87.3,
		Tags:        []string{"golang", "rust", "typescript", "performance"},
		Metadata:    map[string]string{"key1": "value1", "key2": "value2", "key3": "value3"},
		Nested:      &benchMedium,
		Numbers:     []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Description: "This is a longer description field to test string encoding performance with medium-length text content.",
	}

	benchNested = BenchNested{
		Level1: &BenchNestedLevel1{
			Level2: &BenchNestedLevel2{
				Level3: &BenchNestedLevel3{
					Value: "deep",
				},
				Value: "level3",
			},
			Value: "level2",
		},
	}
)

// Marshal benchmarks
func BenchmarkMarshalSmall(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = EncodeRecord(&benchSmall)
	}
}

func BenchmarkMarshalMedium(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = EncodeRecord(&benchMedium)
	}
}

func BenchmarkMarshalLarge(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = EncodeRecord(&benchLarge)
	}
}

func BenchmarkMarshalNested(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = EncodeRecord(&benchNested)
	}
}

// Unmarshal benchmarks
func BenchmarkUnmarshalSmall(b *testing.B) {
	data := EncodeRecord(&benchSmall)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result BenchSmall
		_ = DecodeRecord(data, &result)
	}
}

func BenchmarkUnmarshalMedium(b *testing.B) {
	data := EncodeRecord(&benchMedium)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result BenchMedium
		_ = DecodeRecord(data, &result)
	}
}

func BenchmarkUnmarshalLarge(b *testing.B) {
	data := EncodeRecord(&benchLarge)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result BenchLarge
		_ = DecodeRecord(data, &result)
	}
}

func BenchmarkUnmarshalNested(b *testing.B) {
	data := EncodeRecord(&benchNested)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result BenchNested
		_ = DecodeRecord(data, &result)
	}
}

// Writer pool benchmarks
func BenchmarkMarshalWithPool(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := GetWriter()
		w.WriteTag(1, WireVarint)
		w.WriteSvarint(int64(benchSmall.ID))
		w.WriteTag(2, WireBytes)
		w.WriteString(benchSmall.Name)
		_ = w.BytesCopy()
		PutWriter(w)
	}
}

// int32SliceRecord wraps a repeated int32 field for benchmarking plain
// slice round-trips without a record wrapper of its own.
type int32SliceRecord struct {
	Values []int32
}

func (m *int32SliceRecord) EncodedSize() int {
	n := 0
	for _, v := range m.Values {
		n += SizeOfTag(1) + SizeOfSvarint(int64(v))
	}
	return n
}

func (m *int32SliceRecord) Encode(w *Writer) {
	for _, v := range m.Values {
		w.WriteTag(1, WireVarint)
		w.WriteSvarint(int64(v))
	}
}

func (m *int32SliceRecord) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		m.Values = append(m.Values, int32(r.ReadSvarint()))
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

// stringSliceRecord wraps a repeated string field for benchmarking.
type stringSliceRecord struct {
	Values []string
}

func (m *stringSliceRecord) EncodedSize() int {
	n := 0
	for _, v := range m.Values {
		n += SizeOfTag(1) + SizeOfString(v)
	}
	return n
}

func (m *stringSliceRecord) Encode(w *Writer) {
	for _, v := range m.Values {
		w.WriteTag(1, WireBytes)
		w.WriteString(v)
	}
}

func (m *stringSliceRecord) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		m.Values = append(m.Values, r.ReadString())
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

// stringInt32MapRecord wraps a map[string]int32 field for benchmarking.
type stringInt32MapRecord struct {
	Entries map[string]int32
}

func (m *stringInt32MapRecord) EncodedSize() int {
	n := 0
	for _, k := range SortedStringKeys(m.Entries) {
		n += SizeMapEntry(1, k, m.Entries[k],
			func(f int, s string) int { return SizeOfTag(f) + SizeOfString(s) },
			func(f int, v int32) int { return SizeOfTag(f) + SizeOfSvarint(int64(v)) })
	}
	return n
}

func (m *stringInt32MapRecord) Encode(w *Writer) {
	encodeKey := func(w *Writer, f int, s string) {
		w.WriteTag(f, WireBytes)
		w.WriteString(s)
	}
	encodeValue := func(w *Writer, f int, v int32) {
		w.WriteTag(f, WireVarint)
		w.WriteSvarint(int64(v))
	}
	keys := SortedStringKeys(m.Entries)
	EncodeMap(w, 1, m.Entries, keys, encodeKey, encodeValue)
}

func (m *stringInt32MapRecord) DecodeField(r *Reader, fieldNum int, wireType WireType) error {
	switch fieldNum {
	case 1:
		key, value, err := DecodeMapEntry(r, wireType, "", int32(0),
			func(r *Reader) string { return r.ReadString() },
			func(r *Reader) int32 { return int32(r.ReadSvarint()) })
		if err != nil {
			return err
		}
		if m.Entries == nil {
			m.Entries = make(map[string]int32)
		}
		m.Entries[key] = value
	default:
		r.SkipValue(wireType)
	}
	return r.Err()
}

// Slice benchmarks
func BenchmarkMarshalInt32Slice(b *testing.B) {
	rec := int32SliceRecord{Values: make([]int32, 100)}
	for i := range rec.Values {
		rec.Values[i] = int32(i * 2)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EncodeRecord(&rec)
	}
}

func BenchmarkUnmarshalInt32Slice(b *testing.B) {
	rec := int32SliceRecord{Values: make([]int32, 100)}
	for i := range rec.Values {
		rec.Values[i] = int32(i * 2)
	}
	data := EncodeRecord(&rec)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result int32SliceRecord
		_ = DecodeRecord(data, &result)
	}
}

func BenchmarkMarshalStringSlice(b *testing.B) {
	rec := stringSliceRecord{Values: make([]string, 50)}
	for i := range rec.Values {
		rec.Values[i] = "string number " + string(rune('0'+i%10))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EncodeRecord(&rec)
	}
}

// Map benchmarks
func BenchmarkMarshalMap(b *testing.B) {
	rec := stringInt32MapRecord{Entries: make(map[string]int32, 20)}
	for i := 0; i < 20; i++ {
		rec.Entries["key"+string(rune('a'+i))] = int32(i * 10)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = EncodeRecord(&rec)
	}
}

func BenchmarkUnmarshalMap(b *testing.B) {
	rec := stringInt32MapRecord{Entries: make(map[string]int32, 20)}
	for i := 0; i < 20; i++ {
		rec.Entries["key"+string(rune('a'+i))] = int32(i * 10)
	}
	data := EncodeRecord(&rec)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result stringInt32MapRecord
		_ = DecodeRecord(data, &result)
	}
}

// Comparison with JSON
func BenchmarkJSONMarshalSmall(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(benchSmall)
	}
}

func BenchmarkJSONUnmarshalSmall(b *testing.B) {
	data, _ := json.Marshal(benchSmall)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result BenchSmall
		_ = json.Unmarshal(data, &result)
	}
}

func BenchmarkJSONMarshalMedium(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(benchMedium)
	}
}

func BenchmarkJSONUnmarshalMedium(b *testing.B) {
	data, _ := json.Marshal(benchMedium)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result BenchMedium
		_ = json.Unmarshal(data, &result)
	}
}

func BenchmarkJSONMarshalLarge(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(benchLarge)
	}
}

func BenchmarkJSONUnmarshalLarge(b *testing.B) {
	data, _ := json.Marshal(benchLarge)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var result BenchLarge
		_ = json.Unmarshal(data, &result)
	}
}

// Streaming benchmarks
func BenchmarkStreamWriteMedium(b *testing.B) {
	var buf bytes.Buffer
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		sw := NewStreamWriter(&buf)
		_ = sw.WriteDelimited(&benchMedium)
		_ = sw.Flush()
	}
}

func BenchmarkStreamReadMedium(b *testing.B) {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf)
	_ = sw.WriteDelimited(&benchMedium)
	_ = sw.Flush()
	data := buf.Bytes()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sr := NewStreamReader(bytes.NewReader(data))
		var result BenchMedium
		_ = sr.ReadDelimited(&result)
	}
}

func BenchmarkStreamWriteMultiple(b *testing.B) {
	var buf bytes.Buffer
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		sw := NewStreamWriter(&buf)
		for j := 0; j < 10; j++ {
			_ = sw.WriteDelimited(&benchSmall)
		}
		_ = sw.Flush()
	}
}

func BenchmarkStreamReadMultiple(b *testing.B) {
	var buf bytes.Buffer
	sw := NewStreamWriter(&buf)
	for j := 0; j < 10; j++ {
		_ = sw.WriteDelimited(&benchSmall)
	}
	_ = sw.Flush()
	data := buf.Bytes()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sr := NewStreamReader(bytes.NewReader(data))
		for j := 0; j < 10; j++ {
			var result BenchSmall
			_ = sr.ReadDelimited(&result)
		}
	}
}

// Size calculation benchmarks
func BenchmarkSize(b *testing.B) {
	b.Run("Small", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = benchSmall.EncodedSize()
		}
	})

	b.Run("Medium", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = benchMedium.EncodedSize()
		}
	})

	b.Run("Large", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = benchLarge.EncodedSize()
		}
	})
}

// Comparison summary: Print size comparison
func TestEncodingSizeComparison(t *testing.T) {
	tests := []struct {
		name   string
		record EncodableMessage
		json   any
	}{
		{"Small", &benchSmall, benchSmall},
		{"Medium", &benchMedium, benchMedium},
		{"Large", &benchLarge, benchLarge},
		{"Nested", &benchNested, benchNested},
	}

	for _, tc := range tests {
		cramwireData := EncodeRecord(tc.record)
		jsonData, _ := json.Marshal(tc.json)

		t.Logf("%s: cramwire=%d bytes, JSON=%d bytes (%.1f%% smaller)",
			tc.name, len(cramwireData), len(jsonData),
			100*(1-float64(len(cramwireData))/float64(len(jsonData))))
	}
}

// Primitive encoding benchmarks
func BenchmarkWriteInt32(b *testing.B) {
	w := NewWriter()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Reset()
		w.WriteInt32(int32(i))
	}
}

func BenchmarkWriteString(b *testing.B) {
	s := "this is a test string for benchmarking"
	w := NewWriter()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Reset()
		w.WriteString(s)
	}
}

func BenchmarkReadInt32(b *testing.B) {
	w := NewWriter()
	w.WriteSvarint(12345)
	data := w.BytesCopy()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := NewReader(data)
		r.ReadInt32()
	}
}

func BenchmarkReadString(b *testing.B) {
	w := NewWriter()
	w.WriteString("this is a test string for benchmarking")
	data := w.BytesCopy()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := NewReader(data)
		r.ReadString()
	}
}
