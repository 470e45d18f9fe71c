package codegen

import (
	"fmt"
	"go/types"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/blockberries/cramwire/internal/wire"
	"github.com/blockberries/cramwire/pkg/extract"
)

// GoGenerator emits a single Go source file containing EncodedSize/Encode/
// DecodeField methods for every collected struct, plus isValidCramwireEnum
// predicates for every collected enum.
type GoGenerator struct{}

// NewGoGenerator creates a new Go code generator.
func NewGoGenerator() *GoGenerator {
	return &GoGenerator{}
}

// Generate produces Go code for the collected types and enums.
func (g *GoGenerator) Generate(w io.Writer, typs []*extract.TypeInfo, enums []*extract.EnumInfo, opts Options) error {
	ctx := &goContext{
		enumsByQualifiedName: make(map[string]*extract.EnumInfo),
		typesByQualifiedName: make(map[string]*extract.TypeInfo),
		opts:                 opts,
	}
	for _, e := range enums {
		ctx.enumsByQualifiedName[e.PkgPath+"."+e.Name] = e
	}
	for _, t := range typs {
		ctx.typesByQualifiedName[t.PkgPath+"."+t.Name] = t
	}

	sort.Slice(typs, func(i, j int) bool { return typs[i].Name < typs[j].Name })
	sort.Slice(enums, func(i, j int) bool { return enums[i].Name < enums[j].Name })

	pkgName := opts.Package
	if pkgName == "" && len(typs) > 0 {
		pkgName = typs[0].Package
	}
	if pkgName == "" && len(enums) > 0 {
		pkgName = enums[0].Package
	}

	tmpl, err := template.New("go").Funcs(ctx.funcMap()).Parse(goFileTemplate)
	if err != nil {
		return fmt.Errorf("cramgen: parse template: %w", err)
	}

	return tmpl.Execute(w, struct {
		Package string
		Types   []*extract.TypeInfo
		Enums   []*extract.EnumInfo
	}{Package: pkgName, Types: typs, Enums: enums})
}

type goContext struct {
	enumsByQualifiedName map[string]*extract.EnumInfo
	typesByQualifiedName map[string]*extract.TypeInfo
	opts                 Options
}

func (c *goContext) funcMap() template.FuncMap {
	return template.FuncMap{
		"comment":      GoComment,
		"indent":       Indent,
		"generateDoc":  func() bool { return c.opts.GenerateComments },
		"encodeSize":   c.encodeSize,
		"encodeStmt":   c.encodeStmt,
		"decodeCase":   c.decodeCase,
		"enumIsValid":  c.enumIsValid,
		"needsMath":    c.needsMath,
		"tagType":      c.tagType,
		"tagEntries":   c.tagEntries,
		"tagCaseList":  c.tagCaseList,
	}
}

// tagEntry is one (TAG_CONST, PRECOMP) pair the generator emits for a
// field. Most fields need exactly one; a repeated float32/float64 field
// needs two, one per wire form it may legally appear as (see
// tagEntries).
type tagEntry struct {
	ConstName    string
	PrecompName  string
	Value        uint64
	BytesLiteral string
}

// tagType picks the narrowest unsigned integer type that can hold every
// field tag ((field_number<<3)|wire_type) declared by t, per the
// classifier in internal/wire.TagStorage. The record-metadata generator
// uses this type for the dense tag-dispatch variable in DecodeField and
// for the TAG_CONST_i declarations.
func (c *goContext) tagType(t *extract.TypeInfo) string {
	maxNum := 0
	for _, f := range t.Fields {
		if f.FieldNum > maxNum {
			maxNum = f.FieldNum
		}
	}
	bits, ok := wire.TagStorage(maxNum)
	if !ok {
		bits = 32
	}
	switch bits {
	case 8:
		return "uint8"
	case 16:
		return "uint16"
	default:
		return "uint32"
	}
}

// tagEntries enumerates the (TAG_CONST, PRECOMP) pairs a field needs.
// Every field shape has exactly one legal wire type except a repeated
// float32/float64 field, which may arrive packed (WireBytes) or
// unpacked (WireFixed32/64); that field gets one entry per form so
// DecodeField's dense dispatch recognizes both without falling through
// to the skip path.
func (c *goContext) tagEntries(typeName string, f *extract.FieldInfo) []tagEntry {
	cl := c.classify(f.GoType)
	base := typeName + ToPascalCase(f.Name)

	mk := func(suffix string, wt wire.WireType) tagEntry {
		tagVal := wire.NewTag(f.FieldNum, wt)
		bs := wire.AppendTag(nil, f.FieldNum, wt)
		return tagEntry{
			ConstName:    ToCamelCase(base+suffix) + "Tag",
			PrecompName:  ToCamelCase(base+suffix) + "Precomp",
			Value:        uint64(tagVal),
			BytesLiteral: bytesLiteral(bs),
		}
	}

	switch cl.kind {
	case "scalar":
		switch cl.scalar {
		case "Float32":
			return []tagEntry{mk("", wire.WireFixed32)}
		case "Float64":
			return []tagEntry{mk("", wire.WireFixed64)}
		default:
			return []tagEntry{mk("", wire.WireVarint)}
		}
	case "string", "bytes", "message", "map":
		return []tagEntry{mk("", wire.WireBytes)}
	case "enum":
		return []tagEntry{mk("", wire.WireVarint)}
	case "repeated":
		switch cl.elem.kind {
		case "message", "string", "bytes":
			return []tagEntry{mk("", wire.WireBytes)}
		case "enum":
			return []tagEntry{mk("", wire.WireVarint)}
		default:
			switch cl.elem.scalar {
			case "Float32":
				return []tagEntry{mk("Packed", wire.WireBytes), mk("Unpacked", wire.WireFixed32)}
			case "Float64":
				return []tagEntry{mk("Packed", wire.WireBytes), mk("Unpacked", wire.WireFixed64)}
			default:
				return []tagEntry{mk("", wire.WireVarint)}
			}
		}
	}
	return nil
}

// tagCaseList renders a field's tag constant names as a comma-separated
// case-label list for DecodeField's switch.
func (c *goContext) tagCaseList(typeName string, f *extract.FieldInfo) string {
	entries := c.tagEntries(typeName, f)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.ConstName
	}
	return strings.Join(names, ", ")
}

func bytesLiteral(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("0x%02x", v)
	}
	return strings.Join(parts, ", ")
}

// classification describes how a single struct field maps onto a cramwire
// value shape, so the template can emit matching EncodedSize/Encode/Decode
// snippets without re-deriving the field's shape three times over.
type classification struct {
	kind    string // "scalar", "string", "bytes", "enum", "message", "repeated", "map"
	scalar  string // "Uint", "Sint", "Bool", "Float32", "Float64"
	pointer bool
	elem    *classification // element classification, for "repeated"
	keyType string          // "string" or "int", for "map"
	valElem *classification // value classification, for "map"
	goType  string          // rendered Go type name of the field itself
}

func (c *goContext) classify(t types.Type) *classification {
	if ptr, ok := t.(*types.Pointer); ok {
		inner := c.classify(ptr.Elem())
		inner.pointer = true
		return inner
	}

	if named, ok := t.(*types.Named); ok {
		qualified := ""
		if named.Obj().Pkg() != nil {
			qualified = named.Obj().Pkg().Path() + "." + named.Obj().Name()
		}
		if _, isEnum := c.enumsByQualifiedName[qualified]; isEnum {
			return &classification{kind: "enum", goType: named.Obj().Name()}
		}
		if _, isMsg := c.typesByQualifiedName[qualified]; isMsg {
			return &classification{kind: "message", goType: named.Obj().Name()}
		}
		return c.classify(named.Underlying())
	}

	switch v := t.(type) {
	case *types.Basic:
		if v.Kind() == types.String {
			return &classification{kind: "string"}
		}
		return &classification{kind: "scalar", scalar: basicScalarKind(v), goType: v.Name()}
	case *types.Slice:
		if b, ok := v.Elem().(*types.Basic); ok && b.Kind() == types.Byte {
			return &classification{kind: "bytes"}
		}
		return &classification{kind: "repeated", elem: c.classify(v.Elem())}
	case *types.Map:
		keyKind := "string"
		if b, ok := v.Key().(*types.Basic); ok && b.Kind() != types.String {
			keyKind = "int"
		}
		return &classification{kind: "map", keyType: keyKind, valElem: c.classify(v.Elem())}
	default:
		return &classification{kind: "bytes"}
	}
}

func basicScalarKind(b *types.Basic) string {
	switch b.Kind() {
	case types.Bool:
		return "Bool"
	case types.Int8, types.Int16, types.Int32, types.Int, types.Int64:
		return "Sint"
	case types.Uint8, types.Uint16, types.Uint32, types.Uint, types.Uint64:
		return "Uint"
	case types.Float32:
		return "Float32"
	case types.Float64:
		return "Float64"
	default:
		return "Uint"
	}
}

// encodeSize renders the EncodedSize() contribution of a single field.
func (c *goContext) encodeSize(typeName string, f *extract.FieldInfo) string {
	cl := c.classify(f.GoType)
	expr := "m." + f.Name
	n := f.FieldNum
	switch cl.kind {
	case "scalar":
		return fmt.Sprintf("cramwire.Size%s(%d, %s)", cl.scalar, n, castExpr(expr, cl))
	case "string":
		return fmt.Sprintf("cramwire.SizeString(%d, %s)", n, expr)
	case "bytes":
		return fmt.Sprintf("cramwire.SizeBytes(%d, %s)", n, expr)
	case "enum":
		return fmt.Sprintf("cramwire.SizeEnum(%d, %s)", n, expr)
	case "message":
		return fmt.Sprintf("(cramwire.Message[%s]{Value: %s}).EncodedSize(%d)", cl.goType, expr, n)
	case "repeated":
		return c.repeatedSize(expr, n, cl.elem, c.isPacked(typeName, f))
	case "map":
		return c.mapSize(expr, n, cl)
	}
	return "0"
}

// needsMath reports whether any collected type has a repeated
// float32/float64 field, in which case the generated file's
// DecodeField dual-form (packed-or-unpacked) handling needs "math" for
// Float32frombits/Float64frombits.
func (c *goContext) needsMath(typs []*extract.TypeInfo) bool {
	for _, t := range typs {
		for _, f := range t.Fields {
			cl := c.classify(f.GoType)
			if cl.kind == "repeated" && (cl.elem.scalar == "Float32" || cl.elem.scalar == "Float64") {
				return true
			}
		}
	}
	return false
}

// isPacked reports whether typeName.FieldName was selected for packed
// repeated encoding via the generator's -packed option. Only applies
// to repeated float32/float64 fields; anything else ignores it since
// cramwire's integer scalars are variable-width varints, which packed
// fixed-width framing does not apply to.
func (c *goContext) isPacked(typeName string, f *extract.FieldInfo) bool {
	return c.opts.Packed[typeName+"."+f.Name]
}

func (c *goContext) repeatedSize(expr string, n int, elem *classification, packed bool) string {
	if elem.kind == "message" {
		return fmt.Sprintf("cramwire.SizeRepeatedMessage(%d, %s)", n, expr)
	}
	if packed && elem.scalar == "Float32" {
		return fmt.Sprintf(`func() int {
				bits := make([]uint32, len(%s))
				for i, v := range %s { bits[i] = math.Float32bits(v) }
				return cramwire.SizePackedFixed32(%d, bits)
			}()`, expr, expr, n)
	}
	if packed && elem.scalar == "Float64" {
		return fmt.Sprintf(`func() int {
				bits := make([]uint64, len(%s))
				for i, v := range %s { bits[i] = math.Float64bits(v) }
				return cramwire.SizePackedFixed64(%d, bits)
			}()`, expr, expr, n)
	}
	return fmt.Sprintf(`func() int {
			total := 0
			for _, v := range %s {
				total += %s
			}
			return total
		}()`, expr, c.elemSizeExpr("v", n, elem))
}

func (c *goContext) elemSizeExpr(v string, n int, elem *classification) string {
	switch elem.kind {
	case "scalar":
		return fmt.Sprintf("cramwire.Size%s(%d, %s)", elem.scalar, n, castExpr(v, elem))
	case "string":
		return fmt.Sprintf("cramwire.SizeString(%d, %s)", n, v)
	case "bytes":
		return fmt.Sprintf("cramwire.SizeBytes(%d, %s)", n, v)
	case "enum":
		return fmt.Sprintf("cramwire.SizeEnum(%d, %s)", n, v)
	default:
		return "0"
	}
}

func (c *goContext) mapSize(expr string, n int, cl *classification) string {
	keyFn := "cramwire.SizeString"
	if cl.keyType == "int" {
		keyFn = "cramwire.SizeSint"
	}
	return fmt.Sprintf(`func() int {
			total := 0
			for k, v := range %s {
				total += cramwire.SizeMapEntry(%d, k, v, %s, %s)
			}
			return total
		}()`, expr, n, keyFn, c.valSizeFn(cl.valElem))
}

func (c *goContext) valSizeFn(elem *classification) string {
	switch elem.kind {
	case "scalar":
		return "cramwire.Size" + elem.scalar
	case "string":
		return "cramwire.SizeString"
	case "enum":
		return "cramwire.SizeEnum"
	default:
		return "cramwire.SizeBytes"
	}
}

// encodeStmt renders the Encode() statement for a single field. Every
// shape except map and repeated message uses the field's precomputed
// tag (see tagEntries) instead of passing a fieldNum and letting the
// value encoder recompute the tag bytes on every call. Map fields still
// resolve their tag through the runtime fieldNum path: EncodeMap's
// key/value encoder closures are generic helpers shared across call
// sites, not specialized per field, so there is no single precomputed
// tag to hand them (see mapfield.go). Repeated message fields go
// through EncodeRepeatedMessage, which likewise takes a fieldNum.
func (c *goContext) encodeStmt(typeName string, f *extract.FieldInfo) string {
	cl := c.classify(f.GoType)
	expr := "m." + f.Name
	n := f.FieldNum
	entries := c.tagEntries(typeName, f)

	body := func(e string) string {
		switch cl.kind {
		case "scalar":
			return fmt.Sprintf("cramwire.Encode%sPrecomputed(w, %s, %s)", cl.scalar, entries[0].PrecompName, castExpr(e, cl))
		case "string":
			return fmt.Sprintf("cramwire.EncodeStringPrecomputed(w, %s, %s)", entries[0].PrecompName, e)
		case "bytes":
			return fmt.Sprintf("cramwire.EncodeBytesPrecomputed(w, %s, %s)", entries[0].PrecompName, e)
		case "enum":
			return fmt.Sprintf("cramwire.EncodeEnumPrecomputed(w, %s, %s)", entries[0].PrecompName, e)
		case "message":
			return fmt.Sprintf("(cramwire.Message[%s]{Value: %s}).EncodePrecomputed(w, %s)", cl.goType, e, entries[0].PrecompName)
		case "repeated":
			return c.repeatedEncode(e, n, cl.elem, c.isPacked(typeName, f), entries)
		case "map":
			return c.mapEncode(e, n, cl)
		}
		return ""
	}

	if cl.pointer && cl.kind != "message" {
		return fmt.Sprintf("if %s != nil {\n\t%s\n}", expr, body("*"+expr))
	}
	return body(expr)
}

func (c *goContext) repeatedEncode(expr string, n int, elem *classification, packed bool, entries []tagEntry) string {
	if elem.kind == "message" {
		return fmt.Sprintf("cramwire.EncodeRepeatedMessage(w, %d, %s)", n, expr)
	}
	if elem.scalar == "Float32" || elem.scalar == "Float64" {
		packedEntry, unpackedEntry := entries[0], entries[1]
		if packed && elem.scalar == "Float32" {
			return fmt.Sprintf(`bits := make([]uint32, len(%s))
	for i, v := range %s { bits[i] = math.Float32bits(v) }
	cramwire.PackedFixed32Precomputed(w, %s, bits)`, expr, expr, packedEntry.PrecompName)
		}
		if packed && elem.scalar == "Float64" {
			return fmt.Sprintf(`bits := make([]uint64, len(%s))
	for i, v := range %s { bits[i] = math.Float64bits(v) }
	cramwire.PackedFixed64Precomputed(w, %s, bits)`, expr, expr, packedEntry.PrecompName)
		}
		encodeFn := "cramwire.EncodeFloat32Precomputed"
		if elem.scalar == "Float64" {
			encodeFn = "cramwire.EncodeFloat64Precomputed"
		}
		return fmt.Sprintf(`for _, v := range %s {
		%s(w, %s, v)
	}`, expr, encodeFn, unpackedEntry.PrecompName)
	}
	return fmt.Sprintf(`for _, v := range %s {
		%s
	}`, expr, c.elemEncodeStmtPrecomputed(n, elem, entries[0]))
}

// elemEncodeStmtPrecomputed renders one element's encode call for a
// non-float repeated field, reusing the single tag entry tagEntries
// computed for the field (every occurrence of a non-packed repeated
// field shares one wire type, hence one tag).
func (c *goContext) elemEncodeStmtPrecomputed(n int, elem *classification, entry tagEntry) string {
	switch elem.kind {
	case "scalar":
		return fmt.Sprintf("cramwire.Encode%sPrecomputed(w, %s, %s)", elem.scalar, entry.PrecompName, castExpr("v", elem))
	case "string":
		return fmt.Sprintf("cramwire.EncodeStringPrecomputed(w, %s, v)", entry.PrecompName)
	case "bytes":
		return fmt.Sprintf("cramwire.EncodeBytesPrecomputed(w, %s, v)", entry.PrecompName)
	case "enum":
		return fmt.Sprintf("cramwire.EncodeEnumPrecomputed(w, %s, v)", entry.PrecompName)
	default:
		_ = n
		return ""
	}
}

func (c *goContext) mapEncode(expr string, n int, cl *classification) string {
	keysFn := "cramwire.SortedStringKeys"
	keyEncFn := "func(w *cramwire.Writer, fn int, k string) { cramwire.EncodeString(w, fn, k) }"
	if cl.keyType == "int" {
		keysFn = "cramwire.SortedIntKeys"
		keyEncFn = "func(w *cramwire.Writer, fn int, k int64) { cramwire.EncodeSint(w, fn, k) }"
	}
	return fmt.Sprintf(`cramwire.EncodeMap(w, %d, %s, %s(%s), %s, %s)`,
		n, expr, keysFn, expr, keyEncFn, c.valEncodeFn(cl.valElem))
}

func (c *goContext) valEncodeFn(elem *classification) string {
	switch elem.kind {
	case "scalar":
		return fmt.Sprintf("func(w *cramwire.Writer, fn int, v %s) { cramwire.Encode%s(w, fn, %s) }", elem.goType, elem.scalar, castExpr("v", elem))
	case "string":
		return "func(w *cramwire.Writer, fn int, v string) { cramwire.EncodeString(w, fn, v) }"
	default:
		return "func(w *cramwire.Writer, fn int, v []byte) { cramwire.EncodeBytes(w, fn, v) }"
	}
}

// decodeCase renders the body of one `case fieldNum:` arm of DecodeField's switch.
func (c *goContext) decodeCase(f *extract.FieldInfo) string {
	cl := c.classify(f.GoType)
	expr := "m." + f.Name
	switch cl.kind {
	case "scalar":
		return fmt.Sprintf("%s = %s(cramwire.Decode%s(r))", expr, cl.goType, cl.scalar)
	case "string":
		if cl.pointer {
			return "v := cramwire.DecodeString(r)\n\t\t" + expr + " = &v"
		}
		return expr + " = cramwire.DecodeString(r)"
	case "bytes":
		return expr + " = cramwire.DecodeBytes(r)"
	case "enum":
		return fmt.Sprintf("%s = cramwire.DecodeEnum(r, %s)", expr, c.enumIsValidFn(cl))
	case "message":
		if cl.pointer {
			return fmt.Sprintf(`if %s == nil { %s = new(%s) }
		wrapped := cramwire.Message[%s]{Value: *%s}
		if err := wrapped.Decode(r, wireType); err != nil { return err }
		*%s = wrapped.Value`, expr, expr, cl.goType, cl.goType, expr, expr)
		}
		return fmt.Sprintf(`wrapped := cramwire.Message[%s]{Value: %s}
		if err := wrapped.Decode(r, wireType); err != nil { return err }
		%s = wrapped.Value`, cl.goType, expr, expr)
	case "repeated":
		return c.repeatedDecodeCase(expr, cl.elem)
	case "map":
		return c.mapDecodeCase(expr, cl)
	}
	return "r.SkipValue(wireType)"
}

func (c *goContext) repeatedDecodeCase(expr string, elem *classification) string {
	if elem.kind == "message" {
		return fmt.Sprintf(`if err := cramwire.RepeatedMessage(r, &%s, wireType, func() %s { return %s{} }); err != nil { return err }`,
			expr, elem.goType, elem.goType)
	}
	if elem.kind == "string" {
		return fmt.Sprintf("%s = append(%s, cramwire.DecodeString(r))", expr, expr)
	}
	if elem.kind == "enum" {
		return fmt.Sprintf("%s = append(%s, cramwire.DecodeEnum(r, %s))", expr, expr, c.enumIsValidFn(elem))
	}
	// A repeated float32/float64 field may arrive either packed (one
	// WireBytes occurrence holding every element) or unpacked (one
	// WireFixed32/64 occurrence per element), independent of which form
	// this side's own encoder chose; accepting both keeps older and
	// newer writers interoperable the way protobuf decoders do.
	if elem.scalar == "Float32" {
		return fmt.Sprintf(`if wireType == cramwire.WireBytes {
			var bits []uint32
			token := r.BeginMessage()
			cramwire.DecodePackedFixed32(r, &bits)
			r.EndMessage(token)
			for _, b := range bits { %s = append(%s, math.Float32frombits(b)) }
		} else {
			%s = append(%s, cramwire.DecodeFloat32(r))
		}`, expr, expr, expr, expr)
	}
	if elem.scalar == "Float64" {
		return fmt.Sprintf(`if wireType == cramwire.WireBytes {
			var bits []uint64
			token := r.BeginMessage()
			cramwire.DecodePackedFixed64(r, &bits)
			r.EndMessage(token)
			for _, b := range bits { %s = append(%s, math.Float64frombits(b)) }
		} else {
			%s = append(%s, cramwire.DecodeFloat64(r))
		}`, expr, expr, expr, expr)
	}
	return fmt.Sprintf("%s = append(%s, %s(cramwire.Decode%s(r)))", expr, expr, elem.goType, elem.scalar)
}

func (c *goContext) mapDecodeCase(expr string, cl *classification) string {
	keyDecode := "func(r *cramwire.Reader) string { return cramwire.DecodeString(r) }"
	zeroKey := `""`
	keyGoType := "string"
	if cl.keyType == "int" {
		keyDecode = "func(r *cramwire.Reader) int64 { return cramwire.DecodeSint(r) }"
		zeroKey = "int64(0)"
		keyGoType = "int64"
	}
	valDecode, zeroVal := c.valDecodeFn(cl.valElem)
	return fmt.Sprintf(`if %s == nil { %s = make(map[%s]%s) }
	k, v, err := cramwire.DecodeMapEntry(r, wireType, %s, %s, %s, %s)
	if err != nil { return err }
	%s[k] = v`,
		expr, expr, keyGoType, cl.valElem.goType,
		zeroKey, zeroVal, keyDecode, valDecode, expr)
}

func (c *goContext) valDecodeFn(elem *classification) (fn string, zero string) {
	switch elem.kind {
	case "scalar":
		return fmt.Sprintf("func(r *cramwire.Reader) %s { return %s(cramwire.Decode%s(r)) }", elem.goType, elem.goType, elem.scalar), "0"
	case "string":
		return "func(r *cramwire.Reader) string { return cramwire.DecodeString(r) }", `""`
	default:
		return "func(r *cramwire.Reader) []byte { return cramwire.DecodeBytes(r) }", "nil"
	}
}

func (c *goContext) enumIsValidFn(cl *classification) string {
	return fmt.Sprintf("func(v %s) bool { return v.isValidCramwireEnum() }", cl.goType)
}

// enumIsValid renders the generated isValidCramwireEnum predicate body for an enum type.
func (c *goContext) enumIsValid(e *extract.EnumInfo) string {
	names := make([]string, len(e.Values))
	for i, val := range e.Values {
		names[i] = val.Name
	}
	var b strings.Builder
	b.WriteString("switch v {\n\tcase ")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(":\n\t\treturn true\n\tdefault:\n\t\treturn false\n\t}")
	return b.String()
}

func castExpr(expr string, cl *classification) string {
	switch cl.scalar {
	case "Uint":
		return "uint64(" + expr + ")"
	case "Sint":
		return "int64(" + expr + ")"
	default:
		return expr
	}
}

const goFileTemplate = `// Code generated by cramgen. DO NOT EDIT.

package {{.Package}}

import (
{{if needsMath .Types}}	"math"

{{end}}	"github.com/blockberries/cramwire/pkg/cramwire"
)
{{range .Enums}}
// isValidCramwireEnum reports whether v is one of {{.Name}}'s known cases.
func (v {{.Name}}) isValidCramwireEnum() bool {
	{{enumIsValid .}}
}
{{end}}
{{range .Types}}
{{$typeName := .Name}}
{{if generateDoc}}{{comment .Doc}}
{{end}}// {{.Name}}Tag is the narrowest unsigned integer that holds every
// (fieldNum<<3)|wireType tag {{.Name}} declares; DecodeField dispatches
// on this type instead of re-deriving a tag from fieldNum on every call.
type {{.Name}}Tag = {{tagType .}}

// Precomputed field tags for {{.Name}}, one constant/byte-slice pair per
// field (two for a repeated float32/float64 field, covering both its
// packed and unpacked wire forms). Encode writes these directly via
// WritePrecomputedTag instead of re-encoding a tag from a field number.
const (
{{range .Fields}}{{range $i, $e := tagEntries $typeName .}}	{{$e.ConstName}} {{$typeName}}Tag = {{$e.Value}}
{{end}}{{end}})

var (
{{range .Fields}}{{range $i, $e := tagEntries $typeName .}}	{{$e.PrecompName}} = []byte{ {{$e.BytesLiteral}} }
{{end}}{{end}})

// EncodedSize returns the number of bytes {{.Name}}.Encode would write.
func (m *{{.Name}}) EncodedSize() int {
	size := 0
	{{range .Fields}}size += {{encodeSize $typeName .}}
	{{end}}return size
}

// Encode writes every field of {{.Name}} to w.
func (m *{{.Name}}) Encode(w *cramwire.Writer) {
	{{range .Fields}}{{encodeStmt $typeName .}}
	{{end}}
}

// DecodeField dispatches one decoded field tag into {{.Name}}. Known
// field tags are precomputed constants, compared as one dense integer
// switch rather than a fieldNum switch plus a separate wire-type check;
// an unrecognized tag (unknown field, or a known field number seen with
// an unexpected wire type) is skipped, not an error, so older and newer
// schema versions stay wire-compatible. A field number too large for
// {{.Name}}Tag is skipped before the tag is formed, so it cannot wrap
// onto a known tag.
func (m *{{.Name}}) DecodeField(r *cramwire.Reader, fieldNum int, wireType cramwire.WireType) error {
	if uint64(fieldNum) > uint64(^{{.Name}}Tag(0)>>3) {
		r.SkipValue(wireType)
		return r.Err()
	}
	tag := {{.Name}}Tag(fieldNum)<<3 | {{.Name}}Tag(wireType)
	switch tag {
	{{range .Fields}}case {{tagCaseList $typeName .}}:
		{{decodeCase .}}
	{{end}}default:
		r.SkipValue(wireType)
	}
	return r.Err()
}
{{end}}
`
