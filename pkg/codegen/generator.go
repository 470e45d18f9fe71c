// Package codegen emits Go source implementing the EncodableMessage and
// DecodableMessage contract for types discovered by pkg/extract.
package codegen

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blockberries/cramwire/pkg/extract"
)

// Generator produces Go source for a set of collected types.
type Generator interface {
	Generate(w io.Writer, types []*extract.TypeInfo, enums []*extract.EnumInfo, opts Options) error
}

// Options configures code generation.
type Options struct {
	// Package overrides the package name written into the generated file's
	// package clause. Empty means reuse the source package's name.
	Package string

	// GenerateComments copies each type's/field's doc comment into the
	// generated output.
	GenerateComments bool

	// Packed marks repeated float32/float64 fields (cramwire's only
	// fixed-width scalar kinds) for packed encoding: one length-prefixed
	// occurrence holding every element, instead of one tagged occurrence
	// per element. Keyed by "TypeName.FieldName". Decoding always
	// accepts both forms regardless of this setting.
	Packed map[string]bool

	// Deterministic is not read by GoGenerator: generated map encoding
	// always passes sorted keys (SortedStringKeys/SortedIntKeys) to
	// EncodeMap, whatever this is set to.
	Deterministic bool
}

// DefaultOptions returns the default code generation options.
func DefaultOptions() Options {
	return Options{
		GenerateComments: true,
		Deterministic:    true,
	}
}

// titleCaser is used for converting strings to title case.
var titleCaser = cases.Title(language.English)

// ToPascalCase converts a string to PascalCase.
func ToPascalCase(s string) string {
	parts := splitName(s)
	for i, p := range parts {
		parts[i] = titleCaser.String(strings.ToLower(p))
	}
	return strings.Join(parts, "")
}

// ToCamelCase converts a string to camelCase.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return ""
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

// ToSnakeCase converts a string to snake_case.
func ToSnakeCase(s string) string {
	parts := splitName(s)
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, "_")
}

// ToUpperSnakeCase converts a string to UPPER_SNAKE_CASE.
func ToUpperSnakeCase(s string) string {
	parts := splitName(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p)
	}
	return strings.Join(parts, "_")
}

// splitName splits a name into parts based on underscores and case transitions.
func splitName(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	var current strings.Builder

	for i, r := range s {
		if r == '_' || r == '-' {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
			continue
		}

		if i > 0 && isUpper(r) && !isUpper(rune(s[i-1])) {
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Indent indents each non-empty line of s by the given number of tabs.
func Indent(s string, tabs int) string {
	indent := strings.Repeat("\t", tabs)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

// GoComment wraps text as a sequence of Go doc comment lines.
func GoComment(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "// " + line
	}
	return strings.Join(lines, "\n")
}
