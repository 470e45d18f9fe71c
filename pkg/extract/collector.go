package extract

import (
	"go/ast"
	"go/types"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Config configures the type collector.
type Config struct {
	IncludePrivate  bool     // Include unexported types
	IncludePatterns []string // Type name patterns to include (glob)
	ExcludePatterns []string // Type name patterns to exclude (glob)
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		IncludePrivate: false,
	}
}

// TypeCollector collects record and enum type information from Go packages
// by walking each package's type-checked scope for struct types (fields
// numbered by their `cram:"N"` tags, or by declaration order) and
// integer-backed named types, which are collected as enums together with
// whatever constants of that type the package declares.
type TypeCollector struct {
	packages []*packages.Package
	config   *Config
	types    map[string]*TypeInfo
	enums    map[string]*EnumInfo
}

// NewTypeCollector creates a new type collector.
func NewTypeCollector(pkgs []*packages.Package, cfg *Config) *TypeCollector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &TypeCollector{
		packages: pkgs,
		config:   cfg,
		types:    make(map[string]*TypeInfo),
		enums:    make(map[string]*EnumInfo),
	}
}

// Collect analyzes all packages and collects type information.
func (c *TypeCollector) Collect() error {
	for _, pkg := range c.packages {
		if err := c.collectPackage(pkg); err != nil {
			return err
		}
	}
	return nil
}

// Types returns collected struct types.
func (c *TypeCollector) Types() map[string]*TypeInfo {
	return c.types
}

// Enums returns collected enum types.
func (c *TypeCollector) Enums() map[string]*EnumInfo {
	return c.enums
}

func (c *TypeCollector) collectPackage(pkg *packages.Package) error {
	// Collect from syntax (for comments)
	typeComments := make(map[string]string)
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			if genDecl, ok := decl.(*ast.GenDecl); ok {
				for _, spec := range genDecl.Specs {
					if typeSpec, ok := spec.(*ast.TypeSpec); ok {
						doc := extractDoc(genDecl.Doc)
						if doc == "" {
							doc = extractDoc(typeSpec.Doc)
						}
						typeComments[typeSpec.Name.Name] = strings.TrimSpace(doc)
					}
				}
			}
		}
	}

	// Collect from types
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if obj == nil {
			continue
		}

		// Filter by export status
		if !c.config.IncludePrivate && !obj.Exported() {
			continue
		}

		// Filter by patterns
		if !c.matchesPatterns(name) {
			continue
		}

		if typeName, ok := obj.(*types.TypeName); ok {
			c.collectType(typeName, pkg.PkgPath, typeComments[name])
		}
	}

	// Collect enum values
	c.collectEnumValues(pkg)

	return nil
}

func (c *TypeCollector) collectType(typeName *types.TypeName, pkgPath string, doc string) {
	underlying := typeName.Type().Underlying()
	qualifiedName := pkgPath + "." + typeName.Name()

	switch t := underlying.(type) {
	case *types.Struct:
		info := &TypeInfo{
			Name:       typeName.Name(),
			Package:    typeName.Pkg().Name(),
			PkgPath:    pkgPath,
			Doc:        doc,
			GoType:     typeName.Type(),
			IsExported: typeName.Exported(),
		}

		for i := 0; i < t.NumFields(); i++ {
			field := t.Field(i)
			if !c.config.IncludePrivate && !field.Exported() {
				continue
			}

			tag := t.Tag(i)
			structTag := c.parseTag(tag, i+1)
			if structTag.Skip {
				continue
			}

			fieldInfo := &FieldInfo{
				Name:      field.Name(),
				FieldNum:  structTag.FieldNum,
				GoType:    field.Type(),
				TypeName:  c.typeToString(field.Type()),
				Tag:       structTag,
				Optional:  structTag.OmitEmpty || isPointer(field.Type()),
				Repeated:  isSliceOrArray(field.Type()),
				IsPointer: isPointer(field.Type()),
			}
			info.Fields = append(info.Fields, fieldInfo)
		}

		c.types[qualifiedName] = info

	case *types.Basic:
		// Check if it's an enum (int type with constants)
		if t.Info()&types.IsInteger != 0 {
			info := &EnumInfo{
				Name:    typeName.Name(),
				Package: typeName.Pkg().Name(),
				PkgPath: pkgPath,
				Doc:     doc,
				GoType:  typeName.Type(),
			}
			c.enums[qualifiedName] = info
		}
	}
}

func (c *TypeCollector) collectEnumValues(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if obj == nil {
			continue
		}

		if cnst, ok := obj.(*types.Const); ok {
			// Get the type of this constant
			if named, ok := cnst.Type().(*types.Named); ok {
				// Skip types without a package (builtins)
				if named.Obj().Pkg() == nil {
					continue
				}
				qualifiedName := named.Obj().Pkg().Path() + "." + named.Obj().Name()
				if enumInfo, exists := c.enums[qualifiedName]; exists {
					// Get the constant value
					if val, ok := constantToInt64(cnst); ok {
						enumInfo.Values = append(enumInfo.Values, &EnumValueInfo{
							Name:   cnst.Name(),
							Number: val,
						})
					}
				}
			}
		}
	}
}

func constantToInt64(cnst *types.Const) (int64, bool) {
	if cnst.Val() == nil {
		return 0, false
	}
	val := cnst.Val().String()
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseTag reads the `cram:"N[,omitempty|required|deprecated=msg]"` struct
// tag, falling back to defaultNum (the field's 1-based declaration order)
// when no tag is present.
func (c *TypeCollector) parseTag(tag string, defaultNum int) *StructTag {
	st := &StructTag{FieldNum: defaultNum}

	structTag := reflect.StructTag(tag)
	cramTag := structTag.Get("cram")

	if cramTag == "-" {
		st.Skip = true
		return st
	}

	if cramTag != "" {
		parts := strings.Split(cramTag, ",")
		for i, part := range parts {
			if i == 0 {
				if num, err := strconv.Atoi(part); err == nil && num > 0 {
					st.FieldNum = num
				}
			} else {
				switch {
				case part == "omitempty":
					st.OmitEmpty = true
				case part == "required":
					st.Required = true
				case strings.HasPrefix(part, "deprecated="):
					st.Deprecated = strings.TrimPrefix(part, "deprecated=")
				}
			}
		}
	}

	return st
}

func (c *TypeCollector) matchesPatterns(name string) bool {
	// If no include patterns, include all
	if len(c.config.IncludePatterns) == 0 {
		// Check excludes
		for _, pattern := range c.config.ExcludePatterns {
			if matchGlob(pattern, name) {
				return false
			}
		}
		return true
	}

	// Check includes
	matched := false
	for _, pattern := range c.config.IncludePatterns {
		if matchGlob(pattern, name) {
			matched = true
			break
		}
	}

	if !matched {
		return false
	}

	// Check excludes
	for _, pattern := range c.config.ExcludePatterns {
		if matchGlob(pattern, name) {
			return false
		}
	}

	return true
}

func matchGlob(pattern, name string) bool {
	// Simple glob matching: * matches any sequence
	regexPattern := "^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, `.*`) + "$"
	matched, _ := regexp.MatchString(regexPattern, name)
	return matched
}

func (c *TypeCollector) typeToString(t types.Type) string {
	return types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	})
}

func isPointer(t types.Type) bool {
	_, ok := t.(*types.Pointer)
	return ok
}

func isSliceOrArray(t types.Type) bool {
	switch t.(type) {
	case *types.Slice, *types.Array:
		return true
	}
	return false
}
