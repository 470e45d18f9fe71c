package extract

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"

	"github.com/blockberries/cramwire/pkg/codegen"
)

// Extractor loads Go packages, collects their `cram`-tagged struct and enum
// declarations, and runs a code generator over the result.
type Extractor struct {
	loader *PackageLoader
}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		loader: NewPackageLoader(),
	}
}

// GenerateConfig configures a generation run.
type GenerateConfig struct {
	Config     *Config // Type collector configuration
	Patterns   []string // Go package patterns to load
	OutputPath string   // Output file path (empty for stdout)
	GenOptions codegen.Options
}

// Generate loads cfg.Patterns, collects their record/enum types, and runs
// gen over the result, returning the gofmt'd source.
func (e *Extractor) Generate(gen codegen.Generator, cfg *GenerateConfig) ([]byte, error) {
	pkgs, err := e.loader.Load(cfg.Patterns)
	if err != nil {
		return nil, fmt.Errorf("cramgen: load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("cramgen: no packages matched patterns: %v", cfg.Patterns)
	}

	collectorCfg := cfg.Config
	if collectorCfg == nil {
		collectorCfg = DefaultConfig()
	}
	collector := NewTypeCollector(pkgs, collectorCfg)
	if err := collector.Collect(); err != nil {
		return nil, fmt.Errorf("cramgen: collect types: %w", err)
	}

	if cfg.GenOptions.Package == "" {
		cfg.GenOptions.Package = pkgs[0].Name
	}

	types := make([]*TypeInfo, 0, len(collector.Types()))
	for _, t := range collector.Types() {
		types = append(types, t)
	}
	enums := make([]*EnumInfo, 0, len(collector.Enums()))
	for _, en := range collector.Enums() {
		enums = append(enums, en)
	}

	var buf bytes.Buffer
	if err := gen.Generate(&buf, types, enums, cfg.GenOptions); err != nil {
		return nil, fmt.Errorf("cramgen: generate: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("cramgen: gofmt generated source: %w", err)
	}
	return formatted, nil
}

// GenerateAndWrite generates code and writes it to cfg.OutputPath, or
// stdout when OutputPath is empty.
func (e *Extractor) GenerateAndWrite(gen codegen.Generator, cfg *GenerateConfig) error {
	src, err := e.Generate(gen, cfg)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if cfg.OutputPath != "" {
		dir := filepath.Dir(cfg.OutputPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cramgen: create output directory: %w", err)
		}

		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("cramgen: create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	_, err = out.Write(src)
	return err
}
