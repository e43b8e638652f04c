package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"

	"confgen/internal/analyze"
	"confgen/internal/common"
	"confgen/internal/naming"
	"confgen/internal/synth"
)

// DefaultRuntimePath is the import path of the package generated code is written against.
const DefaultRuntimePath = "confgen/config"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RuntimePath is the import path of the runtime package.
	RuntimePath string
	// FileSuffix is appended to the snake-cased generated type name.
	FileSuffix string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// DebugUnformatted writes a .unformatted.go sidecar when gofmt rejects output.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RuntimePath:      DefaultRuntimePath,
		FileSuffix:       "_gen.go",
		GenerateComments: true,
		DebugUnformatted: true,
	}
}

// Generator renders type specs to Go source. It holds no per-file state and
// is safe for concurrent use.
type Generator struct {
	config GeneratorConfig
	graph  *analyze.TypeGraph
}

// NewGenerator creates a new Generator. The graph supplies package names and
// directories; it may be nil.
func NewGenerator(config GeneratorConfig, graph *analyze.TypeGraph) *Generator {
	def := DefaultGeneratorConfig()
	if config.RuntimePath == "" {
		config.RuntimePath = def.RuntimePath
	}
	if config.FileSuffix == "" {
		config.FileSuffix = def.FileSuffix
	}

	return &Generator{config: config, graph: graph}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "shop_gen.go").
	Filename string
	// Schema is the declaration the file was generated from.
	Schema analyze.TypeID
	// Content is the formatted Go source code.
	Content []byte
}

// Path joins Dir and Filename.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Filename returns the file name used for a generated type.
func (g *Generator) Filename(typeName string) string {
	return naming.LowerSnake.Format(typeName) + g.config.FileSuffix
}

// Generate renders a single type spec into its own file.
func (g *Generator) Generate(spec *synth.TypeSpec) (*GeneratedFile, error) {
	pkgPath := spec.Schema.Source.PkgPath
	pkgName, dir := g.pkg(pkgPath)

	data := g.buildFileData(spec, pkgName)

	file := &GeneratedFile{
		Dir:      dir,
		Filename: g.Filename(spec.Name),
		Schema:   spec.Schema.Source,
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", spec.Name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(dir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting generated code for %s: %w", spec.Name, err)
	}

	file.Content = formatted

	return file, nil
}

// GenerateAll renders every spec, parents before children.
func (g *Generator) GenerateAll(specs []*synth.TypeSpec) ([]GeneratedFile, error) {
	ordered, err := Order(specs)
	if err != nil {
		return nil, err
	}

	files := make([]GeneratedFile, 0, len(ordered))
	for _, spec := range ordered {
		file, err := g.Generate(spec)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", spec.Schema.Source, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// pkg returns the name and directory of a loaded package.
func (g *Generator) pkg(pkgPath string) (name, dir string) {
	if g.graph != nil {
		if info, ok := g.graph.Packages[pkgPath]; ok {
			return info.Name, info.Dir
		}
	}

	return common.PkgAlias(pkgPath), ""
}
