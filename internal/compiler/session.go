// Package compiler runs one compilation: discover schemas in a type graph,
// extract and register them, then synthesize and render each one.
package compiler

import (
	"context"
	"log/slog"
	"maps"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"confgen/internal/analyze"
	"confgen/internal/diagnostic"
	"confgen/internal/gen"
	"confgen/internal/match"
	"confgen/internal/naming"
	"confgen/internal/registry"
	"confgen/internal/resolve"
	"confgen/internal/schema"
	"confgen/internal/synth"
)

// Options configures a Session.
type Options struct {
	// Parallelism bounds concurrent synthesis; zero means GOMAXPROCS.
	Parallelism int
	// DefaultPattern is the lookup-key pattern for schemas without naming=.
	DefaultPattern naming.Pattern
	// NamingCacheSize bounds the memoised naming transforms.
	NamingCacheSize int
	// Generator configures rendering.
	Generator gen.GeneratorConfig
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Session owns everything that lives for one compilation: the registry and
// the extractor, resolver and naming caches.
type Session struct {
	opts      Options
	graph     *analyze.TypeGraph
	extractor *schema.Extractor
	registry  *registry.Registry
	synth     *synth.Synthesizer
	gen       *gen.Generator
	logger    *slog.Logger
}

// NewSession creates a session over graph.
func NewSession(graph *analyze.TypeGraph, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}

	names := naming.NewResolver(opts.NamingCacheSize)
	extractor := schema.NewExtractor(graph, names,
		schema.WithDefaultPattern(opts.DefaultPattern),
		schema.WithLogger(opts.Logger))
	reg := registry.New()

	return &Session{
		opts:      opts,
		graph:     graph,
		extractor: extractor,
		registry:  reg,
		synth:     synth.New(resolve.New(extractor, reg), opts.Logger),
		gen:       gen.NewGenerator(opts.Generator, graph),
		logger:    opts.Logger.With("system", "compiler"),
	}
}

// Registry returns the session's generated-type registry.
func (s *Session) Registry() *registry.Registry {
	return s.registry
}

// Report is the outcome of a compilation. Specs and Files hold only the
// schemas that compiled; Diagnostics explains the rest.
type Report struct {
	Schemas     []*schema.Schema
	Specs       []*synth.TypeSpec
	Files       []gen.GeneratedFile
	Diagnostics diagnostic.Diagnostics
}

// Failed reports whether any schema failed to compile.
func (r *Report) Failed() bool {
	return r.Diagnostics.HasErrors()
}

// Compile discovers, extracts, registers, synthesizes and renders every
// schema in the graph. A failing schema is reported and skipped; the error
// return is reserved for cancellation.
func (s *Session) Compile(ctx context.Context) (*Report, error) {
	report := &Report{}

	for _, err := range s.graph.LoadErrors {
		report.Diagnostics.AddWarning(diagnostic.CodeTypeCheck, err.Error(), "", "")
	}
	s.unusedDirectives(&report.Diagnostics)

	decls := s.graph.WithDirective(schema.Directive)
	s.logger.Info("compiling schemas", "count", len(decls), "packages", len(s.graph.Packages))

	for _, decl := range decls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sc, err := s.extractor.Extract(decl)
		if err != nil {
			s.logger.Debug("extraction failed", "schema", decl.ID.String(), "err", err)
			report.Diagnostics.AddFailure(decl.ID.String(), err)
			continue
		}

		report.Schemas = append(report.Schemas, sc)
	}

	// Every schema is registered before any is synthesized so that type
	// reference diagnostics can see all generated names.
	failed := make(map[*schema.Schema]bool)
	registered := report.Schemas[:0]
	for _, sc := range report.Schemas {
		if err := s.registry.Register(sc); err != nil {
			report.Diagnostics.AddFailure(sc.Source.String(), err)
			failed[sc] = true
			continue
		}
		registered = append(registered, sc)
	}
	report.Schemas = registered

	results, err := s.synthesizeAll(ctx, report.Schemas)
	if err != nil {
		return nil, err
	}

	for i, res := range results {
		if res.spec == nil {
			failed[report.Schemas[i]] = true
		}
	}

	for i, res := range results {
		sc := report.Schemas[i]
		if res.spec != nil {
			if a := failedAncestor(sc, failed); a != nil {
				report.Diagnostics.AddError(diagnostic.CodeValidation,
					"parent "+a.Source.Name+" failed to compile", sc.Source.String(), "")
				continue
			}
			report.Specs = append(report.Specs, res.spec)
			report.Files = append(report.Files, *res.file)
		}
		report.Diagnostics.Merge(res.diags)
	}

	report.Diagnostics.Sort()

	s.logger.Info("compiled schemas",
		"generated", len(report.Files),
		"errors", len(report.Diagnostics.Errors),
		"warnings", len(report.Diagnostics.Warnings))

	return report, nil
}

func failedAncestor(sc *schema.Schema, failed map[*schema.Schema]bool) *schema.Schema {
	for _, a := range sc.Ancestors() {
		if failed[a] {
			return a
		}
	}

	return nil
}

type result struct {
	spec  *synth.TypeSpec
	file  *gen.GeneratedFile
	diags diagnostic.Diagnostics
}

// synthesizeAll runs synthesis and rendering concurrently. Each worker
// records its own diagnostics, merged by the caller in schema order; only
// cancellation stops the group.
func (s *Session) synthesizeAll(ctx context.Context, schemas []*schema.Schema) ([]result, error) {
	results := make([]result, len(schemas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Parallelism)

	for i, sc := range schemas {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			source := sc.Source.String()
			spec, err := s.synth.Synthesize(sc)
			if err != nil {
				results[i].diags.AddFailure(source, err)
				return nil
			}

			file, err := s.gen.Generate(spec)
			if err != nil {
				results[i].diags.AddError(diagnostic.CodeRender, err.Error(), source, "")
				return nil
			}

			results[i].spec, results[i].file = spec, file
			results[i].diags.AddInfo(diagnostic.CodeGenerated, "rendered "+file.Filename, source, "")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// unusedDirectives warns about confgen directives and schema arguments
// nothing consumes, suggesting the closest known spelling.
func (s *Session) unusedDirectives(diags *diagnostic.Diagnostics) {
	known := []string{schema.Directive, analyze.GeneratedDirective}

	for _, pkgPath := range s.graph.PackagePaths() {
		for _, id := range s.graph.Packages[pkgPath].Types {
			for _, d := range s.graph.Types[id].Directives {
				if !slices.Contains(known, d.Name) {
					diags.AddWarning(diagnostic.CodeUnusedDirective,
						"unknown directive "+analyze.DirectivePrefix+d.Name, id.String(), "")
					diags.Warnings[len(diags.Warnings)-1].Suggestions = prefixed(match.Suggest(d.Name, known))
					continue
				}
				if d.Name != schema.Directive {
					continue
				}

				for _, arg := range slices.Sorted(maps.Keys(d.Args)) {
					if slices.Contains(schema.Args, arg) {
						continue
					}
					diags.AddWarning(diagnostic.CodeUnusedDirective,
						"unknown schema argument "+arg, id.String(), "")
					diags.Warnings[len(diags.Warnings)-1].Suggestions = match.Suggest(arg, schema.Args)
				}
			}
		}
	}
}

func prefixed(names []string) []string {
	for i, n := range names {
		names[i] = analyze.DirectivePrefix + n
	}
	return names
}

// Compile is a convenience wrapper creating a one-off Session.
func Compile(ctx context.Context, graph *analyze.TypeGraph, opts Options) (*Report, error) {
	return NewSession(graph, opts).Compile(ctx)
}
