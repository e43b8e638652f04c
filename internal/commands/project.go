package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"confgen/internal/analyze"
	"confgen/internal/compiler"
	"confgen/internal/settings"
)

var (
	// ErrInvalidSettings indicates confgen.yaml exists but is invalid.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrNotLoaded indicates a command ran without the root pre-run.
	ErrNotLoaded = errors.New("project not loaded")

	// ErrCompileFailed indicates at least one schema failed to compile.
	ErrCompileFailed = errors.New("compilation failed")
)

type contextKey struct{}

// project is the per-invocation state shared by all commands.
type project struct {
	Dir      string
	Settings *settings.Settings
	Logger   *slog.Logger
}

func loadProject(cmd *cobra.Command, opts *rootOptions) error {
	logger, err := configLogger(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}

	path := opts.configPath
	if path == "" {
		path = filepath.Join(opts.dir, settings.FileName)
	}

	s, err := settings.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	p := &project{Dir: opts.dir, Settings: s, Logger: logger}
	cmd.SetContext(context.WithValue(cmd.Context(), contextKey{}, p))

	return nil
}

func projectFrom(cmd *cobra.Command) (*project, error) {
	if cmd.Context() == nil {
		return nil, ErrNotLoaded
	}
	if p, ok := cmd.Context().Value(contextKey{}).(*project); ok {
		return p, nil
	}
	return nil, ErrNotLoaded
}

// patterns returns args, falling back to the configured packages.
func (p *project) patterns(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if len(p.Settings.Packages) > 0 {
		return p.Settings.Packages
	}
	return []string{"./..."}
}

// compile loads the packages and runs one compilation over them.
func (p *project) compile(ctx context.Context, args []string) (*compiler.Report, error) {
	patterns := p.patterns(args)
	p.Logger.Debug("loading packages", "patterns", patterns, "dir", p.Dir)

	a := analyze.NewAnalyzer()
	a.Dir = p.Dir

	graph, err := a.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	pattern, err := p.Settings.Pattern()
	if err != nil {
		return nil, err
	}

	report, err := compiler.Compile(ctx, graph, compiler.Options{
		Parallelism:    p.Settings.Parallelism,
		DefaultPattern: pattern,
		Generator:      p.Settings.GeneratorConfig(),
		Logger:         p.Logger,
	})
	if err != nil {
		return nil, err
	}

	for _, d := range report.Diagnostics.Infos {
		p.Logger.Debug(d.Message, "schema", d.Schema, "code", d.Code)
	}

	return report, nil
}
