package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"confgen/internal/compiler"
	"confgen/internal/diagnostic"
	"confgen/internal/gen"
)

type generateOptions struct {
	dryRun bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [packages...]",
		Short: "Generate configuration types for schema declarations",
		Long: `Load the given packages (or the packages listed in confgen.yaml), compile
every //confgen:schema declaration and write one *_gen.go file per schema
next to its declaration. Schemas that fail are reported; the others are
still written.`,
		Example: `  # Generate for every package in the module
  confgen generate ./...

  # Show what would be written
  confgen generate --dry-run ./examples/shop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectFrom(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, p, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "List files without writing them")

	return cmd
}

func runGenerate(cmd *cobra.Command, p *project, args []string, opts *generateOptions) error {
	report, err := p.compile(cmd.Context(), args)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), report.Diagnostics)

	out := cmd.OutOrStdout()
	if opts.dryRun {
		for _, f := range report.Files {
			_, _ = fmt.Fprintln(out, displayPath(p.Dir, f))
		}
	} else {
		if err := gen.WriteFiles(report.Files, p.Dir); err != nil {
			return err
		}
		p.Logger.Info("wrote generated files", "count", len(report.Files))
		_, _ = fmt.Fprintf(out, "Generated %d file(s)\n", len(report.Files))
	}

	return failure(report)
}

// compileFailure matches ErrCompileFailed and every typed error behind the
// reported diagnostics, without repeating them in its message.
type compileFailure struct {
	count int
	cause error
}

func (e *compileFailure) Error() string {
	return fmt.Sprintf("%v: %d error(s)", ErrCompileFailed, e.count)
}

func (e *compileFailure) Unwrap() []error {
	return []error{ErrCompileFailed, e.cause}
}

func failure(report *compiler.Report) error {
	if !report.Failed() {
		return nil
	}
	return &compileFailure{count: len(report.Diagnostics.Errors), cause: report.Diagnostics.Error()}
}

func displayPath(dir string, f gen.GeneratedFile) string {
	path := f.Path()
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return relPath(dir, path)
}

// relPath shortens path relative to dir when possible.
func relPath(dir, path string) string {
	base, err := filepath.Abs(dir)
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(base, abs); err == nil {
		return rel
	}
	return path
}

func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		printDiagnostic(w, "warning", d)
	}
	for _, d := range diags.Errors {
		printDiagnostic(w, "error", d)
	}
}

func printDiagnostic(w io.Writer, severity string, d diagnostic.Diagnostic) {
	_, _ = fmt.Fprintf(w, "%s: %s\n", severity, d.String())
	for _, s := range d.Suggestions {
		_, _ = fmt.Fprintf(w, "  did you mean %s?\n", s)
	}
}
