package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"confgen/internal/gen"
)

// ErrStale indicates generated files on disk differ from a fresh compilation.
var ErrStale = errors.New("generated files are out of date")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Verify that generated files are up to date",
		Long: `Compile the schema declarations without writing anything and compare the
result with the *_gen.go files on disk. Fails when a schema does not
compile or a generated file is missing or different.`,
		Example: `  # Use in CI after changing a schema
  confgen check ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectFrom(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd, p, args)
		},
	}

	return cmd
}

func runCheck(cmd *cobra.Command, p *project, args []string) error {
	report, err := p.compile(cmd.Context(), args)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), report.Diagnostics)
	if err := failure(report); err != nil {
		return err
	}

	stale, err := staleFiles(p.Dir, report.Files)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(stale) > 0 {
		for _, path := range stale {
			_, _ = fmt.Fprintf(out, "stale: %s\n", path)
		}
		return fmt.Errorf("%w: %d file(s), run confgen generate", ErrStale, len(stale))
	}

	_, _ = fmt.Fprintf(out, "%d generated file(s) up to date\n", len(report.Files))
	return nil
}

func staleFiles(dir string, files []gen.GeneratedFile) ([]string, error) {
	stale, err := gen.Stale(files, dir)
	if err != nil {
		return nil, err
	}

	for i, path := range stale {
		stale[i] = relPath(dir, path)
	}
	return stale, nil
}
