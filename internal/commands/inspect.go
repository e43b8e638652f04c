package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"confgen/internal/common"
	"confgen/internal/gen"
	"confgen/internal/synth"
)

type inspectOptions struct {
	dump bool
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [packages...]",
		Short: "Show the compiled schemas as a tree",
		Long: `Compile the schema declarations without writing anything and print each
generated type with its parent, lookup keys and resolved field types,
parents before children.`,
		Example: `  # Inspect a package
  confgen inspect ./examples/chain

  # Dump the full type specs
  confgen inspect --dump ./examples/chain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectFrom(cmd)
			if err != nil {
				return err
			}
			return runInspect(cmd, p, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dump, "dump", false, "Dump the synthesized type specs")

	return cmd
}

func runInspect(cmd *cobra.Command, p *project, args []string, opts *inspectOptions) error {
	report, err := p.compile(cmd.Context(), args)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), report.Diagnostics)

	specs, err := gen.Order(report.Specs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dump {
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, MaxDepth: 4}
		for _, spec := range specs {
			cfg.Fdump(out, spec)
		}
		return failure(report)
	}

	for _, spec := range specs {
		printSpec(out, spec)
	}

	return failure(report)
}

func printSpec(w io.Writer, spec *synth.TypeSpec) {
	tree := treeprint.NewWithRoot(fmt.Sprintf("%s (%s) %s", spec.Name, spec.Schema.Source, spec.Kind))

	if spec.Parent != nil {
		chain := make([]string, 0, spec.Schema.Depth())
		for _, a := range spec.Schema.Ancestors() {
			chain = append(chain, a.GeneratedName)
		}
		tree.AddMetaNode("extends", strings.Join(chain, " -> "))
	}
	if spec.Binding != nil {
		tree.AddMetaNode("source", spec.Binding.Key)
	}
	if spec.ToString != nil {
		tree.AddMetaNode("tostring", fmt.Sprintf("%d field(s)", len(spec.ToString.Parts)))
	}

	fields := tree.AddBranch("fields")
	for _, f := range spec.AllFields() {
		fields.AddMetaNode(fieldMeta(f), fieldLine(spec, f))
	}

	_, _ = fmt.Fprintln(w, tree.String())
}

func fieldMeta(f *synth.Field) string {
	if f.Inherited {
		return "inherited"
	}
	return "own"
}

func fieldLine(spec *synth.TypeSpec, f *synth.Field) string {
	src := f.Source
	q := func(pkgPath string) string {
		if pkgPath == spec.Schema.Source.PkgPath {
			return ""
		}
		return common.PkgAlias(pkgPath)
	}

	line := fmt.Sprintf("%s %q %s [%s]", f.Name(), src.LookupKey, f.Type.GoString(q), f.Type.Kind)

	var attrs []string
	if src.Nullable {
		attrs = append(attrs, "nullable")
	}
	if src.HasDefault {
		attrs = append(attrs, "default="+src.Default)
	}
	if src.KeyOrigin != "" {
		attrs = append(attrs, "key: "+string(src.KeyOrigin))
	}
	if len(attrs) > 0 {
		line += " " + strings.Join(attrs, ", ")
	}

	return line
}
