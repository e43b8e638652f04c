// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	dir        string
	configPath string
	logLevel   string
	logFormat  string
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "confgen",
		Short: "Generate typed configuration objects from schema declarations",
		Long: `confgen reads Go packages, finds structs marked with //confgen:schema and
generates immutable configuration types with constructors, accessors,
copy-with setters and Result-returning Deserialize functions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadProject(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "C", ".", "Working directory for package patterns")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to confgen.yaml (default: <dir>/confgen.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	registerGenerateCmd(rootCmd)
	registerCheckCmd(rootCmd)
	registerInspectCmd(rootCmd)

	return rootCmd
}

func registerGenerateCmd(parent *cobra.Command) {
	parent.AddCommand(newGenerateCmd())
}

func registerCheckCmd(parent *cobra.Command) {
	parent.AddCommand(newCheckCmd())
}

func registerInspectCmd(parent *cobra.Command) {
	parent.AddCommand(newInspectCmd())
}
