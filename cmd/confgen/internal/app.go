// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"confgen/internal/commands"
)

// EnvLogLevel overrides the default of the --log-level flag.
const EnvLogLevel = "CONFGEN_LOG_LEVEL"

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup, arguments).
func Run(ctx context.Context, getenv func(string) string, args []string) error {
	rootCmd := commands.NewRootCmd()
	if level := getenv(EnvLogLevel); level != "" {
		if err := rootCmd.PersistentFlags().Set("log-level", level); err != nil {
			return err
		}
	}

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
