// Package cli wires the cobra command tree, flag parsing, and survey
// prompts on top of internal/app's pipeline.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tacogips/ffizer/internal/app"
	"github.com/tacogips/ffizer/internal/debug"
)

// Version variables, set from cmd/scaffold/main.go via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global flags shared by every subcommand.
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
	globalConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Project template scaffolding tool",
	Long: `scaffold resolves a tree of imported sub-templates, prompts for
declared variables, computes a deterministic file plan, and applies it to
a destination directory with dry-run, diff, and confirmation support.

Use "scaffold apply <source> <destination>" to generate a project from a
local directory or a git-hosted template.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
	},
}

// Execute runs the root command; called once from main().
func Execute() int {
	app.Version = Version
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return exitCodeFor(err)
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&globalDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "Path to global config file (default: ~/.config/ffizer/config.json)")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(versionCmd)
}

func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// exitCodeFor maps a returned error to a process exit code: 0 success,
// 1 generic failure, 2 user aborted, 3 source resolution failed,
// 4 template parse error.
func exitCodeFor(err error) int {
	appErr, ok := err.(*app.Error)
	if !ok {
		return 1
	}
	switch appErr.Type {
	case app.UserAborted:
		return 2
	case app.SourceFailure:
		return 3
	case app.TemplateFailure:
		return 4
	default:
		return 1
	}
}
