package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/ffizer/internal/app"
	"github.com/tacogips/ffizer/internal/config"
)

var applyCmd = &cobra.Command{
	Use:   "apply <source> <destination>",
	Short: "Generate a project from a template",
	Long: `apply resolves <source> (a local directory or a git-hosted
template), loads its import tree, prompts for declared variables, and
writes the resulting files under <destination>.

Examples:
  scaffold apply ./my-template ./my-project
  scaffold apply github.com/owner/repo ./my-project --rev v1.2.0
  scaffold apply github.com/owner/repo ./my-project --offline
  scaffold apply ./my-template ./my-project --confirm always --x-always_default_value`,
	Args: cobra.ExactArgs(2),
	RunE: runApply,
}

var (
	applyRev                string
	applySourceSubfolder    string
	applyOffline            bool
	applyConfirm            string
	applyAlwaysDefaultValue bool
	applyDryRun             bool
)

func init() {
	applyCmd.Flags().StringVar(&applyRev, "rev", "", "Branch, tag, or commit to resolve (git sources only)")
	applyCmd.Flags().StringVar(&applySourceSubfolder, "source-subfolder", "", "Subfolder within the resolved source to use as the template root")
	applyCmd.Flags().BoolVar(&applyOffline, "offline", false, "Forbid network access; fail on cache miss instead of fetching")
	applyCmd.Flags().StringVar(&applyConfirm, "confirm", "", `Overwrite confirmation policy: "never" or "always"`)
	applyCmd.Flags().BoolVar(&applyAlwaysDefaultValue, "x-always_default_value", false, "Skip all prompts, using each variable's evaluated default_value")
	applyCmd.Flags().BoolVarP(&applyDryRun, "dry-run", "d", false, "Print the computed plan without writing files")
}

func runApply(cmd *cobra.Command, args []string) error {
	source := args[0]
	destination := args[1]

	cfgPath := globalConfig
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.NewLoader().LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}

	offline := cfg.Defaults.Offline
	if cmd.Flags().Changed("offline") {
		offline = applyOffline
	}

	confirmPolicy := cfg.Defaults.Confirm
	if cmd.Flags().Changed("confirm") {
		confirmPolicy = applyConfirm
	}

	cacheDir := cfg.Cache.Directory
	if cacheDir == "" {
		cacheDir = config.DefaultCacheRoot()
	}

	printInfo(fmt.Sprintf("Resolving %s -> %s", source, destination))
	if applyDryRun {
		printInfo("[DRY RUN] no files will be written")
	}

	result, err := app.Apply(cmd.Context(), app.ApplyOptions{
		Source:             source,
		Rev:                applyRev,
		SourceSubfolder:    applySourceSubfolder,
		Destination:        destination,
		Offline:            offline,
		ConfirmAlways:      confirmPolicy == "always",
		AlwaysDefaultValue: applyAlwaysDefaultValue,
		CacheDir:           cacheDir,
		GitTimeoutSec:      cfg.Git.Timeout,
		NoColor:            globalNoColor,
		DryRun:             applyDryRun,
	})
	if err != nil {
		printErrorMsg(fmt.Sprintf("apply failed: %v", err))
		return err
	}

	if applyDryRun {
		printInfo(fmt.Sprintf("\n%d actions would be applied", result.Applied))
	} else {
		printSuccess(fmt.Sprintf("applied %d actions, skipped %d", result.Applied, result.Skipped))
		printInfo(fmt.Sprintf("project ready at: %s", destination))
	}

	return nil
}
