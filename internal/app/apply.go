// Package app orchestrates the full scaffolding pipeline: resolve the
// source, load the import tree, collect variables, walk and classify
// every source path, build a plan, and execute it.
package app

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/tacogips/ffizer/internal/debug"
	"github.com/tacogips/ffizer/internal/source"
	"github.com/tacogips/ffizer/internal/template/classifier"
	"github.com/tacogips/ffizer/internal/template/executor"
	"github.com/tacogips/ffizer/internal/template/loader"
	"github.com/tacogips/ffizer/internal/template/model"
	"github.com/tacogips/ffizer/internal/template/plan"
	"github.com/tacogips/ffizer/internal/template/render"
	"github.com/tacogips/ffizer/internal/template/variables"
	"github.com/tacogips/ffizer/internal/template/walker"
)

// Version is copied from cli.Version by cli.Execute (cli.Version is set
// from cmd/scaffold/main.go's ldflags variables).
var Version = "dev"

// ApplyOptions configures a single Apply run: the CLI flags, settings the
// cli package takes from the config file, and NonInteractive for callers
// without a terminal, so the cli package can stay a thin cobra wrapper.
type ApplyOptions struct {
	Source             string
	Rev                string
	SourceSubfolder    string
	Destination        string
	Offline            bool
	ConfirmAlways      bool
	AlwaysDefaultValue bool
	NonInteractive     bool
	CacheDir           string
	GitTimeoutSec      int
	NoColor            bool
	DryRun             bool
}

// ApplyResult summarizes a completed run for the CLI layer to report.
type ApplyResult struct {
	Applied int
	Skipped int
}

// Apply runs the full pipeline: Source Locator -> Template Loader ->
// Variable Engine -> Path Walker -> Action Classifier -> Plan Builder ->
// Executor -> post-run scripts.
func Apply(ctx context.Context, opts ApplyOptions) (ApplyResult, error) {
	src := parseSource(opts.Source, opts.Rev, opts.SourceSubfolder)
	debug.DebugValue("[app] source", src.String())

	locator := source.NewLocator(opts.CacheDir)
	locator.Offline = opts.Offline
	if opts.GitTimeoutSec > 0 {
		locator.GitTimeout = time.Duration(opts.GitTimeoutSec) * time.Second
	}

	tmplLoader := loader.New(locator)
	root, err := tmplLoader.Load(ctx, src)
	if err != nil {
		return ApplyResult{}, &Error{Type: classifyLoadError(err), Message: "failed to load template", Cause: err}
	}
	nodes := root.Flatten()
	debug.DebugValue("[app] node count", len(nodes))

	renderEngine := render.New(opts.Offline)

	varEngine := variables.New(renderEngine)
	varEngine.AlwaysDefault = opts.AlwaysDefaultValue
	varEngine.ConfirmAlways = opts.ConfirmAlways
	varEngine.NonInteractive = opts.NonInteractive

	seeds := map[string]string{
		"ffizer_dst_folder":    opts.Destination,
		"ffizer_src_uri":       src.URI,
		"ffizer_src_rev":       src.Rev,
		"ffizer_src_subfolder": src.Subfolder,
		"ffizer_version":       Version,
	}
	scope, err := varEngine.Collect(nodes, seeds)
	if err != nil {
		return ApplyResult{}, &Error{Type: GenericFailure, Message: "failed to collect variables", Cause: err}
	}

	cls := classifier.New(renderEngine)
	var actions []model.Action
	for origin, n := range nodes {
		entries, err := walker.Walk(n)
		if err != nil {
			return ApplyResult{}, &Error{Type: TemplateFailure, Message: "failed to walk template", Cause: err}
		}
		for _, entry := range entries {
			action, err := cls.Classify(entry, scope.AsMap(), origin)
			if err != nil {
				return ApplyResult{}, &Error{Type: TemplateFailure, Message: "failed to classify entry", Cause: err}
			}
			if action != nil {
				actions = append(actions, *action)
			}
		}
	}

	p := plan.Build(actions)

	fs := afero.Fs(afero.NewOsFs())
	if opts.DryRun {
		fs = afero.NewMemMapFs()
	}
	ex := executor.New(fs)
	confirm := executor.ConfirmNever
	if opts.ConfirmAlways {
		confirm = executor.ConfirmAlways
	}
	result, err := ex.Run(p, executor.Options{
		DestRoot: opts.Destination,
		DryRun:   opts.DryRun,
		Confirm:  confirm,
		Scope:    scope.AsMap(),
		Renderer: renderEngine,
		NoColor:  opts.NoColor,
	})
	if err != nil {
		if execErr, ok := err.(*executor.Error); ok && execErr.Type == executor.UserAborted {
			return ApplyResult{Applied: result.Applied, Skipped: result.Skipped}, &Error{Type: UserAborted, Message: "user aborted", Cause: err}
		}
		return ApplyResult{}, &Error{Type: GenericFailure, Message: "execution failed", Cause: err}
	}

	if !opts.DryRun {
		if err := executor.RunScripts(nodes, opts.Destination, scope.AsMap()); err != nil {
			return ApplyResult{Applied: result.Applied, Skipped: result.Skipped}, &Error{Type: GenericFailure, Message: "post-run script failed", Cause: err}
		}
	}

	return ApplyResult{Applied: result.Applied, Skipped: result.Skipped}, nil
}

// parseSource builds a TemplateSource from the CLI's flat --source /
// --rev / --source-subfolder flags: an existing local directory, or a
// path-like string, resolves locally; everything else is treated as a
// git remote, with the github.com/owner/repo shorthand expanded to https.
func parseSource(uri, rev, subfolder string) model.TemplateSource {
	if looksLocal(uri) {
		return model.TemplateSource{Path: uri, Subfolder: subfolder}
	}
	return model.TemplateSource{URI: normalizeGitURI(uri), Rev: rev, Subfolder: subfolder}
}

func looksLocal(uri string) bool {
	if strings.HasPrefix(uri, "/") || strings.HasPrefix(uri, "./") || strings.HasPrefix(uri, "../") || strings.HasPrefix(uri, "~") {
		return true
	}
	if strings.HasPrefix(uri, "git@") || strings.Contains(uri, "://") || strings.HasPrefix(uri, "github.com/") {
		return false
	}
	if info, err := os.Stat(uri); err == nil && info.IsDir() {
		return true
	}
	return false
}

func normalizeGitURI(uri string) string {
	if strings.HasPrefix(uri, "github.com/") {
		return "https://" + uri
	}
	return uri
}

func classifyLoadError(err error) ErrorType {
	if _, ok := err.(*source.Error); ok {
		return SourceFailure
	}
	return TemplateFailure
}
