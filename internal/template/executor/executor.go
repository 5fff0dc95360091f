// Package executor applies a Plan to a destination directory, with
// dry-run, confirmation, and diff-display support.
package executor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"

	"github.com/tacogips/ffizer/internal/debug"
	"github.com/tacogips/ffizer/internal/template/model"
)

// ConfirmPolicy controls whether the executor prompts before each
// overwrite.
type ConfirmPolicy int

const (
	ConfirmNever ConfirmPolicy = iota
	ConfirmAlways
)

// ContentRenderer renders a file's content in strict mode; satisfied by
// *render.Engine.
type ContentRenderer interface {
	RenderStrict(name, text string, scope map[string]string) (string, error)
}

// Options configures a Run.
type Options struct {
	// DestRoot is the destination directory; created if absent.
	DestRoot string
	// DryRun, if true, only prints the actions without touching disk.
	DryRun bool
	// Confirm controls overwrite prompting in execute mode; unused in dry-run.
	Confirm ConfirmPolicy
	// Scope is the final variable scope, used both for rendering and as
	// the post-run script environment.
	Scope map[string]string
	// Renderer renders CopyRender actions' content.
	Renderer ContentRenderer
	// NoColor disables pterm styling.
	NoColor bool
}

// Result summarizes a completed run.
type Result struct {
	Applied int
	Skipped int
}

// Executor applies a Plan against an afero filesystem (OS-backed for a
// real run, in-memory for a pure what-if pass).
type Executor struct {
	Fs afero.Fs
}

// New returns an Executor backed by fs. Pass afero.NewOsFs() for a real
// run or afero.NewMemMapFs() for an in-memory what-if pass.
func New(fs afero.Fs) *Executor {
	return &Executor{Fs: fs}
}

// Run applies p under opts.DestRoot in plan order.
func (ex *Executor) Run(p *model.Plan, opts Options) (Result, error) {
	var result Result
	policy := opts.Confirm

	if !opts.DryRun {
		if err := ex.Fs.MkdirAll(opts.DestRoot, 0o755); err != nil {
			return result, &Error{Type: IoError, Path: opts.DestRoot, Message: "failed to create destination root", Cause: err}
		}
	}

	for _, action := range p.Actions {
		dst := filepath.Join(opts.DestRoot, action.Dst)

		if opts.DryRun {
			printDryRun(action, opts.NoColor)
			result.Applied++
			continue
		}

		applied, err := ex.apply(action, dst, &policy, opts)
		if err != nil {
			if err == errQuit {
				return result, &Error{Type: UserAborted, Path: dst, Message: "user aborted at confirmation prompt"}
			}
			return result, err
		}
		if applied {
			result.Applied++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

func (ex *Executor) apply(action model.Action, dst string, policy *ConfirmPolicy, opts Options) (bool, error) {
	switch action.Kind {
	case model.ActionMkDir:
		if err := ex.Fs.MkdirAll(dst, 0o755); err != nil {
			return false, &Error{Type: IoError, Path: dst, Message: "mkdir failed", Cause: err}
		}
		return true, nil

	case model.ActionIgnore, model.ActionKeep:
		return false, nil

	case model.ActionCopyRaw, model.ActionCopyRender:
		content, err := ex.computeContent(action, opts)
		if err != nil {
			return false, err
		}

		existing, exists := ex.readExisting(dst)
		if exists && *policy == ConfirmAlways {
			decision, err := confirmOverwrite(dst, existing, content)
			if err != nil {
				return false, &Error{Type: IoError, Path: dst, Message: "confirmation prompt failed", Cause: err}
			}
			switch decision {
			case decisionKeep:
				return false, nil
			case decisionAlways:
				*policy = ConfirmNever
			case decisionQuit:
				return false, errQuit
			}
		}

		if err := ex.Fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return false, &Error{Type: IoError, Path: dst, Message: "failed to create parent directory", Cause: err}
		}
		if err := afero.WriteFile(ex.Fs, dst, content, 0o644); err != nil {
			return false, &Error{Type: IoError, Path: dst, Message: "write failed", Cause: err}
		}
		return true, nil
	}
	return false, nil
}

func (ex *Executor) computeContent(action model.Action, opts Options) ([]byte, error) {
	raw, err := os.ReadFile(action.Src)
	if err != nil {
		return nil, &Error{Type: IoError, Path: action.Src, Message: "failed to read source", Cause: err}
	}
	if action.Kind == model.ActionCopyRaw {
		return raw, nil
	}
	rendered, err := opts.Renderer.RenderStrict(action.Src, string(raw), opts.Scope)
	if err != nil {
		return nil, &Error{Type: IoError, Path: action.Src, Message: "render failed", Cause: err}
	}
	return []byte(rendered), nil
}

func (ex *Executor) readExisting(dst string) ([]byte, bool) {
	b, err := afero.ReadFile(ex.Fs, dst)
	if err != nil {
		return nil, false
	}
	return b, true
}

func printDryRun(a model.Action, noColor bool) {
	line := fmt.Sprintf("%s %q", a.Kind.String(), a.Dst)
	if noColor {
		fmt.Println(line)
		return
	}
	switch a.Kind {
	case model.ActionMkDir:
		pterm.FgCyan.Println(line)
	case model.ActionCopyRaw:
		pterm.FgGreen.Println(line)
	case model.ActionCopyRender:
		pterm.FgYellow.Println(line)
	case model.ActionKeep:
		pterm.FgGray.Println(line)
	default:
		fmt.Println(line)
	}
}

type decision int

const (
	decisionOverwrite decision = iota
	decisionKeep
	decisionAlways
	decisionQuit
)

var errQuit = &Error{Type: UserAborted, Message: "quit"}

func confirmOverwrite(dst string, existing, next []byte) (decision, error) {
	printDiff(dst, existing, next)

	var choice string
	prompt := &survey.Select{
		Message: fmt.Sprintf("overwrite %q?", dst),
		Options: []string{"yes", "no (keep existing)", "always", "quit"},
		Default: "no (keep existing)",
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return decisionKeep, err
	}

	switch choice {
	case "yes":
		return decisionOverwrite, nil
	case "always":
		return decisionAlways, nil
	case "quit":
		return decisionQuit, nil
	default:
		return decisionKeep, nil
	}
}

func printDiff(dst string, a, b []byte) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: dst + " (existing)",
		ToFile:   dst + " (new)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		debug.Debug("[executor] failed to compute diff for %s: %v", dst, err)
		return
	}
	pterm.DefaultBasicText.Println(text)
}
