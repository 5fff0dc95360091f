// Package render implements the Handlebars-like rendering engine used
// for both file contents and path-segment substitution.
package render

import (
	"bytes"
	"net/http"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/tacogips/ffizer/internal/debug"
)

// Engine evaluates templates against a variable scope, in either strict
// mode (undefined variable aborts) or lenient mode (undefined resolves
// to the empty string).
type Engine struct {
	// Offline disables the http_get helper.
	Offline bool

	httpClient *http.Client
}

// New returns an Engine with a shared HTTP client for the http_get helper.
func New(offline bool) *Engine {
	return &Engine{
		Offline: offline,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (e *Engine) funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	for name, fn := range e.helperFuncMap() {
		fm[name] = fn
	}
	return fm
}

// RenderStrict evaluates text against scope; an undefined variable
// reference or execution error is fatal.
func (e *Engine) RenderStrict(name, text string, scope map[string]string) (string, error) {
	return e.render(name, text, scope, true)
}

// RenderLenient evaluates text against scope; an undefined variable
// reference resolves to the empty string and execution errors are
// swallowed to an empty result.
func (e *Engine) RenderLenient(name, text string, scope map[string]string) (string, error) {
	return e.render(name, text, scope, false)
}

func (e *Engine) render(name, text string, scope map[string]string, strict bool) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if strict {
				err = newError(RenderError, name, "panic during template execution", nil)
				return
			}
			result, err = "", nil
		}
	}()

	fm := e.funcMap()
	// file_exists resolves its argument against the destination root
	// carried in scope as ffizer_dst_folder.
	fm["file_exists"] = func(path string) bool { return fileExists(scope["ffizer_dst_folder"], path) }
	tmpl := template.New(name).Funcs(fm)
	if strict {
		tmpl = tmpl.Option("missingkey=error")
	} else {
		tmpl = tmpl.Option("missingkey=zero")
	}

	tmpl, parseErr := tmpl.Parse(preprocessHandlebars(text, fm))
	if parseErr != nil {
		if strict {
			return "", newError(RenderError, name, "template parse failed", parseErr)
		}
		debug.Debug("[render] lenient parse failure for %s: %v", name, parseErr)
		return "", nil
	}

	var buf bytes.Buffer
	if execErr := tmpl.Execute(&buf, scope); execErr != nil {
		if strict {
			return "", newError(RenderError, name, "template execution failed", execErr)
		}
		debug.Debug("[render] lenient execution failure for %s: %v", name, execErr)
		return "", nil
	}
	return buf.String(), nil
}
