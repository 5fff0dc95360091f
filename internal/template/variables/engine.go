package variables

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/tacogips/ffizer/internal/debug"
	"github.com/tacogips/ffizer/internal/template/model"
)

// Renderer evaluates default_value and select_in_values expressions; it
// is satisfied by *render.Engine.
type Renderer interface {
	RenderLenient(name, text string, scope map[string]string) (string, error)
}

// Engine runs the variable collection and prompting protocol.
type Engine struct {
	Renderer Renderer
	// AlwaysDefault skips prompting and uses each evaluated default verbatim.
	AlwaysDefault bool
	// ConfirmAlways asks for confirmation after each prompt.
	ConfirmAlways bool
	// NonInteractive disables survey prompts entirely, behaving as if
	// AlwaysDefault were set; used by callers without a TTY, such as tests.
	NonInteractive bool
}

// New returns an Engine driven by renderer.
func New(renderer Renderer) *Engine {
	return &Engine{Renderer: renderer}
}

// Collect runs the full prompt protocol over nodes' merged variables,
// seeding scope with the well-known entries first.
func (e *Engine) Collect(nodes []*model.TemplateNode, seeds map[string]string) (*model.VariableScope, error) {
	scope := model.NewVariableScope()
	for k, v := range seeds {
		scope.Set(k, v)
	}

	for _, def := range Merge(nodes) {
		if err := e.collectOne(def, scope); err != nil {
			return nil, err
		}
	}
	return scope, nil
}

func (e *Engine) collectOne(def model.VariableDef, scope *model.VariableScope) error {
	defaultVal, err := e.Renderer.RenderLenient(def.Name+":default_value", def.DefaultValue, scope.AsMap())
	if err != nil {
		return &Error{Name: def.Name, Message: "failed to evaluate default_value", Cause: err}
	}

	var value string
	var idx int
	hasIdx := false

	switch {
	case def.Hidden:
		value = defaultVal

	case e.AlwaysDefault || e.NonInteractive:
		value = defaultVal
		if def.SelectInValues != "" {
			opts, err := e.selectOptions(def, scope)
			if err != nil {
				return err
			}
			for i, o := range opts {
				if o == defaultVal {
					idx, hasIdx = i, true
					break
				}
			}
		}

	case def.SelectInValues != "":
		opts, err := e.selectOptions(def, scope)
		if err != nil {
			return err
		}
		selected := defaultVal
		prompt := &survey.Select{
			Message: promptMessage(def),
			Options: opts,
			Default: defaultVal,
		}
		if err := survey.AskOne(prompt, &selected); err != nil {
			return &Error{Name: def.Name, Message: "prompt failed", Cause: err}
		}
		value = selected
		for i, o := range opts {
			if o == selected {
				idx, hasIdx = i, true
				break
			}
		}

	default:
		message := promptMessage(def)
		prompt := &survey.Input{Message: message, Default: defaultVal}
		if err := survey.AskOne(prompt, &value); err != nil {
			return &Error{Name: def.Name, Message: "prompt failed", Cause: err}
		}
		if value == "" {
			value = defaultVal
		}
	}

	if e.ConfirmAlways && !e.NonInteractive {
		ok := true
		confirmPrompt := &survey.Confirm{
			Message: fmt.Sprintf("%s = %q — confirm?", def.Name, value),
			Default: true,
		}
		if err := survey.AskOne(confirmPrompt, &ok); err != nil {
			return &Error{Name: def.Name, Message: "confirmation prompt failed", Cause: err}
		}
		if !ok {
			return &Error{Name: def.Name, Message: "value rejected at confirmation"}
		}
	}

	scope.Set(def.Name, value)
	if hasIdx {
		scope.Set(def.Name+"__idx", strconv.Itoa(idx))
	}
	debug.DebugValue("[variables] "+def.Name, value)
	return nil
}

func (e *Engine) selectOptions(def model.VariableDef, scope *model.VariableScope) ([]string, error) {
	rendered, err := e.Renderer.RenderLenient(def.Name+":select_in_values", def.SelectInValues, scope.AsMap())
	if err != nil {
		return nil, &Error{Name: def.Name, Message: "failed to evaluate select_in_values", Cause: err}
	}
	var opts []string
	if err := yaml.Unmarshal([]byte(rendered), &opts); err != nil {
		return nil, &Error{Name: def.Name, Message: "select_in_values did not evaluate to a YAML list of strings", Cause: err}
	}
	return opts, nil
}

func promptMessage(def model.VariableDef) string {
	if def.Ask != "" {
		return def.Ask
	}
	return def.Name
}
