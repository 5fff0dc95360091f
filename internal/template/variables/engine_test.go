package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/ffizer/internal/template/model"
)

// echoRenderer uses a trivial substitution: text that exactly equals a
// scope key renders to that key's value, anything else verbatim.
// This keeps variable-engine tests independent of the render package.
type echoRenderer struct{}

func (echoRenderer) RenderLenient(name, text string, scope map[string]string) (string, error) {
	if v, ok := scope[text]; ok {
		return v, nil
	}
	return text, nil
}

func nodeWithVars(defs ...model.VariableDef) *model.TemplateNode {
	return &model.TemplateNode{Config: model.TemplateConfig{Variables: defs}}
}

func TestMergeFirstDefinitionWins(t *testing.T) {
	n1 := nodeWithVars(model.VariableDef{Name: "a", DefaultValue: "from-n1"})
	n2 := nodeWithVars(model.VariableDef{Name: "a", DefaultValue: "from-n2"}, model.VariableDef{Name: "b", DefaultValue: "b-val"})

	merged := Merge([]*model.TemplateNode{n1, n2})
	require.Len(t, merged, 2)
	assert.Equal(t, "from-n1", merged[0].DefaultValue)
	assert.Equal(t, "b", merged[1].Name)
}

func TestCollectHiddenVariableSkipsPrompt(t *testing.T) {
	node := nodeWithVars(model.VariableDef{Name: "secret", Hidden: true, DefaultValue: "shh"})
	e := New(echoRenderer{})
	e.NonInteractive = true

	scope, err := e.Collect([]*model.TemplateNode{node}, nil)
	require.NoError(t, err)
	v, ok := scope.Get("secret")
	require.True(t, ok)
	assert.Equal(t, "shh", v)
}

func TestCollectAlwaysDefaultSkipsPrompting(t *testing.T) {
	node := nodeWithVars(model.VariableDef{Name: "project_name", DefaultValue: "myapp"})
	e := New(echoRenderer{})
	e.AlwaysDefault = true

	scope, err := e.Collect([]*model.TemplateNode{node}, nil)
	require.NoError(t, err)
	v, _ := scope.Get("project_name")
	assert.Equal(t, "myapp", v)
}

func TestCollectSeedsWellKnownKeys(t *testing.T) {
	e := New(echoRenderer{})
	e.NonInteractive = true

	scope, err := e.Collect(nil, map[string]string{"ffizer_dst_folder": "/out"})
	require.NoError(t, err)
	v, ok := scope.Get("ffizer_dst_folder")
	require.True(t, ok)
	assert.Equal(t, "/out", v)
}

func TestSelectOptionsParsesYAMLList(t *testing.T) {
	e := New(echoRenderer{})
	opts, err := e.selectOptions(
		model.VariableDef{Name: "color", SelectInValues: "[red, green, blue]"},
		model.NewVariableScope(),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green", "blue"}, opts)
}

func TestSelectOptionsInvalidYAMLFails(t *testing.T) {
	e := New(echoRenderer{})
	_, err := e.selectOptions(
		model.VariableDef{Name: "color", SelectInValues: "not: [valid"},
		model.NewVariableScope(),
	)
	require.Error(t, err)
}

func TestCollectAlwaysDefaultRecordsSelectIndex(t *testing.T) {
	node := nodeWithVars(model.VariableDef{
		Name:           "color",
		DefaultValue:   "green",
		SelectInValues: "[red, green, blue]",
	})
	e := New(echoRenderer{})
	e.AlwaysDefault = true

	scope, err := e.Collect([]*model.TemplateNode{node}, nil)
	require.NoError(t, err)

	idx, ok := scope.Get("color__idx")
	require.True(t, ok)
	assert.Equal(t, "1", idx)
}

func TestPromptMessageFallsBackToName(t *testing.T) {
	assert.Equal(t, "project_name", promptMessage(model.VariableDef{Name: "project_name"}))
	assert.Equal(t, "What's your project called?", promptMessage(model.VariableDef{Name: "project_name", Ask: "What's your project called?"}))
}
