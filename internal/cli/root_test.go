package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tacogips/ffizer/internal/app"
)

func TestExitCodeForAppErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"user aborted", &app.Error{Type: app.UserAborted}, 2},
		{"source failure", &app.Error{Type: app.SourceFailure}, 3},
		{"template failure", &app.Error{Type: app.TemplateFailure}, 4},
		{"generic failure", &app.Error{Type: app.GenericFailure}, 1},
		{"plain error", errors.New("boom"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, exitCodeFor(tc.err))
		})
	}
}
