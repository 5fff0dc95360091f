package executor

import (
	"os"
	"os/exec"

	"github.com/tacogips/ffizer/internal/debug"
	"github.com/tacogips/ffizer/internal/template/model"
)

// RunScripts executes every script declared across nodes, in traversal
// order, in destDir, with scope exposed as environment variables. Never
// called on a dry-run.
func RunScripts(nodes []*model.TemplateNode, destDir string, scope map[string]string) error {
	env := append(os.Environ(), envPairs(scope)...)

	for _, n := range nodes {
		for _, script := range n.Config.Scripts {
			if script.Message != "" {
				debug.Debug("[executor] %s", script.Message)
			}
			cmd := exec.Command("sh", "-c", script.Cmd)
			cmd.Dir = destDir
			cmd.Env = env
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if err := cmd.Run(); err != nil {
				return &Error{Type: IoError, Path: destDir, Message: "script failed: " + script.Cmd, Cause: err}
			}
		}
	}
	return nil
}

func envPairs(scope map[string]string) []string {
	out := make([]string, 0, len(scope))
	for k, v := range scope {
		out = append(out, k+"="+v)
	}
	return out
}
