package render

import "strings"

// RenderSegment renders a single path segment in lenient mode and
// rejects any result containing a path separator, per the path
// templating rule: segments must not render to a string spanning
// directories.
func (e *Engine) RenderSegment(name, segment string, scope map[string]string) (string, error) {
	out, err := e.RenderLenient(name, segment, scope)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(out, "/\\") {
		return "", newError(PathSeparatorInSegment, name,
			"rendered path segment contains a path separator: "+out, nil)
	}
	return out, nil
}
