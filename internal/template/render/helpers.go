package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/tacogips/ffizer/internal/debug"
)

// helperFuncMap returns the domain-specific helpers layered on top of
// sprig's string-case functions.
func (e *Engine) helperFuncMap() template.FuncMap {
	return template.FuncMap{
		"to_upper_case": strings.ToUpper,
		"to_lower_case": strings.ToLower,
		"capitalize":    capitalize,
		"snake_case":    toSnakeCase,
		"kebab_case":    toKebabCase,
		"camel_case":    toCamelCase,
		"pascal_case":   toPascalCase,
		"file_name":     filepath.Base,
		"parent":        filepath.Dir,
		"extension":     filepath.Ext,

		"http_get": e.httpGet,

		"from_json": fromJSON,
		"to_json":   toJSON,
		"from_yaml": fromYAML,
		"to_yaml":   toYAML,
		"get_path":  getPath,

		"file_exists": fileExists,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func words(s string) []string {
	// split on any non-alphanumeric run, then further split camelCase runs.
	parts := regexp.MustCompile(`[^a-zA-Z0-9]+`).Split(s, -1)
	var out []string
	camelBoundary := regexp.MustCompile(`([a-z0-9])([A-Z])`)
	for _, p := range parts {
		if p == "" {
			continue
		}
		p = camelBoundary.ReplaceAllString(p, "$1 $2")
		for _, w := range strings.Fields(p) {
			out = append(out, strings.ToLower(w))
		}
	}
	return out
}

func toSnakeCase(s string) string  { return strings.Join(words(s), "_") }
func toKebabCase(s string) string  { return strings.Join(words(s), "-") }

func toCamelCase(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	out := ws[0]
	for _, w := range ws[1:] {
		out += capitalize(w)
	}
	return out
}

func toPascalCase(s string) string {
	ws := words(s)
	var out string
	for _, w := range ws {
		out += capitalize(w)
	}
	return out
}

func (e *Engine) httpGet(url string) (string, error) {
	if e.Offline {
		debug.Debug("[render] warning: offline mode, http_get %s returns empty", url)
		return "", nil
	}
	resp, err := e.httpClient.Get(url)
	if err != nil {
		return "", newError(HelperFailure, url, "http_get request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newError(HelperFailure, url, fmt.Sprintf("http_get got status %d", resp.StatusCode), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(HelperFailure, url, "failed to read http_get response body", err)
	}
	return string(body), nil
}

func fromJSON(s string) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, newError(HelperFailure, "from_json", "invalid JSON", err)
	}
	return v, nil
}

func toJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", newError(HelperFailure, "to_json", "failed to marshal JSON", err)
	}
	return string(b), nil
}

func fromYAML(s string) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, newError(HelperFailure, "from_yaml", "invalid YAML", err)
	}
	return v, nil
}

func toYAML(v interface{}) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", newError(HelperFailure, "to_yaml", "failed to marshal YAML", err)
	}
	return string(b), nil
}

// getPath walks a dotted path (e.g. "a.b.c") into a value produced by
// from_json/from_yaml.
func getPath(v interface{}, path string) (interface{}, error) {
	cur := v
	if path == "" {
		return cur, nil
	}
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, newError(HelperFailure, "get_path", fmt.Sprintf("cannot index %q on non-map value", seg), nil)
		}
		cur, ok = m[seg]
		if !ok {
			return nil, newError(HelperFailure, "get_path", fmt.Sprintf("key %q not found", seg), nil)
		}
	}
	return cur, nil
}

// fileExists reports whether path exists relative to destRoot.
func fileExists(destRoot, path string) bool {
	_, err := os.Stat(filepath.Join(destRoot, path))
	return err == nil
}
