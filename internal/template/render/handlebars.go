package render

import (
	"strings"
	"text/template"
)

// reservedWords are Go template keywords, control-flow verbs, and
// builtin functions that must never be turned into field lookups when
// they appear bare inside an action.
var reservedWords = map[string]struct{}{
	"if": {}, "else": {}, "end": {}, "range": {}, "with": {},
	"define": {}, "block": {}, "template": {}, "break": {}, "continue": {},
	"true": {}, "false": {}, "nil": {},
	"and": {}, "or": {}, "not": {}, "eq": {}, "ne": {}, "lt": {}, "le": {}, "gt": {}, "ge": {},
	"len": {}, "index": {}, "slice": {}, "call": {},
	"html": {}, "js": {}, "urlquery": {}, "print": {}, "printf": {}, "println": {},
}

// preprocessHandlebars rewrites bare `{{name}}` references into Go
// template field lookups (`{{.name}}`) so spec-style Handlebars
// substitution works unmodified on top of text/template: a bare
// identifier is left alone when it names a registered function,
// builtin, or keyword, or when it's already preceded by "." or "$"
// (an existing field access or variable reference); everything else
// is assumed to be a scope variable and gets a "." prefix.
//
// Only the text between "{{" and "}}" is rewritten; quoted strings
// within an action are copied verbatim so literal text is never
// mistaken for an identifier.
func preprocessHandlebars(text string, fm template.FuncMap) string {
	var out []byte
	i, n := 0, len(text)
	for i < n {
		rel := strings.Index(text[i:], "{{")
		if rel < 0 {
			out = append(out, text[i:]...)
			break
		}
		open := i + rel
		out = append(out, text[i:open]...)

		relClose := strings.Index(text[open+2:], "}}")
		if relClose < 0 {
			out = append(out, text[open:]...)
			break
		}
		closeAt := open + 2 + relClose
		action := text[open+2 : closeAt]
		out = append(out, '{', '{')
		out = append(out, rewriteAction(action, fm)...)
		out = append(out, '}', '}')
		i = closeAt + 2
	}
	return string(out)
}

func rewriteAction(action string, fm template.FuncMap) string {
	var out []byte
	i, n := 0, len(action)
	var prev byte // last non-space, non-tab, non-newline byte emitted so far

	for i < n {
		c := action[i]
		switch {
		case c == '"' || c == '`':
			j := i + 1
			for j < n {
				if action[j] == '\\' && c == '"' && j+1 < n {
					j += 2
					continue
				}
				if action[j] == c {
					j++
					break
				}
				j++
			}
			out = append(out, action[i:j]...)
			prev = c
			i = j

		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentPart(action[j]) {
				j++
			}
			ident := action[i:j]
			if prev == '.' || prev == '$' || isKnownIdentifier(ident, fm) {
				out = append(out, ident...)
			} else {
				out = append(out, '.')
				out = append(out, ident...)
			}
			prev = ident[len(ident)-1]
			i = j

		default:
			out = append(out, c)
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
				prev = c
			}
			i++
		}
	}
	return string(out)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isKnownIdentifier(ident string, fm template.FuncMap) bool {
	if _, ok := reservedWords[ident]; ok {
		return true
	}
	if _, ok := fm[ident]; ok {
		return true
	}
	return false
}
