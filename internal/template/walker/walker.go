// Package walker enumerates source paths under a template node's
// content root, applying that node's own ignore globs.
package walker

import (
	"os"
	"path/filepath"

	"github.com/tacogips/ffizer/internal/debug"
	"github.com/tacogips/ffizer/internal/template/model"
)

// Walk returns every SourceEntry under node.ContentRoot not matched by
// one of node's own ignore globs. Ignore globs never apply across nodes.
func Walk(node *model.TemplateNode) ([]model.SourceEntry, error) {
	var entries []model.SourceEntry

	err := filepath.Walk(node.ContentRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				debug.Debug("[walker] skipping unreadable path: %s", path)
				return nil
			}
			return err
		}
		if path == node.ContentRoot {
			return nil
		}

		rel, relErr := filepath.Rel(node.ContentRoot, path)
		if relErr != nil {
			return relErr
		}
		relSlash := filepath.ToSlash(rel)

		if matchesAny(node.Config.Ignores, relSlash) {
			debug.Debug("[walker] ignoring %s", relSlash)
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		kind := model.KindFile
		if info.IsDir() {
			kind = model.KindDir
		} else if info.Mode()&os.ModeSymlink != 0 {
			kind = model.KindSymlink
		}

		entries = append(entries, model.SourceEntry{
			Node:    node,
			RelPath: relSlash,
			Kind:    kind,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// matchesAny reports whether relPath matches any of globs, evaluated
// relative to the content root. A glob is matched both against the full
// relative path and against its base name, so patterns like ".git" match
// any directory named .git anywhere under the root.
func matchesAny(globs []string, relPath string) bool {
	base := filepath.Base(relPath)
	for _, g := range globs {
		if ok, _ := filepath.Match(g, relPath); ok {
			return true
		}
		if ok, _ := filepath.Match(g, base); ok {
			return true
		}
		// Support "dir/*" style globs against slash paths explicitly,
		// since filepath.Match treats "/" literally on all platforms here.
		if ok, _ := filepath.Match(filepath.ToSlash(g), relPath); ok {
			return true
		}
	}
	return false
}
