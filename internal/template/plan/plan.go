// Package plan merges per-template actions into a single ordered,
// deduplicated, validated Plan.
package plan

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tacogips/ffizer/internal/template/model"
)

// Build merges actions (already in traversal order) into a Plan: dedupe
// by destination (first wins, MkDir never conflicts with MkDir), stable
// sort so ancestors precede descendants and directories precede files,
// and synthesize any missing ancestor MkDir actions.
func Build(actions []model.Action) *model.Plan {
	deduped := dedupe(actions)
	withDirs := addMissingDirs(deduped)
	sortActions(withDirs)
	return &model.Plan{Actions: withDirs}
}

func dedupe(actions []model.Action) []model.Action {
	seenFile := make(map[string]bool)
	seenDir := make(map[string]bool)
	var out []model.Action
	for _, a := range actions {
		key := filepath.ToSlash(filepath.Clean(a.Dst))
		if a.Kind == model.ActionMkDir {
			if seenDir[key] {
				continue
			}
			seenDir[key] = true
			out = append(out, a)
			continue
		}
		if seenFile[key] {
			continue
		}
		seenFile[key] = true
		out = append(out, a)
	}
	return out
}

// addMissingDirs ensures every file action's ancestor directories have a
// corresponding MkDir action.
func addMissingDirs(actions []model.Action) []model.Action {
	haveDir := make(map[string]bool)
	for _, a := range actions {
		if a.Kind == model.ActionMkDir {
			haveDir[normDir(a.Dst)] = true
		}
	}

	var synthesized []model.Action
	for _, a := range actions {
		if a.Kind == model.ActionMkDir {
			continue
		}
		for _, ancestor := range ancestorsOf(a.Dst) {
			key := normDir(ancestor)
			if key == "." || haveDir[key] {
				continue
			}
			haveDir[key] = true
			synthesized = append(synthesized, model.Action{
				Kind:   model.ActionMkDir,
				Dst:    ancestor,
				Origin: a.Origin,
			})
		}
	}
	return append(actions, synthesized...)
}

func ancestorsOf(dst string) []string {
	dir := filepath.ToSlash(filepath.Dir(dst))
	if dir == "." || dir == "" {
		return nil
	}
	parts := strings.Split(dir, "/")
	var out []string
	for i := range parts {
		out = append(out, strings.Join(parts[:i+1], "/"))
	}
	return out
}

func normDir(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// sortActions stable-sorts so ancestors precede descendants and
// directories precede files at the same depth.
func sortActions(actions []model.Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		di, dj := depth(actions[i].Dst), depth(actions[j].Dst)
		if di != dj {
			return di < dj
		}
		ti, tj := actions[i].Kind == model.ActionMkDir, actions[j].Kind == model.ActionMkDir
		if ti != tj {
			return ti
		}
		return actions[i].Dst < actions[j].Dst
	})
}

func depth(p string) int {
	p = strings.Trim(filepath.ToSlash(filepath.Clean(p)), "/")
	if p == "." || p == "" {
		return 0
	}
	return strings.Count(p, "/") + 1
}
