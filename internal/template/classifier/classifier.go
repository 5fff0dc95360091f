// Package classifier maps each walked source entry to a destination
// path and an action, per the naming convention and path-segment
// rendering rules.
package classifier

import (
	"path/filepath"
	"strings"

	"github.com/tacogips/ffizer/internal/debug"
	"github.com/tacogips/ffizer/internal/template/model"
)

// RenderSuffix marks a file whose content is rendered through the
// Render Engine; the suffix is stripped from the destination name.
const RenderSuffix = ".ffizer.hbs"

// RawSuffix marks a file copied verbatim; the suffix is stripped.
const RawSuffix = ".ffizer.raw"

// SegmentRenderer renders one path segment in lenient mode, rejecting
// segments that render to a string containing a path separator.
type SegmentRenderer interface {
	RenderSegment(name, segment string, scope map[string]string) (string, error)
}

// Classifier turns SourceEntries into Actions.
type Classifier struct {
	Renderer SegmentRenderer
}

// New returns a Classifier backed by renderer.
func New(renderer SegmentRenderer) *Classifier {
	return &Classifier{Renderer: renderer}
}

// Classify maps entry to zero or one Action (zero when the entry is
// dropped by an empty or conditional segment). origin is the
// traversal-order index of entry.Node, recorded for conflict resolution.
func (c *Classifier) Classify(entry model.SourceEntry, scope map[string]string, origin int) (*model.Action, error) {
	relDir, rawName := filepath.Split(entry.RelPath)

	destName := rawName
	action := model.ActionCopyRaw
	if entry.Kind == model.KindDir {
		action = model.ActionMkDir
	} else if strings.HasSuffix(rawName, RenderSuffix) {
		destName = strings.TrimSuffix(rawName, RenderSuffix)
		action = model.ActionCopyRender
	} else if strings.HasSuffix(rawName, RawSuffix) {
		destName = strings.TrimSuffix(rawName, RawSuffix)
		action = model.ActionCopyRaw
	}

	segments := splitSegments(relDir)
	if destName != "" {
		segments = append(segments, destName)
	}

	renderedSegments := make([]string, 0, len(segments))
	for i, seg := range segments {
		rendered, conditional, err := c.renderSegment(entry.RelPath, seg, scope)
		if err != nil {
			return nil, err
		}
		if rendered == "" {
			debug.Debug("[classify] dropping %s: segment %d rendered empty", entry.RelPath, i)
			return nil, nil
		}
		if conditional {
			debug.Debug("[classify] dropping %s: segment %d evaluated falsy", entry.RelPath, i)
			return nil, nil
		}
		renderedSegments = append(renderedSegments, rendered)
	}

	dst := filepath.Join(renderedSegments...)

	return &model.Action{
		Kind:   action,
		Src:    filepath.Join(entry.Node.ContentRoot, entry.RelPath),
		Dst:    dst,
		Origin: origin,
	}, nil
}

// renderSegment renders one raw path segment (which may begin with a
// literal "-" marking it conditional) and reports whether it was
// dropped by the conditional marker.
func (c *Classifier) renderSegment(entryPath, seg string, scope map[string]string) (rendered string, droppedByCondition bool, err error) {
	conditional := strings.HasPrefix(seg, "-")
	toRender := seg
	if conditional {
		toRender = strings.TrimPrefix(seg, "-")
	}

	out, err := c.Renderer.RenderSegment(entryPath, toRender, scope)
	if err != nil {
		return "", false, &Error{Path: entryPath, Message: "failed to render path segment", Cause: err}
	}

	if conditional && out == "" {
		return "", true, nil
	}
	return out, false, nil
}

func splitSegments(dir string) []string {
	dir = strings.Trim(filepath.ToSlash(dir), "/")
	if dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
