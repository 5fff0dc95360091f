package model

import "fmt"

// TemplateSource is an abstract origin for a template: either a local
// directory or a git triple (uri, revision, subfolder).
type TemplateSource struct {
	// Path is set for a local directory source; mutually exclusive with URI.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	// URI is the git remote for a git-hosted source.
	URI string `yaml:"uri,omitempty" json:"uri,omitempty"`
	// Rev is the branch, tag, or commit to resolve; defaults to "master".
	Rev string `yaml:"rev,omitempty" json:"rev,omitempty"`
	// Subfolder is joined onto the resolved root, if present.
	Subfolder string `yaml:"subfolder,omitempty" json:"subfolder,omitempty"`
}

// IsLocal reports whether this source names a local directory.
func (s TemplateSource) IsLocal() bool {
	return s.Path != "" && s.URI == ""
}

// Identity is the canonical key used for ancestor-chain cycle detection:
// two sources are the same node for cycle purposes iff their identity
// strings match.
func (s TemplateSource) Identity() string {
	if s.IsLocal() {
		return "local:" + s.Path
	}
	rev := s.Rev
	if rev == "" {
		rev = "master"
	}
	return fmt.Sprintf("git:%s@%s#%s", s.URI, rev, s.Subfolder)
}

func (s TemplateSource) String() string {
	if s.IsLocal() {
		return s.Path
	}
	return s.Identity()
}
