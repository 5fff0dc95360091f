// Package loader implements the template loader: parsing .ffizer.yaml
// and recursively resolving the import tree into a TemplateNode.
package loader

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tacogips/ffizer/internal/debug"
	"github.com/tacogips/ffizer/internal/template/model"
)

// ConfigFileName is the per-template metadata file name.
const ConfigFileName = ".ffizer.yaml"

// ContentDirName is the conventional content subdirectory when
// use_template_dir is set.
const ContentDirName = "template"

// SourceResolver resolves a TemplateSource to a directory on disk; it is
// satisfied by *source.Locator.
type SourceResolver interface {
	Resolve(ctx context.Context, src model.TemplateSource) (string, error)
}

// Loader loads a TemplateNode tree.
type Loader struct {
	Resolver SourceResolver
}

// New returns a Loader backed by resolver.
func New(resolver SourceResolver) *Loader {
	return &Loader{Resolver: resolver}
}

// Load resolves src and recursively loads its import tree.
func (l *Loader) Load(ctx context.Context, src model.TemplateSource) (*model.TemplateNode, error) {
	return l.load(ctx, src, map[string]bool{})
}

func (l *Loader) load(ctx context.Context, src model.TemplateSource, ancestors map[string]bool) (*model.TemplateNode, error) {
	identity := src.Identity()
	if ancestors[identity] {
		return nil, newError(ImportCycle, src.String(), "import cycle detected", nil)
	}

	root, err := l.Resolver.Resolve(ctx, src)
	if err != nil {
		return nil, err
	}
	debug.DebugValue("[loader] resolved root", root)

	cfg, err := parseConfig(filepath.Join(root, ConfigFileName))
	if err != nil {
		return nil, err
	}

	contentRoot := root
	if cfg.UseTemplateDir {
		contentRoot = filepath.Join(root, ContentDirName)
	}

	node := &model.TemplateNode{
		Source:      src,
		RootDir:     root,
		ContentRoot: contentRoot,
		Config:      *cfg,
	}

	childAncestors := make(map[string]bool, len(ancestors)+1)
	for k := range ancestors {
		childAncestors[k] = true
	}
	childAncestors[identity] = true

	for _, imp := range cfg.Imports {
		rev := imp.Rev
		if rev == "" {
			rev = "master"
		}
		childSrc := model.TemplateSource{URI: imp.URI, Rev: rev, Subfolder: imp.Subfolder}
		debug.Debug("[loader] loading import %s", childSrc.String())
		child, err := l.load(ctx, childSrc, childAncestors)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	return node, nil
}

// parseConfig reads and parses .ffizer.yaml. A missing file yields empty
// metadata; an empty file yields empty metadata; malformed YAML is fatal.
func parseConfig(path string) (*model.TemplateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.TemplateConfig{}, nil
		}
		return nil, newError(ConfigParseError, path, "failed to read config file", err)
	}
	if len(data) == 0 {
		return &model.TemplateConfig{}, nil
	}

	var cfg model.TemplateConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, newError(ConfigParseError, path, "malformed "+ConfigFileName, err)
	}
	return &cfg, nil
}
