// Package source implements the template-source resolver: turning a
// TemplateSource (a local directory or a git revision) into a readable
// directory on disk, with an on-disk cache for git sources.
package source

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/tacogips/ffizer/internal/debug"
	"github.com/tacogips/ffizer/internal/template/model"
)

// CredentialCallback supplies git credentials (ssh agent, credential
// helper, interactive prompt) when set on Locator.Credentials; nothing in
// this module sets one. The locator itself never prompts.
type CredentialCallback func(uri string) (Credential, error)

// Credential carries environment overrides applied to the git subprocess
// (e.g. GIT_SSH_COMMAND, GIT_ASKPASS).
type Credential struct {
	Env []string
}

// Locator resolves TemplateSources to directories on disk.
type Locator struct {
	// CacheRoot is the root of the git cache, e.g. <user-cache>/ffizer/git.
	CacheRoot string
	// Offline, if true, forbids network access: a cache miss is fatal.
	Offline bool
	// Credentials supplies per-URI git credentials; may be nil.
	Credentials CredentialCallback
	// GitTimeout bounds clone/fetch subprocess duration; zero means no timeout.
	GitTimeout time.Duration
}

// NewLocator returns a Locator with the given cache root.
func NewLocator(cacheRoot string) *Locator {
	return &Locator{CacheRoot: cacheRoot}
}

// Resolve turns src into an absolute, existing directory. The caller
// must not mutate the returned path's contents for a local source.
func (l *Locator) Resolve(ctx context.Context, src model.TemplateSource) (string, error) {
	var root string
	var err error
	if src.IsLocal() {
		root, err = l.resolveLocal(src)
	} else {
		root, err = l.resolveGit(ctx, src)
	}
	if err != nil {
		return "", err
	}

	if src.Subfolder == "" {
		return root, nil
	}
	joined := filepath.Join(root, src.Subfolder)
	info, statErr := os.Stat(joined)
	if statErr != nil || !info.IsDir() {
		return "", newError(SubfolderMissing, src.String(),
			fmt.Sprintf("subfolder %q not found under resolved source", src.Subfolder), statErr)
	}
	return joined, nil
}

func (l *Locator) resolveLocal(src model.TemplateSource) (string, error) {
	debug.Debug("[source] resolving local path: %s", src.Path)
	abs, err := filepath.Abs(src.Path)
	if err != nil {
		return "", newError(SourceNotFound, src.Path, "failed to make path absolute", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", newError(SourceNotFound, src.Path, "local path does not exist", err)
	}
	if !info.IsDir() {
		return "", newError(SourceNotFound, src.Path, "local path is not a directory", nil)
	}
	return abs, nil
}

// cacheKey returns the cache directory for a git source: CacheRoot / sha1(uri) / rev.
func (l *Locator) cacheKey(src model.TemplateSource) string {
	rev := src.Rev
	if rev == "" {
		rev = "master"
	}
	sum := sha1.Sum([]byte(src.URI))
	return filepath.Join(l.CacheRoot, hex.EncodeToString(sum[:]), rev)
}

func (l *Locator) resolveGit(ctx context.Context, src model.TemplateSource) (string, error) {
	dir := l.cacheKey(src)
	debug.DebugValue("[source] git cache entry", dir)

	unlock, err := lockCacheEntry(dir)
	if err != nil {
		return "", newError(GitFailure, src.URI, "failed to lock cache entry", err)
	}
	defer unlock()

	exists := dirNonEmpty(dir)

	if l.Offline {
		if !exists {
			return "", newError(GitFailure, src.URI, "offline mode and no cached clone for this revision", nil)
		}
		debug.Debug("[source] offline mode: reusing cache at %s", dir)
		return dir, nil
	}

	env := l.credentialEnv(src.URI)
	fetchErr := l.cloneOrFetch(ctx, src, dir, env)
	if fetchErr != nil {
		if exists {
			debug.Debug("[source] network fetch failed (%v); falling back to cache at %s", fetchErr, dir)
			return dir, nil
		}
		return "", newError(GitFailure, src.URI, "clone/fetch failed and no cache available", fetchErr)
	}
	return dir, nil
}

func (l *Locator) credentialEnv(uri string) []string {
	if l.Credentials == nil {
		return nil
	}
	cred, err := l.Credentials(uri)
	if err != nil {
		debug.Debug("[source] credential callback failed for %s: %v", uri, err)
		return nil
	}
	return cred.Env
}

func (l *Locator) cloneOrFetch(ctx context.Context, src model.TemplateSource, dir string, env []string) error {
	if l.GitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.GitTimeout)
		defer cancel()
	}

	rev := src.Rev
	if rev == "" {
		rev = "master"
	}

	if !dirNonEmpty(dir) {
		if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
			return err
		}
		debug.Debug("[source] cloning %s into %s", src.URI, dir)
		cmd := exec.CommandContext(ctx, "git", "clone", "--quiet", src.URI, dir)
		cmd.Env = append(os.Environ(), env...)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git clone failed: %w: %s", err, out)
		}
	} else {
		debug.Debug("[source] fetching updates for %s in %s", src.URI, dir)
		cmd := exec.CommandContext(ctx, "git", "-C", dir, "fetch", "--quiet", "origin", rev)
		cmd.Env = append(os.Environ(), env...)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git fetch failed: %w: %s", err, out)
		}
	}

	checkoutTarget := rev
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "checkout", "--quiet", checkoutTarget)
	cmd.Env = append(os.Environ(), env...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git checkout %s failed: %w: %s", rev, err, out)
	}
	return nil
}

func dirNonEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
