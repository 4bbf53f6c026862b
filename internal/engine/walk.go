package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/printsweep/printsweep/internal/git"
	"github.com/printsweep/printsweep/internal/ignore"
	"github.com/printsweep/printsweep/internal/logger"
)

// ErrNoTargets is returned when a scope resolves to no files. Hosts report
// it as information, not failure.
var ErrNoTargets = errors.New("no files found to process")

// Config controls which files discovery yields.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	Extensions      []string
	MaxBytes        int64
	DefaultExcludes bool
	Logger          *logger.Logger
}

// DiscoveryError reports a directory that could not be listed. Discovery
// carries on with the remaining directories.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string { return fmt.Sprintf("read dir %s: %v", e.Dir, e.Err) }
func (e *DiscoveryError) Unwrap() error { return e.Err }

// Scope selects how a target path is turned into a list of files.
type Scope string

const (
	ScopeFile    Scope = "file"
	ScopeFolder  Scope = "folder"
	ScopeChanged Scope = "changed"
)

// ParseScope accepts file, folder (or dir/workspace) and changed.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return ScopeFile, nil
	case "folder", "dir", "directory", "workspace":
		return ScopeFolder, nil
	case "changed", "git":
		return ScopeChanged, nil
	}
	return "", fmt.Errorf("unknown scope %q (want file, folder or changed)", s)
}

// InferScope picks ScopeFile for regular files and ScopeFolder otherwise.
func InferScope(target string) Scope {
	if st, err := os.Stat(target); err == nil && st.Mode().IsRegular() {
		return ScopeFile
	}
	return ScopeFolder
}

// Discover walks cfg.Root with an explicit stack of directories and returns
// the eligible files in depth-first lexical order. Directory read failures
// are returned as *DiscoveryError alongside the files that were found.
func Discover(ctx context.Context, cfg Config) ([]string, []error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	extra := extraExtensions(cfg.Extensions)

	var (
		out  []string
		errs []error
	)
	stack := []string{cfg.Root}
	for len(stack) > 0 {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			derr := &DiscoveryError{Dir: dir, Err: err}
			cfg.Logger.Warnf("skipping directory: %v", derr)
			errs = append(errs, derr)
			continue
		}
		var subdirs []string
		for _, e := range entries {
			p := filepath.Join(dir, e.Name())
			rel := relTo(cfg.Root, p)
			if e.IsDir() {
				if isSkippedDir(e.Name(), cfg.DefaultExcludes) || ign.Match(rel) {
					cfg.Logger.Tracef("skip dir %s", rel)
					continue
				}
				subdirs = append(subdirs, p)
				continue
			}
			if !e.Type().IsRegular() {
				continue
			}
			if eligible(rel, cfg, ign, extra) && withinSize(e, cfg.MaxBytes) {
				out = append(out, p)
			}
		}
		// reversed so the first subdirectory is popped first
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return out, errs
}

func eligible(rel string, cfg Config, ign ignore.Matcher, extra map[string]bool) bool {
	if !hasAllowedExt(rel, extra) {
		return false
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
		return false
	}
	if !allowedByGlobs(rel, cfg) {
		return false
	}
	return !ign.Match(rel)
}

func withinSize(e os.DirEntry, maxBytes int64) bool {
	if maxBytes <= 0 {
		return true
	}
	info, err := e.Info()
	if err != nil {
		return true
	}
	return info.Size() <= maxBytes
}

func relTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// Targets is the outcome of resolving a scope.
type Targets struct {
	Root   string
	Paths  []string
	Errors []error
}

// ResolveTargets turns (scope, target) into the list of files to process.
// An empty result yields ErrNoTargets.
func ResolveTargets(ctx context.Context, scope Scope, target string, cfg Config) (Targets, error) {
	if target == "" {
		target = "."
	}
	var t Targets
	switch scope {
	case ScopeFile:
		st, err := os.Stat(target)
		if err != nil {
			return t, fmt.Errorf("stat %s: %w", target, err)
		}
		if !st.Mode().IsRegular() {
			return t, fmt.Errorf("%s is not a regular file", target)
		}
		t.Root = filepath.Dir(target)
		t.Paths = []string{target}

	case ScopeFolder, "":
		cfg.Root = target
		t.Root = target
		t.Paths, t.Errors = Discover(ctx, cfg)

	case ScopeChanged:
		if !git.IsRepo(target) {
			return t, fmt.Errorf("%s is not inside a git worktree", target)
		}
		root, rels, err := git.ChangedFiles(target)
		if err != nil {
			return t, fmt.Errorf("list changed files: %w", err)
		}
		cfg.Root = root
		t.Root = root
		ign, _ := ignore.Load(filepath.Join(root, ignore.FileName))
		extra := extraExtensions(cfg.Extensions)
		for _, rel := range rels {
			if !eligible(rel, cfg, ign, extra) || underSkippedDir(rel, cfg.DefaultExcludes) {
				continue
			}
			p := filepath.Join(root, filepath.FromSlash(rel))
			st, err := os.Stat(p)
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
			if cfg.MaxBytes > 0 && st.Size() > cfg.MaxBytes {
				continue
			}
			t.Paths = append(t.Paths, p)
		}

	default:
		return t, fmt.Errorf("unknown scope %q", scope)
	}

	if len(t.Paths) == 0 {
		return t, ErrNoTargets
	}
	return t, nil
}

func underSkippedDir(rel string, defaults bool) bool {
	parts := strings.Split(rel, "/")
	for _, dir := range parts[:len(parts)-1] {
		if isSkippedDir(dir, defaults) {
			return true
		}
	}
	return false
}
