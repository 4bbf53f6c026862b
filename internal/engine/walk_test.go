package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/printsweep/printsweep/internal/ignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

func rels(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover_SkipsDirsAndFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.js":                  "",
		"README.md":                 "",
		"src/app.TS":                "",
		"src/b/util.py":             "",
		"src/a/view.vue":            "",
		"node_modules/lib/index.js": "",
		".git/hooks/pre-commit.sh":  "",
		".vscode/tasks.js":          "",
		"dist/bundle.js":            "",
		"build/out.js":              "",
		"out/x.js":                  "",
		"distribution/keep.js":      "",
		"Makefile":                  "",
	})

	got, errs := Discover(context.Background(), Config{Root: dir})
	assert.Empty(t, errs)
	assert.Equal(t, []string{
		"index.js",
		"distribution/keep.js",
		"src/app.TS",
		"src/a/view.vue",
		"src/b/util.py",
	}, rels(t, dir, got))
}

func TestDiscover_ExtraExtensionsAndGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.js":          "",
		"b.mjs":         "",
		"lib/c.ts":      "",
		"lib/c.test.ts": "",
	})

	got, _ := Discover(context.Background(), Config{Root: dir, Extensions: []string{"MJS"}})
	assert.Equal(t, []string{"a.js", "b.mjs", "lib/c.test.ts", "lib/c.ts"}, rels(t, dir, got))

	got, _ = Discover(context.Background(), Config{Root: dir, IncludeGlobs: "lib/**"})
	assert.Equal(t, []string{"lib/c.test.ts", "lib/c.ts"}, rels(t, dir, got))

	got, _ = Discover(context.Background(), Config{Root: dir, ExcludeGlobs: "**/*.test.ts"})
	assert.Equal(t, []string{"a.js", "lib/c.ts"}, rels(t, dir, got))
}

func TestDiscover_IgnoreFileDefaultsAndMaxBytes(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		ignore.FileName:     "legacy/\nold.js\n",
		"legacy/a.js":       "",
		"old.js":            "",
		"app.js":            "console.log(1)",
		"big.js":            "console.log('this file is larger than the cap');",
		"vendor/v.js":       "",
		"assets/app.min.js": "",
	})

	got, _ := Discover(context.Background(), Config{Root: dir, MaxBytes: 20})
	assert.Equal(t, []string{"app.js", "assets/app.min.js", "vendor/v.js"}, rels(t, dir, got))

	got, _ = Discover(context.Background(), Config{Root: dir, DefaultExcludes: true})
	assert.Equal(t, []string{"app.js", "big.js"}, rels(t, dir, got))
}

func TestDiscover_UnreadableDirIsReported(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"ok/a.js": "", "locked/b.js": "", "z.js": ""})
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	got, errs := Discover(context.Background(), Config{Root: dir})
	assert.Equal(t, []string{"z.js", "ok/a.js"}, rels(t, dir, got))
	require.Len(t, errs, 1)
	var derr *DiscoveryError
	require.True(t, errors.As(errs[0], &derr))
	assert.Equal(t, locked, derr.Dir)
	assert.True(t, errors.Is(errs[0], os.ErrPermission))
}

func TestDiscover_MissingRoot(t *testing.T) {
	got, errs := Discover(context.Background(), Config{Root: filepath.Join(t.TempDir(), "nope")})
	assert.Empty(t, got)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], os.ErrNotExist))
}

func TestResolveTargets(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": "", "docs/readme.md": ""})

	tg, err := ResolveTargets(context.Background(), ScopeFile, filepath.Join(dir, "a.js"), Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.js")}, tg.Paths)

	_, err = ResolveTargets(context.Background(), ScopeFile, dir, Config{})
	assert.Error(t, err)

	tg, err = ResolveTargets(context.Background(), ScopeFolder, dir, Config{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.js"}, rels(t, dir, tg.Paths))

	_, err = ResolveTargets(context.Background(), ScopeFolder, filepath.Join(dir, "docs"), Config{})
	assert.ErrorIs(t, err, ErrNoTargets)
}

func TestResolveTargets_Changed(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	writeTree(t, dir, map[string]string{"a.js": "a()\n", "b.js": "b()\n", "notes.md": "x\n"})
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&gogit.AddOptions{All: true}))
	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	_, err = ResolveTargets(context.Background(), ScopeChanged, dir, Config{})
	assert.ErrorIs(t, err, ErrNoTargets)

	writeTree(t, dir, map[string]string{
		"a.js":                "console.log(1)\n",
		"notes.md":            "y\n",
		"src/new.ts":          "console.debug(2)\n",
		"node_modules/x/i.js": "console.log(3)\n",
	})
	tg, err := ResolveTargets(context.Background(), ScopeChanged, dir, Config{})
	require.NoError(t, err)
	root, _ := filepath.EvalSymlinks(tg.Root)
	want, _ := filepath.EvalSymlinks(dir)
	assert.Equal(t, want, root)
	assert.Equal(t, []string{"a.js", "src/new.ts"}, rels(t, tg.Root, tg.Paths))

	_, err = ResolveTargets(context.Background(), ScopeChanged, t.TempDir(), Config{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoTargets)
}

func TestParseAndInferScope(t *testing.T) {
	for in, want := range map[string]Scope{"file": ScopeFile, "Folder": ScopeFolder, "workspace": ScopeFolder, "changed": ScopeChanged} {
		got, err := ParseScope(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseScope("selection")
	assert.Error(t, err)

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.js": ""})
	assert.Equal(t, ScopeFile, InferScope(filepath.Join(dir, "a.js")))
	assert.Equal(t, ScopeFolder, InferScope(dir))
}

func TestSourceExtensions(t *testing.T) {
	exts := SourceExtensions()
	assert.Len(t, exts, 24)
	assert.Contains(t, exts, ".svelte")
	assert.Contains(t, exts, ".cmd")
}
