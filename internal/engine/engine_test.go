package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/printsweep/printsweep/internal/cache"
	"github.com/printsweep/printsweep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFS struct {
	files    map[string]string
	readErr  map[string]error
	writeErr map[string]error
	writes   []string
}

func newMemFS(files map[string]string) *memFS {
	return &memFS{files: files, readErr: map[string]error{}, writeErr: map[string]error{}}
}

func (m *memFS) ReadFile(p string) ([]byte, error) {
	if err := m.readErr[p]; err != nil {
		return nil, err
	}
	s, ok := m.files[p]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(s), nil
}

func (m *memFS) WriteFile(p string, data []byte) error {
	if err := m.writeErr[p]; err != nil {
		return err
	}
	m.writes = append(m.writes, p)
	m.files[p] = string(data)
	return nil
}

var logOnly = []types.Category{types.CatLog}

func TestProcessAll_IsolatesFailures(t *testing.T) {
	fs := newMemFS(map[string]string{
		"a.js": "console.log(1);\nx();",
		"c.js": "console.log(3);\nconsole.log(4);\ny();",
	})
	fs.readErr["b.js"] = errors.New("permission denied")

	var progress []string
	res := ProcessAll(context.Background(), []string{"a.js", "b.js", "c.js"}, logOnly, Options{
		FS:       fs,
		Progress: func(i, n int, name string) { progress = append(progress, name) },
	})

	require.Len(t, res, 3)
	assert.Equal(t, types.FileResult{Path: "a.js", Removed: 1, Lines: []types.RemovedLine{{Line: 1, Text: "console.log(1);", Category: types.CatLog}}}, res[0])
	assert.Equal(t, "b.js", res[1].Path)
	assert.Equal(t, 0, res[1].Removed)
	assert.Equal(t, []string{"Error processing file: permission denied"}, res[1].Errors)
	assert.Equal(t, 2, res[2].Removed)
	assert.Empty(t, res[2].Errors)

	assert.Equal(t, []string{"a.js", "b.js", "c.js"}, progress)
	assert.Equal(t, "x();", fs.files["a.js"])
	assert.Equal(t, "y();", fs.files["c.js"])

	sum := types.Summarize(res)
	assert.Equal(t, 3, sum.FilesProcessed)
	assert.Equal(t, 3, sum.TotalRemoved)
	assert.Equal(t, 1, sum.TotalErrors)
}

func TestProcessAll_NoWriteWhenNothingRemoved(t *testing.T) {
	fs := newMemFS(map[string]string{"a.js": "// console.log(1)\nfoo();\n"})
	res := ProcessAll(context.Background(), []string{"a.js"}, logOnly, Options{FS: fs})
	require.Len(t, res, 1)
	assert.Equal(t, 0, res[0].Removed)
	assert.Empty(t, fs.writes)
}

func TestProcessAll_WriteFailure(t *testing.T) {
	fs := newMemFS(map[string]string{"a.js": "console.log(1);"})
	fs.writeErr["a.js"] = errors.New("read-only file system")
	res := ProcessAll(context.Background(), []string{"a.js"}, logOnly, Options{FS: fs})
	require.Len(t, res, 1)
	assert.Equal(t, 0, res[0].Removed)
	assert.Equal(t, []string{"Error processing file: read-only file system"}, res[0].Errors)
	assert.Equal(t, "console.log(1);", fs.files["a.js"])
}

func TestProcessAll_DryRun(t *testing.T) {
	fs := newMemFS(map[string]string{"a.js": "console.log(1);\nconsole.warn(2);"})
	res := ProcessAll(context.Background(), []string{"a.js"}, []types.Category{types.CatLog, types.CatWarn}, Options{FS: fs, DryRun: true})
	assert.Equal(t, 2, res[0].Removed)
	assert.Len(t, res[0].Lines, 2)
	assert.Empty(t, fs.writes)
}

func TestProcessAll_EmptyBatch(t *testing.T) {
	res := ProcessAll(context.Background(), nil, logOnly, Options{FS: newMemFS(nil)})
	assert.Empty(t, res)
	assert.Equal(t, types.Summary{}, types.Summarize(res))
}

func TestProcessAll_CancelledBetweenFiles(t *testing.T) {
	fs := newMemFS(map[string]string{"a.js": "console.log(1);", "b.js": "console.log(2);"})
	ctx, cancel := context.WithCancel(context.Background())
	res := ProcessAll(ctx, []string{"a.js", "b.js"}, logOnly, Options{
		FS: fs,
		Progress: func(i, _ int, _ string) {
			if i == 1 {
				cancel()
			}
		},
	})
	require.Len(t, res, 1)
	assert.Equal(t, "a.js", res[0].Path)
	assert.Equal(t, "console.log(2);", fs.files["b.js"])
}

func TestProcessAll_SkipsBinary(t *testing.T) {
	fs := newMemFS(map[string]string{"logo.js": "console.log(1);\x00\x01\x02"})
	res := ProcessAll(context.Background(), []string{"logo.js"}, logOnly, Options{FS: fs})
	require.Len(t, res, 1)
	assert.Equal(t, skippedBinary, res[0].Skipped)
	assert.Equal(t, 0, res[0].Removed)
	assert.Empty(t, res[0].Errors)
	assert.Empty(t, fs.writes)
}

func TestProcessAll_ControlBytesAreText(t *testing.T) {
	fs := newMemFS(map[string]string{
		"a.js": "console.log('x');\nconst vt = '\x0b';\n",
		"b.js": "console.log(1);\n\x1a",
	})
	res := ProcessAll(context.Background(), []string{"a.js", "b.js"}, logOnly, Options{FS: fs})
	require.Len(t, res, 2)
	for _, r := range res {
		assert.Empty(t, r.Skipped, r.Path)
		assert.Equal(t, 1, r.Removed, r.Path)
	}
	assert.Equal(t, "const vt = '\x0b';\n", fs.files["a.js"])
	assert.Equal(t, "\x1a", fs.files["b.js"])
}

func TestProcessAll_CacheSkipsUnchanged(t *testing.T) {
	fs := newMemFS(map[string]string{"a.js": "console.log(1);\nx();"})
	db := cache.New()
	opts := Options{FS: fs, Cache: &db}

	res := ProcessAll(context.Background(), []string{"a.js"}, logOnly, opts)
	assert.Equal(t, 1, res[0].Removed)
	assert.Len(t, db.Entries, 1)

	// content now equals the recorded hash; a new log line invalidates it
	res = ProcessAll(context.Background(), []string{"a.js"}, logOnly, opts)
	assert.Equal(t, 0, res[0].Removed)
	assert.Len(t, fs.writes, 1)

	fs.files["a.js"] = "x();\nconsole.log(2);"
	res = ProcessAll(context.Background(), []string{"a.js"}, logOnly, opts)
	assert.Equal(t, 1, res[0].Removed)

	// another category selection has its own entries
	fs.files["a.js"] = "x();\nconsole.warn(3);"
	res = ProcessAll(context.Background(), []string{"a.js"}, []types.Category{types.CatWarn}, opts)
	assert.Equal(t, 1, res[0].Removed)
}

func TestProcessAll_OnDisk(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "app.ts")
	require.NoError(t, os.WriteFile(p, []byte("function f() {\n  console.debug('x');\n  return 1;\n}\n"), 0644))

	res := ProcessAll(context.Background(), []string{p, filepath.Join(dir, "missing.ts")}, []types.Category{types.CatDebug}, Options{})
	require.Len(t, res, 2)
	assert.Equal(t, 1, res[0].Removed)
	require.Len(t, res[1].Errors, 1)
	assert.Contains(t, res[1].Errors[0], "Error processing file: ")

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "function f() {\n  return 1;\n}\n", string(b))
}

func TestLooksBinary(t *testing.T) {
	assert.False(t, looksBinary(nil))
	assert.False(t, looksBinary([]byte("const a = 1;\n")))
	assert.False(t, looksBinary([]byte("<html><body><script>console.log(1)</script></body></html>")))
	assert.False(t, looksBinary([]byte("#!/bin/sh\necho hi\n")))
	assert.False(t, looksBinary([]byte("const vt = '\x0b';\n")))
	assert.False(t, looksBinary([]byte("@echo off\r\necho hi\r\n\x1a")))
	assert.True(t, looksBinary([]byte("abc\x00def")))
	assert.True(t, looksBinary([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")))
}
