package engine

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/printsweep/printsweep/internal/cache"
	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/printsweep/printsweep/internal/files"
	"github.com/printsweep/printsweep/internal/logger"
	"github.com/printsweep/printsweep/internal/scanner"
	"github.com/printsweep/printsweep/internal/types"
)

// FS is the file capability the batch processor needs.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// ProgressFunc is told about each file before it is processed. index is
// 1-based.
type ProgressFunc func(index, total int, name string)

// Options tunes ProcessAll. The zero value reads and writes the local disk.
type Options struct {
	FS        FS
	Progress  ProgressFunc
	DryRun    bool
	Namespace string
	Logger    *logger.Logger

	// Cache, when set, lets files whose content is unchanged since a
	// previous run under the same categories skip the scan. CacheRoot makes
	// cache keys relative so the cache survives moving the tree.
	Cache     *cache.DB
	CacheRoot string
}

const skippedBinary = "binary content"

// ProcessAll strips matching lines from each path in order. A failure on
// one file is recorded in its FileResult and does not stop the batch. A file
// is written only when at least one line was removed. ctx is checked between
// files; paths not reached are not reported.
func ProcessAll(ctx context.Context, paths []string, cats []types.Category, opts Options) types.BatchResult {
	if ctx == nil {
		ctx = context.Background()
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = files.OS{}
	}
	scn := scanner.New(scanner.Options{Namespace: opts.Namespace})

	results := make(types.BatchResult, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			opts.Logger.Infof("stopped after %d of %d files: %v", i, len(paths), err)
			break
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths), filepath.Base(p))
		}
		results = append(results, processFile(fsys, scn, p, cats, opts))
	}
	return results
}

func processFile(fsys FS, scn *scanner.Scanner, path string, cats []types.Category, opts Options) types.FileResult {
	res := types.FileResult{Path: path}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return failed(res, err, opts.Logger)
	}
	if looksBinary(data) {
		opts.Logger.Debugf("skip %s: %s", path, skippedBinary)
		res.Skipped = skippedBinary
		return res
	}

	key := ""
	if opts.Cache != nil {
		key = cache.Key(cacheRel(opts.CacheRoot, path), cats, namespaceOf(opts))
		if opts.Cache.Fresh(key, data) {
			opts.Logger.Tracef("unchanged since last run: %s", path)
			return res
		}
	}

	out := scn.Scan(string(data), cats)
	res.Removed = out.Removed
	res.Lines = out.Lines
	if out.Removed == 0 {
		if key != "" {
			opts.Cache.Record(key, data)
		}
		return res
	}
	if opts.DryRun {
		return res
	}
	if err := fsys.WriteFile(path, []byte(out.Text)); err != nil {
		return failed(types.FileResult{Path: path}, err, opts.Logger)
	}
	opts.Logger.Debugf("removed %d line(s) from %s", out.Removed, path)
	if key != "" {
		opts.Cache.Record(key, []byte(out.Text))
	}
	return res
}

func failed(res types.FileResult, err error, log *logger.Logger) types.FileResult {
	log.Warnf("%s: %v", res.Path, err)
	res.Removed = 0
	res.Lines = nil
	res.Errors = append(res.Errors, "Error processing file: "+err.Error())
	return res
}

func namespaceOf(opts Options) string {
	if opts.Namespace == "" {
		return detectors.DefaultNamespace
	}
	return opts.Namespace
}

func cacheRel(root, p string) string {
	if root == "" {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if absRoot, err := filepath.Abs(root); err == nil {
		root = absRoot
	}
	return relTo(root, p)
}

// looksBinary reports content that should not be treated as source: a NUL
// byte near the start, unless the sniffed type is still textual (UTF-16
// text, for example). Other control bytes such as \v or a trailing DOS
// EOF do not make a file binary.
func looksBinary(b []byte) bool {
	head := b
	if len(head) > 8000 {
		head = head[:8000]
	}
	if bytes.IndexByte(head, 0) < 0 {
		return false
	}
	for mt := mimetype.Detect(b); mt != nil; mt = mt.Parent() {
		if strings.HasPrefix(mt.String(), "text/") {
			return false
		}
	}
	return true
}
