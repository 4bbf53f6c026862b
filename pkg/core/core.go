package core

import (
	"context"

	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/printsweep/printsweep/internal/engine"
	"github.com/printsweep/printsweep/internal/scanner"
	"github.com/printsweep/printsweep/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Category    = types.Category
	FileResult  = types.FileResult
	BatchResult = types.BatchResult
	Summary     = types.Summary
	RemovedLine = types.RemovedLine
	Config      = engine.Config
	Options     = engine.Options
	ScanResult  = scanner.Result
)

const (
	CatLog   = types.CatLog
	CatError = types.CatError
	CatWarn  = types.CatWarn
	CatInfo  = types.CatInfo
	CatDebug = types.CatDebug
	CatAll   = types.CatAll
)

var (
	ErrNoTargets       = engine.ErrNoTargets
	ErrUnknownCategory = detectors.ErrUnknownCategory
)

// Scan strips matching lines from text. It never fails; unknown categories
// contribute no pattern.
func Scan(text string, cats []Category) ScanResult {
	return scanner.Scan(text, cats)
}

// ProcessAll strips matching lines from each file, isolating per-file
// failures in the returned results.
func ProcessAll(ctx context.Context, paths []string, cats []Category, opts Options) BatchResult {
	return engine.ProcessAll(ctx, paths, cats, opts)
}

// Discover lists the eligible source files under cfg.Root.
func Discover(ctx context.Context, cfg Config) ([]string, []error) {
	return engine.Discover(ctx, cfg)
}

// Summarize derives aggregate counts from results.
func Summarize(results BatchResult) Summary { return types.Summarize(results) }

// Categories returns the available category names.
func Categories() []string { return detectors.IDs() }

// ParseCategories validates names such as "log" or "console.warn".
func ParseCategories(names []string) ([]Category, error) {
	return detectors.ParseCategories(names)
}
