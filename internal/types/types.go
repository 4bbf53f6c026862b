package types

// Category names a family of debug-print statement signatures that can be
// selected for removal.
type Category string

const (
	CatLog   Category = "log"
	CatError Category = "error"
	CatWarn  Category = "warn"
	CatInfo  Category = "info"
	CatDebug Category = "debug"
	CatAll   Category = "all"
)

// RemovedLine records a single stripped line with its 1-based position in the
// original text.
type RemovedLine struct {
	Line     int      `json:"line" yaml:"line"`
	Text     string   `json:"text" yaml:"text"`
	Category Category `json:"category" yaml:"category"`
}

// FileResult is the outcome of processing one path. Errors is non-empty when
// the file could not be read or written; Skipped carries a reason when the
// file was deliberately left alone (binary content, for example).
type FileResult struct {
	Path    string        `json:"path" yaml:"path"`
	Removed int           `json:"removed" yaml:"removed"`
	Errors  []string      `json:"errors" yaml:"errors"`
	Skipped string        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Lines   []RemovedLine `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// BatchResult holds one FileResult per input path, in input order.
type BatchResult []FileResult

// Summary aggregates a BatchResult. It is always derived, never stored.
type Summary struct {
	FilesProcessed int `json:"files_processed" yaml:"files_processed"`
	FilesChanged   int `json:"files_changed" yaml:"files_changed"`
	TotalRemoved   int `json:"total_removed" yaml:"total_removed"`
	TotalErrors    int `json:"total_errors" yaml:"total_errors"`
}

// Summarize derives aggregate counts from the batch.
func Summarize(results BatchResult) Summary {
	s := Summary{FilesProcessed: len(results)}
	for _, r := range results {
		s.TotalRemoved += r.Removed
		s.TotalErrors += len(r.Errors)
		if r.Removed > 0 {
			s.FilesChanged++
		}
	}
	return s
}
