package report

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/printsweep/printsweep/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	DryRun   bool
	Duration time.Duration
}

const noneRemoved = "No print statements found to remove."

// Headline is the one-line outcome of a run.
func Headline(results types.BatchResult) string {
	s := types.Summarize(results)
	if s.TotalRemoved == 0 {
		return noneRemoved
	}
	msg := fmt.Sprintf("Processed %d file(s). Removed %d console statement(s).", s.FilesProcessed, s.TotalRemoved)
	if s.TotalErrors > 0 {
		msg += fmt.Sprintf(" %d error(s) occurred.", s.TotalErrors)
	}
	return msg
}

func paint(opts PrintOptions, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if opts.NoColor {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// PrintText writes one block per file followed by a summary block.
func PrintText(w io.Writer, results types.BatchResult, opts PrintOptions) {
	bold := paint(opts, color.Bold)
	green := paint(opts, color.FgGreen)
	red := paint(opts, color.FgRed)
	dim := paint(opts, color.FgHiBlack)

	verb := "Removed"
	if opts.DryRun {
		verb = "Would remove"
	}

	fmt.Fprintln(w, bold("=== printsweep results ==="))
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "File: %s\n", filepath.Base(r.Path))
		fmt.Fprintf(w, "Path: %s\n", r.Path)
		n := fmt.Sprint(r.Removed)
		if r.Removed > 0 {
			n = green(n)
		}
		fmt.Fprintf(w, "%s: %s console statement(s)\n", verb, n)
		if r.Skipped != "" {
			fmt.Fprintf(w, "Skipped: %s\n", dim(r.Skipped))
		}
		if len(r.Errors) > 0 {
			fmt.Fprintln(w, "Errors:")
			for _, e := range r.Errors {
				fmt.Fprintf(w, "  - %s\n", red(e))
			}
		}
		fmt.Fprintln(w)
	}
	PrintSummary(w, results, opts)
}

// PrintSummary writes the totals block.
func PrintSummary(w io.Writer, results types.BatchResult, opts PrintOptions) {
	s := types.Summarize(results)
	fmt.Fprintln(w, "=== Summary ===")
	fmt.Fprintf(w, "Total files processed: %d\n", s.FilesProcessed)
	if opts.DryRun {
		fmt.Fprintf(w, "Total print statements removable: %d\n", s.TotalRemoved)
	} else {
		fmt.Fprintf(w, "Total print statements removed: %d\n", s.TotalRemoved)
	}
	fmt.Fprintf(w, "Total errors: %d\n", s.TotalErrors)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// PrintTable renders files that were changed, skipped or failed as a table.
// Untouched files are only counted in the footer.
func PrintTable(w io.Writer, results types.BatchResult, opts PrintOptions) error {
	var rows [][]string
	for _, r := range results {
		status := "ok"
		switch {
		case len(r.Errors) > 0:
			status = "error: " + r.Errors[0]
		case r.Skipped != "":
			status = "skipped: " + r.Skipped
		case r.Removed == 0:
			continue
		case opts.DryRun:
			status = "would change"
		default:
			status = "changed"
		}
		rows = append(rows, []string{r.Path, fmt.Sprint(r.Removed), status})
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, noneRemoved)
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("FILE", "REMOVED", "STATUS")
		for _, row := range rows {
			if err := table.Append(row); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	PrintSummary(w, results, opts)
	return nil
}

// ShouldFail reports whether a check run found anything to strip or hit an
// error.
func ShouldFail(results types.BatchResult) bool {
	s := types.Summarize(results)
	return s.TotalRemoved > 0 || s.TotalErrors > 0
}
