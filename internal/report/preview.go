package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fatih/color"
	"github.com/printsweep/printsweep/internal/types"
)

// PrintPreview lists every removed (or removable) line as "path:line" and
// the line itself, syntax highlighted unless opts.NoColor is set.
func PrintPreview(w io.Writer, results types.BatchResult, opts PrintOptions) {
	red := paint(opts, color.FgRed)
	for _, r := range results {
		for _, ln := range r.Lines {
			text := strings.TrimRight(ln.Text, "\r")
			if !opts.NoColor {
				text = highlightLine(text, r.Path)
			}
			fmt.Fprintf(w, "%s:%d %s %s\n", r.Path, ln.Line, red("-"), text)
		}
	}
}

func highlightLine(line, filename string) string {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}
	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
