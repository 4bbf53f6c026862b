package scanner

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/printsweep/printsweep/internal/detectors"
	"github.com/printsweep/printsweep/internal/types"
)

// Options tunes the signatures the scanner looks for.
type Options struct {
	// Namespace replaces "console" as the receiver of the signatures.
	Namespace string
}

// Result is the outcome of scanning one text.
type Result struct {
	Text    string
	Removed int
	Lines   []types.RemovedLine
}

// Scanner strips statement-opening lines that match the selected categories.
// It holds no per-file state and is safe to reuse across files.
type Scanner struct {
	opts Options
}

// New returns a Scanner with the given options.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Scan runs a default Scanner over text.
func Scan(text string, cats []types.Category) Result {
	return New(Options{}).Scan(text, cats)
}

type pattern struct {
	category types.Category
	re       *regexp.Regexp
}

// PatternSet is the read-only list of signatures derived from a category
// selection.
type PatternSet struct {
	patterns []pattern
}

// NewPatternSet compiles one pattern per category. Categories must already
// be validated; unknown ones contribute nothing.
func NewPatternSet(cats []types.Category, namespace string) PatternSet {
	var ps PatternSet
	for _, c := range cats {
		re, err := detectors.Pattern(c, namespace)
		if err != nil {
			continue
		}
		ps.patterns = append(ps.patterns, pattern{category: c, re: re})
	}
	return ps
}

// Len reports how many patterns are in the set.
func (ps PatternSet) Len() int { return len(ps.patterns) }

// Match returns the first category whose signature opens trimmed.
func (ps PatternSet) Match(trimmed string) (types.Category, bool) {
	for _, p := range ps.patterns {
		if p.re.MatchString(trimmed) {
			return p.category, true
		}
	}
	return "", false
}

// Scan walks text once, line by line, and drops every code line whose
// trimmed form opens with a selected signature. Kept lines are emitted
// verbatim (a trailing "\r" included) and rejoined with "\n".
func (s *Scanner) Scan(text string, cats []types.Category) Result {
	ps := NewPatternSet(cats, s.opts.Namespace)
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	var res Result
	var st state
	for i, line := range lines {
		trimmed := trimLine(line)
		var kind LineKind
		st, kind = step(st, trimmed)
		if kind == KindCode {
			if c, ok := ps.Match(trimmed); ok {
				res.Removed++
				res.Lines = append(res.Lines, types.RemovedLine{Line: i + 1, Text: line, Category: c})
				continue
			}
		}
		kept = append(kept, line)
	}
	res.Text = strings.Join(kept, "\n")
	return res
}

// trimLine strips surrounding whitespace and a byte order mark, which editors
// leave at the start of the first line.
func trimLine(line string) string {
	return strings.TrimFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
