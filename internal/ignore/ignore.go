package ignore

import (
	"bufio"
	"io"
	"os"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the per-root ignore file read during discovery.
const FileName = ".printsweepignore"

type rule struct {
	source string
	globs  []string
	negate bool
}

// Matcher applies gitignore-style patterns to slash-separated paths relative
// to the root. The zero value matches nothing.
type Matcher struct {
	rules []rule
}

// Load reads patterns from path. On error the returned Matcher is still
// usable and matches nothing.
func Load(path string) (Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads one pattern per line. Blank lines and lines starting with '#'
// are skipped; a leading '!' re-includes paths matched by earlier patterns.
func Parse(r io.Reader) (Matcher, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Matcher{}, err
	}
	return FromLines(lines), nil
}

// FromLines builds a Matcher from already split pattern lines.
func FromLines(lines []string) Matcher {
	var m Matcher
	for _, ln := range lines {
		p := strings.TrimSpace(ln)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		r := rule{source: p}
		if strings.HasPrefix(p, "!") {
			r.negate = true
			p = strings.TrimPrefix(p, "!")
		}
		r.globs = expand(p)
		if len(r.globs) > 0 {
			m.rules = append(m.rules, r)
		}
	}
	return m
}

// expand turns one ignore pattern into the doublestar globs it stands for.
func expand(p string) []string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimSuffix(p, "/")
	anchored := strings.HasPrefix(p, "/")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	if !anchored && !strings.Contains(p, "/") {
		p = "**/" + p
	}
	// a match on a directory covers everything below it
	return []string{p, p + "/**"}
}

// Match reports whether rel (relative to the root) is ignored. The last
// matching pattern decides.
func (m Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "./")
	ignored := false
	for _, r := range m.rules {
		for _, g := range r.globs {
			if ok, _ := doublestar.Match(g, rel); ok {
				ignored = !r.negate
				break
			}
		}
	}
	return ignored
}

// Patterns returns the effective patterns as written, in file order.
func (m Matcher) Patterns() []string {
	out := make([]string, 0, len(m.rules))
	for _, r := range m.rules {
		out = append(out, r.source)
	}
	return out
}

// Empty reports whether the matcher has no patterns.
func (m Matcher) Empty() bool { return len(m.rules) == 0 }
