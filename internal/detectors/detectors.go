package detectors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/printsweep/printsweep/internal/types"
)

// DefaultNamespace is the receiver the statement signatures are anchored on.
const DefaultNamespace = "console"

// ErrUnknownCategory is returned when a category name is not one of IDs().
var ErrUnknownCategory = errors.New("unknown category")

// Signature lists the methods a category removes.
type Signature struct {
	Category types.Category
	Methods  []string
}

// all is the closed category table. CatAll carries its own method list and
// is not the union of the others.
var all = []Signature{
	{Category: types.CatLog, Methods: []string{"log"}},
	{Category: types.CatError, Methods: []string{"error"}},
	{Category: types.CatWarn, Methods: []string{"warn"}},
	{Category: types.CatInfo, Methods: []string{"info"}},
	{Category: types.CatDebug, Methods: []string{"debug"}},
	{Category: types.CatAll, Methods: []string{
		"log", "error", "warn", "info", "debug", "trace", "dir", "table",
		"group", "groupEnd", "time", "timeEnd", "count", "countReset", "assert", "clear",
	}},
}

// IDs returns the category names in display order.
func IDs() []string {
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, string(s.Category))
	}
	return out
}

// Signatures returns a copy of the category table.
func Signatures() []Signature {
	out := make([]Signature, len(all))
	for i, s := range all {
		out[i] = Signature{Category: s.Category, Methods: append([]string(nil), s.Methods...)}
	}
	return out
}

// Methods returns the methods matched by c, or nil for an unknown category.
func Methods(c types.Category) []string {
	for _, s := range all {
		if s.Category == c {
			return append([]string(nil), s.Methods...)
		}
	}
	return nil
}

// DefaultCategories is the preselected set offered for a custom selection.
func DefaultCategories() []types.Category {
	return []types.Category{types.CatLog, types.CatError, types.CatWarn}
}

// ParseCategory accepts a category ID ("log") or its statement form
// ("console.log"), case-insensitively.
func ParseCategory(s string) (types.Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, DefaultNamespace+".")
	for _, sig := range all {
		if string(sig.Category) == name {
			return sig.Category, nil
		}
	}
	return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownCategory, s, strings.Join(IDs(), ", "))
}

// ParseCategories parses a list of names, each of which may itself be a
// comma-separated list. Duplicates are dropped; first occurrence wins. A list
// that names no category at all is rejected.
func ParseCategories(names []string) ([]types.Category, error) {
	var out []types.Category
	seen := map[types.Category]bool{}
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			c, err := ParseCategory(part)
			if err != nil {
				return nil, err
			}
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: none selected (available: %s)", ErrUnknownCategory, strings.Join(IDs(), ", "))
	}
	return out, nil
}

// Pattern compiles the anchored signature for c on the given namespace. The
// statement must open the line: only leading whitespace may precede it, and
// whitespace may separate the method from its opening parenthesis.
func Pattern(c types.Category, namespace string) (*regexp.Regexp, error) {
	methods := Methods(c)
	if methods == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	quoted := make([]string, len(methods))
	for i, m := range methods {
		quoted[i] = regexp.QuoteMeta(m)
	}
	expr := `^\s*` + regexp.QuoteMeta(namespace) + `\.(?:` + strings.Join(quoted, "|") + `)\s*\(`
	return regexp.Compile(expr)
}
