package scanner

import "strings"

// LineKind is the classification the scanner assigns to a line before any
// signature is tested against it.
type LineKind int

const (
	KindBlank LineKind = iota
	KindBlockOpen
	KindBlockClose
	KindBlockBody
	KindComment
	KindCode
)

func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindBlockOpen:
		return "block-open"
	case KindBlockClose:
		return "block-close"
	case KindBlockBody:
		return "block-body"
	case KindComment:
		return "comment"
	default:
		return "code"
	}
}

// state is threaded through one file's lines and discarded afterwards.
type state struct {
	inBlockComment bool
}

// step classifies one trimmed line and returns the state for the next line.
//
// The closer check runs before the in-block check and regardless of whether
// a block is open, so any line containing "*/" (a string literal included)
// ends block mode. A line that opens with "/*" enters block mode even when it
// closes on the same line.
func step(st state, trimmed string) (state, LineKind) {
	switch {
	case trimmed == "":
		return st, KindBlank
	case strings.HasPrefix(trimmed, "/*"):
		return state{inBlockComment: true}, KindBlockOpen
	case strings.Contains(trimmed, "*/"):
		return state{inBlockComment: false}, KindBlockClose
	case st.inBlockComment:
		return st, KindBlockBody
	case strings.HasPrefix(trimmed, "//"), strings.HasPrefix(trimmed, "#"):
		return st, KindComment
	default:
		return st, KindCode
	}
}

// Classify returns the kind of every line of text, split on "\n".
func Classify(text string) []LineKind {
	lines := strings.Split(text, "\n")
	kinds := make([]LineKind, len(lines))
	var st state
	for i, line := range lines {
		st, kinds[i] = step(st, trimLine(line))
	}
	return kinds
}
