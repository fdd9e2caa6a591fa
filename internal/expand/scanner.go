package expand

import (
	"regexp"
	"strings"
)

// Match is one directive occurrence in a block of text.
type Match struct {
	// Start and End delimit the full matched span, half-open [Start, End),
	// in byte offsets of the scanned text.
	Start int
	End   int

	// Arg is the directive argument with surrounding whitespace trimmed.
	Arg string
}

// directivePattern matches the single-line form @include(<argument>).
// The argument may not contain a closing parenthesis or a line break, so a
// marker never spans multiple lines.
var directivePattern = regexp.MustCompile(`@include\(([^)\r\n]*)\)`)

// Scan returns every directive occurrence in text, first occurrence first.
// An input with no directives yields a nil slice; that is not an error.
func Scan(text string) []Match {
	idx := directivePattern.FindAllStringSubmatchIndex(text, -1)
	if idx == nil {
		return nil
	}

	matches := make([]Match, 0, len(idx))
	for _, m := range idx {
		matches = append(matches, Match{
			Start: m[0],
			End:   m[1],
			Arg:   strings.TrimSpace(text[m[2]:m[3]]),
		})
	}
	return matches
}
