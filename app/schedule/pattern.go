package schedule

import (
	"fmt"
	"strings"
)

// Day tokens used throughout the density computation. "R" is Thursday by
// registrar convention; "X" is the Sunday placeholder and never appears in
// the six-day grid.
const (
	Monday    = "M"
	Tuesday   = "T"
	Wednesday = "W"
	Thursday  = "R"
	Friday    = "F"
	Saturday  = "S"
	Sunday    = "X"
)

// Days is the fixed ordering of the six grid days.
var Days = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// NoMeetingPattern is the sentinel the ingestion layer stores for rows
// without a meeting pattern.
const NoMeetingPattern = "No Meeting Pattern"

// patternAliases maps whole-pattern codes from the registrar export to
// their token expansion. "TR" is the Tuesday/Thursday pair code and expands
// to both days; collapsing it to Thursday alone would erase every Tuesday
// meeting from the density grid.
var patternAliases = map[string]string{
	"TR":  "TR",
	"TTR": "TR",
	"SA":  Saturday,
	"SU":  Sunday,
}

// MalformedPatternError reports a meeting pattern containing a token that
// does not map to a known day.
type MalformedPatternError struct {
	Pattern string
	Token   rune
}

func (e *MalformedPatternError) Error() string {
	return fmt.Sprintf("malformed meeting pattern %q: unknown day token %q", e.Pattern, e.Token)
}

// ParseMeetingPattern decodes a raw meeting-pattern code into the ordered
// set of day tokens the class meets on. An empty or sentinel pattern yields
// an empty slice. Duplicate days are dropped.
func ParseMeetingPattern(raw string) ([]string, error) {
	pattern := strings.TrimSpace(raw)
	if pattern == "" || pattern == NoMeetingPattern {
		return nil, nil
	}

	if expanded, ok := patternAliases[pattern]; ok {
		pattern = expanded
	}

	var tokens []string
	seen := make(map[rune]bool, len(pattern))

	for _, r := range pattern {
		switch r {
		case 'M', 'T', 'W', 'R', 'F', 'S', 'X':
			if !seen[r] {
				seen[r] = true
				tokens = append(tokens, string(r))
			}
		default:
			return nil, &MalformedPatternError{Pattern: raw, Token: r}
		}
	}

	return tokens, nil
}
