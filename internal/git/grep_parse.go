package git

import (
	"log/slog"
	"regexp"
	"strconv"
)

// GrepMatch is a single matching line
type GrepMatch struct {
	Line int
	Text string
}

// GrepMatches groups matches by "<object>:<path>"
type GrepMatches map[string][]GrepMatch

var grepLineRegex = regexp.MustCompile(`^(.+?):(\d+):(.*)$`)

// ParseGrep parses "git grep -n" output. Lines that are not
// "<path>:<line>:<text>" are skipped.
func ParseGrep(lines []string) GrepMatches {
	return parseGrep(lines, discardLogger)
}

func parseGrep(lines []string, logger *slog.Logger) GrepMatches {
	matches := GrepMatches{}
	for _, line := range lines {
		m := grepLineRegex.FindStringSubmatch(line)
		if m == nil {
			logSkipped(logger, "grep", line)
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			logSkipped(logger, "grep", line)
			continue
		}
		matches[m[1]] = append(matches[m[1]], GrepMatch{Line: n, Text: m[3]})
	}
	return matches
}
