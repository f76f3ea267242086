package git

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Branch is one entry of "git branch" output
type Branch struct {
	Name    string
	Current bool
}

// Stash is one entry of "git stash list"
type Stash struct {
	Index   int
	Message string
}

// ParseBranches parses "git branch [-a]" output. The "* " marker sets
// Current. Detached HEAD pseudo-entries and symbolic "a -> b" lines are
// skipped.
func ParseBranches(lines []string) []Branch {
	return parseBranches(lines, discardLogger)
}

func parseBranches(lines []string, logger *slog.Logger) []Branch {
	branches := []Branch{}
	for _, line := range lines {
		current := strings.HasPrefix(line, "* ")
		name := strings.TrimSpace(strings.TrimPrefix(line, "* "))
		// worktree checkouts are marked with "+ "
		name = strings.TrimSpace(strings.TrimPrefix(name, "+ "))

		switch {
		case name == "":
			continue
		case strings.HasPrefix(name, "("):
			logSkipped(logger, "branch", line)
			continue
		case strings.Contains(name, " -> "):
			logSkipped(logger, "branch", line)
			continue
		}
		branches = append(branches, Branch{Name: name, Current: current})
	}
	return branches
}

var stashRegex = regexp.MustCompile(`^stash@\{(\d+)\}: (.*)$`)

// ParseStashes parses "stash@{n}: message" lines
func ParseStashes(lines []string) []Stash {
	return parseStashes(lines, discardLogger)
}

func parseStashes(lines []string, logger *slog.Logger) []Stash {
	stashes := []Stash{}
	for _, line := range lines {
		m := stashRegex.FindStringSubmatch(line)
		if m == nil {
			logSkipped(logger, "stash", line)
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			logSkipped(logger, "stash", line)
			continue
		}
		stashes = append(stashes, Stash{Index: index, Message: strings.TrimSpace(m[2])})
	}
	return stashes
}
