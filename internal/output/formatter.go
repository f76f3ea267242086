package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	shaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	branchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	remoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	matchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// ColorSHA renders an object id
func ColorSHA(sha string) string {
	return shaStyle.Render(sha)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return dimStyle.Render(text)
}

// ColorCurrentBranch highlights the checked out branch
func ColorCurrentBranch(branchName string) string {
	return currentStyle.Render(branchName)
}

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return currentStyle.Render("* " + branchName)
	}
	if strings.HasPrefix(branchName, "remotes/") {
		return remoteStyle.Render("  " + branchName)
	}
	return branchStyle.Render("  " + branchName)
}

// ShortSHA abbreviates an object id to seven characters
func ShortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// FormatCommitLine renders "<short sha> <subject> (<author>)"
func FormatCommitLine(sha, subject, author string) string {
	line := ColorSHA(ShortSHA(sha)) + " " + subject
	if author != "" {
		line += " " + ColorDim("("+author+")")
	}
	return line
}

// FormatDiffStat renders one numstat entry. Binary files have no counts.
func FormatDiffStat(path string, insertions, deletions int, binary bool) string {
	if binary {
		return fmt.Sprintf("%s %s", path, ColorDim("(binary)"))
	}
	return fmt.Sprintf("%s %s %s", path,
		addedStyle.Render(fmt.Sprintf("+%d", insertions)),
		removedStyle.Render(fmt.Sprintf("-%d", deletions)))
}

// FormatGrepMatch renders "<file>:<line>: <text>"
func FormatGrepMatch(file string, line int, text string) string {
	return fmt.Sprintf("%s:%s: %s", matchStyle.Render(file), ColorDim(fmt.Sprint(line)), text)
}
