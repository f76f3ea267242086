package git

// ExitPolicy lists the subcommands whose exit status 1 with no output means
// "nothing found" rather than failure.
type ExitPolicy map[string]bool

// DefaultExitPolicy returns the tolerant subcommands used by new runners.
func DefaultExitPolicy() ExitPolicy {
	return ExitPolicy{
		"grep":         true, // no matches
		"config":       true, // key not set
		"diff":         true, // --quiet / --exit-code with differences
		"diff-index":   true,
		"diff-files":   true,
		"merge-base":   true, // --is-ancestor false
		"show-ref":     true,
		"check-ignore": true,
		"symbolic-ref": true, // -q on a detached HEAD
		"ls-remote":    true,
		"describe":     true,
	}
}

// With returns a copy of the policy with the given subcommands added.
func (p ExitPolicy) With(subcommands ...string) ExitPolicy {
	out := make(ExitPolicy, len(p)+len(subcommands))
	for k, v := range p {
		out[k] = v
	}
	for _, s := range subcommands {
		out[s] = true
	}
	return out
}

// ToleratesEmptyExitOne reports whether exit status 1 with empty output is a
// successful empty result for the subcommand.
func (p ExitPolicy) ToleratesEmptyExitOne(subcommand string) bool {
	return p[subcommand]
}

// classify applies the exit contract. It returns true when the invocation
// counts as a success.
func (p ExitPolicy) classify(subcommand string, exitCode int, output string) bool {
	switch {
	case exitCode == 0:
		return true
	case exitCode == 1 && output == "":
		return p.ToleratesEmptyExitOne(subcommand)
	default:
		return false
	}
}
