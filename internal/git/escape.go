package git

import (
	"fmt"
	"strings"
)

// Escape quotes a single value for safe inclusion in a shell command line.
// The value is wrapped in single quotes and every embedded single quote is
// rewritten as '\''. A nil value becomes the empty token ''.
func Escape(v any) string {
	var s string
	if v != nil {
		s = fmt.Sprint(v)
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Flatten turns a mix of strings, string slices and nested []any values into
// a flat argument list. Other values are rendered with fmt.Sprint.
func Flatten(values ...any) []string {
	var out []string
	for _, v := range values {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			out = append(out, t)
		case []string:
			out = append(out, t...)
		case []any:
			out = append(out, Flatten(t...)...)
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}

// CommandLine renders the full invocation as a shell would see it:
// "<binary> <subcommand> <escaped args> [redirect] 2>&1". The binary is
// quoted only when it holds characters the shell would interpret. The
// redirect is appended verbatim since it carries its own shell operators.
func CommandLine(binary, subcommand string, args []string, redirect string) string {
	parts := make([]string, 0, len(args)+4)
	parts = append(parts, shellWord(binary), subcommand)
	for _, arg := range args {
		parts = append(parts, Escape(arg))
	}
	if redirect != "" {
		parts = append(parts, redirect)
	}
	parts = append(parts, "2>&1")
	return strings.Join(parts, " ")
}

// shellWord leaves plain words such as "git" or "/usr/bin/git" bare
func shellWord(s string) string {
	if s == "" {
		return Escape(s)
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("/._-+:@%,=", r):
		default:
			return Escape(s)
		}
	}
	return s
}
