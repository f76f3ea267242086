package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTTY reports whether w is a terminal
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive reports whether both stdin and stdout are terminals
func IsInteractive() bool {
	return IsTTY(os.Stdin) && IsTTY(os.Stdout)
}

// ResolveColorMode maps the --color flag ("never", "always" or "auto") to
// whether colors should be used.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY && os.Getenv("NO_COLOR") == ""
	}
}

// SetColor switches lipgloss rendering between ANSI colors and plain text
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.ANSI256)
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
