package rendering

import (
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 80

// TerminalCapabilities represents what the current output supports
type TerminalCapabilities struct {
	TerminalType       string
	SupportsHyperlinks bool
	IsTTY              bool
	Width              int
	// EastAsianLocale means ambiguous-width runes take two cells.
	EastAsianLocale bool
}

var hyperlinkPrograms = map[string]bool{
	"ghostty":   true,
	"kitty":     true,
	"wezterm":   true,
	"WezTerm":   true,
	"iTerm.app": true,
	"vscode":    true,
}

// DetectTerminalCapabilities inspects stdout and the environment.
func DetectTerminalCapabilities() *TerminalCapabilities {
	termProgram := os.Getenv("TERM_PROGRAM")
	termName := os.Getenv("TERM")

	caps := &TerminalCapabilities{
		TerminalType:    termProgram,
		Width:           DefaultWidth,
		EastAsianLocale: runewidth.IsEastAsian(),
	}
	if caps.TerminalType == "" {
		caps.TerminalType = termName
	}

	caps.SupportsHyperlinks = hyperlinkPrograms[termProgram] ||
		os.Getenv("KITTY_WINDOW_ID") != "" ||
		strings.Contains(termName, "xterm")

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		caps.IsTTY = true
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			caps.Width = w
		}
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		caps.Width = cols
	}

	return caps
}

// IsHyperlinksSupported returns true if the terminal supports OSC 8 hyperlinks
func IsHyperlinksSupported() bool {
	return DetectTerminalCapabilities().SupportsHyperlinks
}

// GetTerminalInfo returns human-readable terminal information
func GetTerminalInfo() string {
	caps := DetectTerminalCapabilities()

	info := "Terminal: " + caps.TerminalType

	var features []string
	if caps.IsTTY {
		features = append(features, "tty")
	}
	if caps.SupportsHyperlinks {
		features = append(features, "hyperlinks")
	}
	if caps.EastAsianLocale {
		features = append(features, "east-asian-width")
	}
	features = append(features, "width="+strconv.Itoa(caps.Width))

	return info + " (" + strings.Join(features, ", ") + ")"
}
