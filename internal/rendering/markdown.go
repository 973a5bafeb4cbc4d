package rendering

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders report markdown for the terminal
type MarkdownRenderer struct {
	termRenderer *glamour.TermRenderer
}

var (
	sharedRenderer     *MarkdownRenderer
	sharedRendererOnce sync.Once
)

// GetSharedRenderer returns a renderer wrapped at the default width
func GetSharedRenderer() *MarkdownRenderer {
	sharedRendererOnce.Do(func() {
		sharedRenderer = NewMarkdownRenderer(DefaultWidth)
	})
	return sharedRenderer
}

// NewMarkdownRenderer creates a dark-themed renderer wrapping at width. If
// glamour cannot be set up the renderer passes markdown through.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{termRenderer: r}
}

// Render returns styled output, or md itself when rendering fails.
func (mr *MarkdownRenderer) Render(md string) string {
	if mr == nil || mr.termRenderer == nil {
		return md
	}
	rendered, err := mr.termRenderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(rendered) + "\n"
}

// RenderForTerminal styles md when stdout is a terminal and styling is
// enabled, and returns it unchanged otherwise.
func RenderForTerminal(md string, styled bool) string {
	caps := DetectTerminalCapabilities()
	if !styled || !caps.IsTTY {
		return md
	}
	if caps.Width == DefaultWidth {
		return GetSharedRenderer().Render(md)
	}
	return NewMarkdownRenderer(caps.Width).Render(md)
}
