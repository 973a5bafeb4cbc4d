package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/neilberkman/chatvibe/internal/rendering"
)

func TestWriteReport(t *testing.T) {
	tests := []struct {
		name     string
		caps     *rendering.TerminalCapabilities
		contains []string
		excludes []string
	}{
		{
			name: "hyperlink terminal",
			caps: &rendering.TerminalCapabilities{TerminalType: "ghostty", SupportsHyperlinks: true, IsTTY: true, Width: 120},
			contains: []string{
				"Terminal Information:",
				"Type: ghostty",
				"Width: 120",
				"✓ OSC 8 Hyperlinks",
				"✓ Styled Output",
				"\x1b]8;;https://github.com/neilberkman/chatvibe",
				"Links in reports are clickable",
			},
		},
		{
			name: "basic terminal",
			caps: &rendering.TerminalCapabilities{TerminalType: "dumb", Width: 80},
			contains: []string{
				"Type: dumb",
				"✗ OSC 8 Hyperlinks",
				"✗ Styled Output",
				"For clickable links, try:",
			},
			excludes: []string{"\x1b]8;;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeReport(&buf, tt.caps); err != nil {
				t.Fatalf("writeReport() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output does not contain %q\nOutput: %s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("output contains %q\nOutput: %s", unwanted, out)
				}
			}
		})
	}
}

func TestRunTerminal(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("TERM", "dumb")

	var buf bytes.Buffer
	TerminalCmd.SetOut(&buf)
	defer TerminalCmd.SetOut(nil)

	if err := runTerminal(TerminalCmd, nil); err != nil {
		t.Fatalf("runTerminal() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Type: dumb") {
		t.Errorf("expected terminal type in output, got %s", buf.String())
	}
}
