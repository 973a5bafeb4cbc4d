package terminal

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/neilberkman/chatvibe/internal/rendering"
	"github.com/spf13/cobra"
)

// TerminalCmd represents the terminal command
var TerminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Show terminal capabilities and features",
	Long: `Display information about the current terminal's capabilities and which chatvibe features are available.

This command helps you understand whether links in reports are clickable and how Hangul text will be aligned.`,
	RunE: runTerminal,
}

func runTerminal(cmd *cobra.Command, args []string) error {
	return writeReport(cmd.OutOrStdout(), rendering.DetectTerminalCapabilities())
}

func writeReport(w io.Writer, caps *rendering.TerminalCapabilities) error {
	fmt.Fprintln(w, "Terminal Information:")
	fmt.Fprintf(w, "  Type: %s\n", caps.TerminalType)
	fmt.Fprintf(w, "  Width: %d\n", caps.Width)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Supported Features:")

	if caps.SupportsHyperlinks {
		fmt.Fprintln(w, "  ✓ OSC 8 Hyperlinks - Clickable links in evidence snippets")
		demo := rendering.MakeHyperlink("chatvibe on GitHub", "https://github.com/neilberkman/chatvibe", true)
		fmt.Fprintf(w, "    Demo: %s\n", demo)
	} else {
		fmt.Fprintln(w, "  ✗ OSC 8 Hyperlinks - Not supported")
	}

	if caps.IsTTY {
		fmt.Fprintln(w, "  ✓ Styled Output - Colored cards and rendered markdown")
	} else {
		fmt.Fprintln(w, "  ✗ Styled Output - Output is not a terminal, plain text is used")
	}

	if caps.EastAsianLocale {
		fmt.Fprintln(w, "  ✓ East Asian Width - Ambiguous characters take two cells")
	} else {
		fmt.Fprintln(w, "  ✗ East Asian Width - Ambiguous characters take one cell")
	}
	fmt.Fprintf(w, "    Sample: %q is %d cells wide\n", "카카오톡", runewidth.StringWidth("카카오톡"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recommendations:")
	if caps.SupportsHyperlinks {
		fmt.Fprintln(w, "  👍 Your terminal supports hyperlinks. Links in reports are clickable!")
	} else {
		fmt.Fprintln(w, "  💡 For clickable links, try:")
		fmt.Fprintln(w, "     - Ghostty (https://ghostty.org)")
		fmt.Fprintln(w, "     - Kitty (https://sw.kovidgoyal.net/kitty/)")
		fmt.Fprintln(w, "     - WezTerm (https://wezfurlong.org/wezterm/)")
	}

	return nil
}
