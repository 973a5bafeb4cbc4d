package rendering

import (
	"fmt"
	"strings"

	"mvdan.cc/xurls/v2"
)

var urlParser = xurls.Relaxed()

// MakeHyperlink creates a terminal hyperlink using OSC 8 sequences.
// When disabled or without a target it returns the display text.
func MakeHyperlink(displayText, targetURL string, enabled bool) string {
	if !enabled || targetURL == "" {
		return displayText
	}
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", targetURL, displayText)
}

// LinkURLs turns every URL in text into a hyperlink. Bare hosts get an
// https scheme as their target.
func LinkURLs(text string, enabled bool) string {
	if !enabled {
		return text
	}
	return urlParser.ReplaceAllStringFunc(text, func(match string) string {
		target := match
		if !strings.Contains(match, "://") && !strings.HasPrefix(match, "mailto:") {
			if strings.Contains(match, "@") && !strings.Contains(match, "/") {
				target = "mailto:" + match
			} else {
				target = "https://" + match
			}
		}
		return MakeHyperlink(match, target, true)
	})
}

// ExtractURLs returns every URL in text in order.
func ExtractURLs(text string) []string {
	return urlParser.FindAllString(text, -1)
}
