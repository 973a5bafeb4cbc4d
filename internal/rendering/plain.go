package rendering

import (
	"regexp"
	"strings"
)

var (
	boldRegex      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRegex    = regexp.MustCompile(`_(.+?)_`)
	headerRegex    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	quoteRegex     = regexp.MustCompile(`(?m)^>\s?`)
	ruleRegex      = regexp.MustCompile(`(?m)^---\s*$\n?`)
	tableRuleRegex = regexp.MustCompile(`(?m)^\|[-:| ]+\|\s*$\n?`)
	blankRunRegex  = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown reduces report markdown to plain text, for pasting into
// chat apps that show markup literally.
func StripMarkdown(md string) string {
	text := boldRegex.ReplaceAllString(md, "$1")
	text = italicRegex.ReplaceAllString(text, "$1")
	text = headerRegex.ReplaceAllString(text, "")
	text = quoteRegex.ReplaceAllString(text, "  ")
	text = ruleRegex.ReplaceAllString(text, "")
	text = tableRuleRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\|`, "|")
	text = blankRunRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text) + "\n"
}
