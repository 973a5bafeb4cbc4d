// Package tokenize splits chat text into countable word tokens.
package tokenize

import (
	"regexp"
	"strings"

	"mvdan.cc/xurls/v2"
)

var (
	urlRegex      = xurls.Strict()
	emailRegex    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	laughterRegex = regexp.MustCompile(`[ㅋㅎㅠㅜ]{3,}`)
	spaceRegex    = regexp.MustCompile(`\s+`)

	hangulRegex = regexp.MustCompile(`[가-힣]{2,}`)
	latinRegex  = regexp.MustCompile(`[a-zA-Z]{2,}`)
	digitRegex  = regexp.MustCompile(`\d{2,}`)
)

// Clean strips URLs, email addresses and runs of laughter/crying jamo,
// then collapses whitespace.
func Clean(text string) string {
	cleaned := urlRegex.ReplaceAllString(text, "")
	cleaned = emailRegex.ReplaceAllString(cleaned, "")
	cleaned = laughterRegex.ReplaceAllString(cleaned, "")
	cleaned = spaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Tokenize returns the Hangul words, then the lowercased Latin words, then
// the numbers in text. Each class keeps its own left-to-right order; the
// classes are not interleaved.
func Tokenize(text string) []string {
	cleaned := Clean(text)
	if cleaned == "" {
		return nil
	}

	tokens := hangulRegex.FindAllString(cleaned, -1)
	for _, w := range latinRegex.FindAllString(cleaned, -1) {
		tokens = append(tokens, strings.ToLower(w))
	}
	return append(tokens, digitRegex.FindAllString(cleaned, -1)...)
}
