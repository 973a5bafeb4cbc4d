// Package lexicon holds the sentiment and profanity word lists and the
// compiled matchers built from them.
package lexicon

import (
	"regexp"
	"strings"
)

var defaultPositive = []string{
	"좋다", "좋아요", "즐거웠다", "굿", "고마워", "감사", "최고", "행복", "대박",
	"멋져", "예쁘", "웃껴", "웃겨", "사랑", "맛있어요", "귀여운", "축하", "화이팅",
	"멋있", "짱", "짱이야", "짱이다", "쩐다", "쩔어",
}

var defaultNegative = []string{
	"싫다", "안좋아", "별로", "최악", "짜증", "빡", "화나", "불편", "나쁘", "개같",
	"힘들", "미친", "죽어", "답답", "속상해요",
}

// variants seen in real chats are kept next to their base forms
var defaultSwear = []string{
	"씨발", "시발", "ㅅㅂ", "십할", "ㅈ같", "좆", "병신", "ㅂㅅ", "ㅄ",
	"개같", "개새", "지랄", "염병", "닥쳐", "꺼져", "개처",
}

// Lexicon is an immutable set of word lists with one precompiled
// alternation matcher per list.
type Lexicon struct {
	Positive []string
	Negative []string
	Swear    []string

	positiveRx *regexp.Regexp
	negativeRx *regexp.Regexp
	swearRx    *regexp.Regexp
}

var builtin = New(defaultPositive, defaultNegative, defaultSwear)

// Default returns the built-in lexicon. It is compiled once at startup.
func Default() *Lexicon {
	return builtin
}

// New copies the lists and compiles their matchers.
func New(positive, negative, swear []string) *Lexicon {
	l := &Lexicon{
		Positive: clean(positive),
		Negative: clean(negative),
		Swear:    clean(swear),
	}
	l.positiveRx = MakeMatcher(l.Positive)
	l.negativeRx = MakeMatcher(l.Negative)
	l.swearRx = MakeMatcher(l.Swear)
	return l
}

// CountPositive counts non-overlapping positive-word matches in text.
func (l *Lexicon) CountPositive(text string) int { return CountMatches(text, l.positiveRx) }

// CountNegative counts non-overlapping negative-word matches in text.
func (l *Lexicon) CountNegative(text string) int { return CountMatches(text, l.negativeRx) }

// CountSwear counts non-overlapping profanity matches in text.
func (l *Lexicon) CountSwear(text string) int { return CountMatches(text, l.swearRx) }

// MakeMatcher builds one alternation of the literal words, in list order.
// An empty list yields nil, which matches nothing.
func MakeMatcher(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// CountMatches returns the number of non-overlapping matches of rx in text.
func CountMatches(text string, rx *regexp.Regexp) int {
	if rx == nil || text == "" {
		return 0
	}
	return len(rx.FindAllStringIndex(text, -1))
}

// IncludesAny reports whether text contains any of the words.
func IncludesAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func clean(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
