package vibe

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"mvdan.cc/xurls/v2"

	"github.com/neilberkman/chatvibe/internal/lexicon"
	"github.com/neilberkman/chatvibe/internal/models"
)

// MaxEvidence is the number of evidence snippets kept per speaker.
const MaxEvidence = 8

var (
	questionRegex     = regexp.MustCompile(`\?|뭐|어떻|언제|어디|누구|왜|어떡`)
	exclaimCueRegex   = regexp.MustCompile(`!|와|우와|대박|진짜`)
	exclaimRunRegex   = regexp.MustCompile(`[!！]+`)
	httpLinkRegex     = regexp.MustCompile(`(?i)https?://`)
	evidenceLinkRegex = mustScheme(`https?://`)
	wwwRegex          = regexp.MustCompile(`(?i)www\.`)
)

func mustScheme(scheme string) *regexp.Regexp {
	rx, err := xurls.StrictMatchingScheme(scheme)
	if err != nil {
		panic(err)
	}
	return rx
}

// isLinkEvidence accepts http(s) URLs and www hosts. Bare domains do not
// count.
func isLinkEvidence(text string) bool {
	return evidenceLinkRegex.MatchString(text) || wwwRegex.MatchString(text)
}

// SpeakerStats is the feature set of one speaker plus the messages that
// best illustrate it.
type SpeakerStats struct {
	Speaker  string
	Messages int
	Features models.SpeakerFeatures
	Evidence []string
}

type accumulator struct {
	stats    SpeakerStats
	totalLen int
}

// ExtractFeatures aggregates per-speaker features over the non-media
// messages, in order of each speaker's first message.
func ExtractFeatures(messages []models.ParsedMessage, lex *lexicon.Lexicon) []SpeakerStats {
	if lex == nil {
		lex = lexicon.Default()
	}

	var order []string
	acc := make(map[string]*accumulator)

	for _, m := range messages {
		if m.IsMediaLike {
			continue
		}
		a, ok := acc[m.Speaker]
		if !ok {
			a = &accumulator{stats: SpeakerStats{Speaker: m.Speaker, Evidence: []string{}}}
			acc[m.Speaker] = a
			order = append(order, m.Speaker)
		}
		a.add(m, lex)
	}

	out := make([]SpeakerStats, 0, len(order))
	for _, s := range order {
		a := acc[s]
		a.stats.Features.AverageMessageLength = int(math.Round(float64(a.totalLen) / float64(a.stats.Messages)))
		out = append(out, a.stats)
	}
	return out
}

func (a *accumulator) add(m models.ParsedMessage, lex *lexicon.Lexicon) {
	text := m.Text
	f := &a.stats.Features

	f.PositiveCount += lex.CountPositive(text)
	f.NegativeCount += lex.CountNegative(text)
	f.SwearCount += lex.CountSwear(text)

	if questionRegex.MatchString(text) {
		f.QuestionCount++
	}
	if exclaimCueRegex.MatchString(text) {
		for _, run := range exclaimRunRegex.FindAllString(text, -1) {
			f.ExclamationCount += utf8.RuneCountInString(run)
		}
	}
	if httpLinkRegex.MatchString(text) {
		f.LinkCount++
	}

	f.TimeDistribution.Add(models.SlotForHour(hourOf(m)))

	a.stats.Messages++
	a.totalLen += utf8.RuneCountInString(text)

	if len(a.stats.Evidence) < MaxEvidence {
		trimmed := strings.TrimSpace(text)
		if strings.ContainsAny(trimmed, "?!") || isLinkEvidence(trimmed) {
			a.stats.Evidence = append(a.stats.Evidence, trimmed)
		}
	}
}

// hourOf reads the local hour from the HH:MM field, falling back to the
// timestamp.
func hourOf(m models.ParsedMessage) int {
	if h, _, ok := strings.Cut(m.Time, ":"); ok {
		if hour, err := strconv.Atoi(h); err == nil && hour >= 0 && hour < 24 {
			return hour
		}
	}
	return m.Timestamp.In(models.KST).Hour()
}
