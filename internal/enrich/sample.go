package enrich

import (
	"strings"
	"unicode/utf8"

	"github.com/neilberkman/chatvibe/internal/models"
)

// Placeholder stands in for a speaker with no usable lines.
const Placeholder = "(사용 가능한 메시지 없음)"

// Limits bound how much of the conversation is sent.
type Limits struct {
	PerSpeaker    int
	Global        int
	MinPerSpeaker int
	MaxChars      int
}

// DefaultLimits returns the built-in sampling limits.
func DefaultLimits() Limits {
	return Limits{PerSpeaker: 12, Global: 120, MinPerSpeaker: 2, MaxChars: 200}
}

func (l Limits) normalized() Limits {
	d := DefaultLimits()
	if l.PerSpeaker <= 0 {
		l.PerSpeaker = d.PerSpeaker
	}
	if l.Global <= 0 {
		l.Global = d.Global
	}
	if l.MinPerSpeaker < 0 {
		l.MinPerSpeaker = 0
	}
	if l.MinPerSpeaker > l.PerSpeaker {
		l.MinPerSpeaker = l.PerSpeaker
	}
	if l.MaxChars <= 0 {
		l.MaxChars = d.MaxChars
	}
	return l
}

// SampleLine is one line shown to the model.
type SampleLine struct {
	Speaker     string
	Text        string
	Placeholder bool
}

// Sample picks up to PerSpeaker lines per speaker, spread evenly over each
// speaker's messages, then interleaves speakers round-robin until Global
// lines are taken. The first MinPerSpeaker rounds ignore Global so every
// speaker with lines is represented. A speaker with no usable lines gets a
// single placeholder line.
func Sample(messages []models.ParsedMessage, speakers []string, limits Limits) []SampleLine {
	limits = limits.normalized()

	bySpeaker := make(map[string][]string, len(speakers))
	for _, m := range messages {
		if m.IsMediaLike {
			continue
		}
		text := strings.TrimSpace(strings.ReplaceAll(m.Text, "\n", " "))
		if text == "" {
			continue
		}
		bySpeaker[m.Speaker] = append(bySpeaker[m.Speaker], truncate(text, limits.MaxChars))
	}

	picks := make([][]string, len(speakers))
	rounds := 0
	for i, s := range speakers {
		picks[i] = spread(bySpeaker[s], limits.PerSpeaker)
		rounds = max(rounds, len(picks[i]))
	}

	var out []SampleLine
	for i, s := range speakers {
		if len(picks[i]) == 0 {
			out = append(out, SampleLine{Speaker: s, Text: Placeholder, Placeholder: true})
		}
	}

	for r := 0; r < rounds; r++ {
		for i, s := range speakers {
			if r >= len(picks[i]) {
				continue
			}
			if r >= limits.MinPerSpeaker && len(out) >= limits.Global {
				return out
			}
			out = append(out, SampleLine{Speaker: s, Text: picks[i][r]})
		}
	}
	return out
}

// spread takes n items evenly spaced across lines, keeping their order.
func spread(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	out := make([]string, n)
	for i := range out {
		out[i] = lines[i*len(lines)/n]
	}
	return out
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "…"
}
