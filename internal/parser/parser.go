// Package parser turns exported KakaoTalk chat text into a uniform,
// ordered message stream. Desktop and mobile export layouts may be mixed in
// one file; lines are classified one at a time and nothing in the content
// is ever treated as an error.
package parser

import (
	"sort"
	"strings"

	"github.com/neilberkman/chatvibe/internal/models"
)

// normalizer carries the state of one parse.
type normalizer struct {
	messages    []models.ParsedMessage
	speakers    map[string]struct{}
	currentDate *civilDate
	startDate   string
}

// Parse decodes raw export bytes and parses them.
func Parse(data []byte) models.ParseResult {
	text, _ := Decode(data)
	return ParseText(text)
}

// ParseText parses already decoded export text.
func ParseText(text string) models.ParseResult {
	lines := strings.Split(text, "\n")
	n := &normalizer{speakers: make(map[string]struct{})}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, r := range rules {
			if r.apply(n, line) {
				break
			}
		}
	}

	speakers := make([]string, 0, len(n.speakers))
	for s := range n.speakers {
		speakers = append(speakers, s)
	}
	sort.Strings(speakers)

	messages := n.messages
	if messages == nil {
		messages = []models.ParsedMessage{}
	}

	return models.ParseResult{
		Messages:              messages,
		Speakers:              speakers,
		ConversationStartDate: n.startDate,
		TotalLines:            len(lines),
		ValidMessages:         len(messages),
	}
}

func (n *normalizer) emit(date civilDate, c clock, speaker, text string) {
	speaker = strings.TrimSpace(speaker)
	text = strings.TrimSpace(text)

	if n.startDate == "" {
		n.startDate = date.String()
	}
	n.speakers[speaker] = struct{}{}
	n.messages = append(n.messages, models.ParsedMessage{
		Timestamp:   date.at(c),
		Date:        date.String(),
		Time:        c.String(),
		Speaker:     speaker,
		Text:        text,
		IsMediaLike: IsMediaLike(text),
	})
}
