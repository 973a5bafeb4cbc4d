// Package vibe derives per-speaker behavioral features from a chat and
// turns them into nicknames and traits.
//
// Nicknames are relational: a speaker's nickname depends on which ones
// earlier speakers already claimed in the same run. Analyze processes
// speakers in order of their first message.
package vibe

import (
	"fmt"
	"strings"

	"github.com/neilberkman/chatvibe/internal/lexicon"
	"github.com/neilberkman/chatvibe/internal/models"
)

// FallbackNote is appended to the room summary when an external
// enrichment was requested but the heuristic result had to be used.
const FallbackNote = " (AI 분석 실패로 휴리스틱 분석 사용)"

// Analyze runs the full heuristic analysis over already filtered messages.
// It never fails; no messages produce an empty report.
func Analyze(messages []models.ParsedMessage, settings models.Settings, lex *lexicon.Lexicon) models.VibeReport {
	stats := ExtractFeatures(messages, lex)
	assigner := NewAssigner()

	analyses := make([]models.SpeakerVibeAnalysis, 0, len(stats))
	for _, st := range stats {
		asg := assigner.Assign(st.Speaker, st.Features, settings)
		analyses = append(analyses, models.SpeakerVibeAnalysis{
			Speaker:          st.Speaker,
			Nickname:         asg.Nickname,
			Traits:           asg.Traits,
			Features:         st.Features,
			EvidenceSnippets: st.Evidence,
			FeatureSummary:   FeatureSummary(asg.Nickname, asg.Traits),
		})
	}

	return models.VibeReport{
		RoomSummary: RoomSummary(len(messages), stats),
		Speakers:    analyses,
		Source:      models.SourceHeuristic,
	}
}

// RoomSummary describes the room in one sentence. totalMessages counts
// every analyzed message, media included.
func RoomSummary(totalMessages int, stats []SpeakerStats) string {
	var pos, neg int
	for _, st := range stats {
		pos += st.Features.PositiveCount
		neg += st.Features.NegativeCount
	}
	mood := "차분하고 진지한"
	if pos > neg {
		mood = "긍정적이고 밝은"
	}
	return fmt.Sprintf("총 %d개의 메시지를 분석한 결과, %d명의 화자가 참여한 활발한 대화방입니다. 전반적으로 %s 분위기를 보이고 있습니다.",
		totalMessages, len(stats), mood)
}

// FeatureSummary is the one-line card caption for a speaker.
func FeatureSummary(nickname string, traits []string) string {
	return fmt.Sprintf("%s — %s 스타일", nickname, strings.Join(traits, ", "))
}
