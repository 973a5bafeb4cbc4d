package enrich

import (
	"strings"

	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/vibe"
)

// Apply merges an outcome into the heuristic report. A failed outcome
// returns the heuristic report with the fallback note on its summary.
// Features always come from the heuristic pass.
func Apply(report models.VibeReport, outcome Outcome) models.VibeReport {
	out := models.VibeReport{
		RoomSummary: report.RoomSummary,
		Speakers:    make([]models.SpeakerVibeAnalysis, len(report.Speakers)),
		Source:      report.Source,
	}
	copy(out.Speakers, report.Speakers)

	if !outcome.OK() {
		out.RoomSummary += vibe.FallbackNote
		out.Source = models.SourceFallback
		return out
	}

	bySpeaker := make(map[string]SpeakerSummary, len(outcome.Result.Speakers))
	for _, s := range outcome.Result.Speakers {
		bySpeaker[s.Speaker] = s
	}

	for i, h := range out.Speakers {
		ai, ok := bySpeaker[h.Speaker]
		if !ok {
			continue
		}
		h.Nickname = ai.Nickname
		if !strings.HasSuffix(h.Nickname, h.Speaker) {
			h.Nickname += h.Speaker
		}
		if len(ai.Traits) > 0 {
			h.Traits = ai.Traits
		}
		if ai.FeatureSummary != "" {
			h.FeatureSummary = ai.FeatureSummary
		} else {
			h.FeatureSummary = vibe.FeatureSummary(h.Nickname, h.Traits)
		}
		if ai.Analysis != "" && !contains(h.EvidenceSnippets, ai.Analysis) {
			h.EvidenceSnippets = append(append([]string{}, h.EvidenceSnippets...), ai.Analysis)
		}
		out.Speakers[i] = h
	}

	if outcome.Result.RoomSummary != "" {
		out.RoomSummary = outcome.Result.RoomSummary
	}
	out.Source = models.SourceAI
	return out
}
