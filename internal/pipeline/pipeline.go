// Package pipeline runs one analysis session over a parsed export. Every
// run starts from the full message list; nothing is cached between runs.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/neilberkman/chatvibe/internal/enrich"
	"github.com/neilberkman/chatvibe/internal/keyword"
	"github.com/neilberkman/chatvibe/internal/lexicon"
	"github.com/neilberkman/chatvibe/internal/logging"
	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/selection"
	"github.com/neilberkman/chatvibe/internal/vibe"
	"github.com/neilberkman/chatvibe/internal/words"
)

// Input is one analysis request.
type Input struct {
	Parse models.ParseResult
	// Speakers filters by name. Nil keeps everyone.
	Speakers []string
	// Keyword is optional; the keyword pass is skipped when empty.
	Keyword  string
	Regex    bool
	Settings models.Settings
	// Lexicon defaults to the built-in word lists.
	Lexicon *lexicon.Lexicon
	// AI asks Enricher for nicknames. Without an enabled client the
	// heuristic report is returned with the fallback note.
	AI       bool
	Enricher *enrich.Client
	Logger   *slog.Logger
}

// Output holds every analysis of one run.
type Output struct {
	Speakers []string
	Messages []models.ParsedMessage
	Keyword  *models.KeywordAnalysis
	Words    []models.WordAnalysis
	Ranking  []models.GlobalWordRank
	Podium   []models.GlobalWordRank
	Vibe     models.VibeReport
	// EnrichErr is why enrichment fell back, if it was requested and did.
	EnrichErr error
}

// Run validates the input, filters speakers and runs every analyzer.
// Errors are input problems only: bad settings, unknown speakers or a bad
// keyword. Enrichment failures never surface as errors.
func Run(ctx context.Context, in Input) (*Output, error) {
	log := in.Logger
	if log == nil {
		log = logging.Discard()
	}
	if err := in.Settings.Validate(); err != nil {
		return nil, err
	}

	speakers, err := selection.Resolve(in.Speakers, in.Parse.Speakers)
	if err != nil {
		return nil, err
	}
	messages := models.FilterBySpeakers(in.Parse.Messages, speakers)
	selected := speakers
	if speakers == nil {
		speakers = in.Parse.Speakers
	}
	log.Debug("analysis started", "messages", len(messages), "speakers", len(speakers))

	out := &Output{Speakers: speakers, Messages: messages}

	if in.Keyword != "" {
		// the summary counts the unfiltered messages too
		ka, err := keyword.Analyze(in.Parse.Messages, in.Keyword, keyword.Options{Regex: in.Regex, Speakers: selected})
		if err != nil {
			return nil, err
		}
		out.Keyword = &ka
	}

	out.Words = words.Analyze(messages)
	out.Ranking = words.GlobalRanking(out.Words)
	out.Podium = words.Podium(out.Words)

	lex := in.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}
	report := vibe.Analyze(messages, in.Settings, lex)

	if in.AI {
		names := make([]string, 0, len(report.Speakers))
		for _, s := range report.Speakers {
			names = append(names, s.Speaker)
		}
		outcome := in.Enricher.Enrich(ctx, enrich.Request{
			Messages:  messages,
			Speakers:  names,
			Settings:  in.Settings,
			Heuristic: report,
		})
		if !outcome.OK() {
			out.EnrichErr = outcome.Err
			log.Warn("enrichment failed, using heuristic analysis", "error", outcome.Err)
		}
		report = enrich.Apply(report, outcome)
	}
	out.Vibe = report

	log.Debug("analysis finished", "source", report.Source)
	return out, nil
}
