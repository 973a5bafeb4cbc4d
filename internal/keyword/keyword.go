// Package keyword counts how often a keyword appears per speaker and
// builds a newest-first timeline of the messages that contain it.
package keyword

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/neilberkman/chatvibe/internal/models"
)

var (
	// ErrEmptyKeyword is returned for a blank keyword.
	ErrEmptyKeyword = errors.New("keyword is empty")
	// ErrInvalidPattern is returned when a regex keyword does not compile.
	ErrInvalidPattern = errors.New("invalid keyword pattern")
)

// Options controls matching.
type Options struct {
	// Regex treats the keyword as a regular expression instead of literal text.
	Regex bool
	// Speakers limits the analysis to these speakers. Nil means everyone.
	Speakers []string
}

// Compile builds the case-insensitive matcher for keyword.
func Compile(keyword string, regex bool) (*regexp.Regexp, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrEmptyKeyword
	}
	pattern := keyword
	if !regex {
		pattern = regexp.QuoteMeta(keyword)
	}
	rx, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return rx, nil
}

// Analyze scans messages for keyword. Every message is counted in the
// summary's total; only messages from opts.Speakers are analyzed.
func Analyze(messages []models.ParsedMessage, keyword string, opts Options) (models.KeywordAnalysis, error) {
	rx, err := Compile(keyword, opts.Regex)
	if err != nil {
		return models.KeywordAnalysis{}, err
	}

	filtered := models.FilterBySpeakers(messages, opts.Speakers)

	var (
		order     []string
		bySpeaker = make(map[string]*models.SpeakerKeywordStats)
		timeline  = make([]models.KeywordHit, 0)
		totalHits int
	)

	for _, m := range filtered {
		hits := len(rx.FindAllStringIndex(m.Text, -1))
		if hits == 0 {
			continue
		}
		totalHits += hits

		stats, ok := bySpeaker[m.Speaker]
		if !ok {
			stats = &models.SpeakerKeywordStats{Speaker: m.Speaker}
			bySpeaker[m.Speaker] = stats
			order = append(order, m.Speaker)
		}
		stats.TotalHits += hits
		stats.MessageCount++

		timeline = append(timeline, models.KeywordHit{
			Date:          m.Date,
			Time:          m.Time,
			Timestamp:     m.Timestamp,
			Speaker:       m.Speaker,
			Message:       m.Text,
			HitsInMessage: hits,
		})
	}

	speakerStats := make([]models.SpeakerKeywordStats, 0, len(order))
	for _, s := range order {
		speakerStats = append(speakerStats, *bySpeaker[s])
	}
	sort.SliceStable(speakerStats, func(i, j int) bool {
		return speakerStats[i].TotalHits > speakerStats[j].TotalHits
	})
	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Timestamp.After(timeline[j].Timestamp)
	})

	return models.KeywordAnalysis{
		Keyword:      keyword,
		TotalHits:    totalHits,
		SpeakerStats: speakerStats,
		Timeline:     timeline,
		Summary: models.KeywordSummary{
			AnalyzedLines:    len(filtered),
			TotalMessages:    len(messages),
			TotalKeywordHits: totalHits,
		},
	}, nil
}
