package keyword

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/chatvibe/internal/models"
)

func msg(speaker, text string, day, hour int) models.ParsedMessage {
	ts := time.Date(2025, 1, day, hour, 0, 0, 0, models.KST)
	return models.ParsedMessage{
		Timestamp: ts,
		Date:      ts.Format("2006-01-02"),
		Time:      ts.Format("15:04"),
		Speaker:   speaker,
		Text:      text,
	}
}

func fixture() []models.ParsedMessage {
	return []models.ParsedMessage{
		msg("민수", "커피 마실래?", 1, 9),
		msg("지영", "커피 좋지 커피 커피", 1, 10),
		msg("민수", "차는 별로", 2, 11),
		msg("철수", "COFFEE or 커피", 3, 8),
		msg("민수", "커피커피", 3, 9),
	}
}

func TestAnalyze(t *testing.T) {
	res, err := Analyze(fixture(), "커피", Options{})
	require.NoError(t, err)

	assert.Equal(t, 7, res.TotalHits)
	assert.Equal(t, []models.SpeakerKeywordStats{
		{Speaker: "민수", TotalHits: 3, MessageCount: 2},
		{Speaker: "지영", TotalHits: 3, MessageCount: 1},
		{Speaker: "철수", TotalHits: 1, MessageCount: 1},
	}, res.SpeakerStats, "ties keep first-hit order")

	require.Len(t, res.Timeline, 4)
	assert.Equal(t, "커피커피", res.Timeline[0].Message, "newest first")
	assert.Equal(t, 2, res.Timeline[0].HitsInMessage)
	assert.Equal(t, "커피 마실래?", res.Timeline[3].Message)

	assert.Equal(t, models.KeywordSummary{AnalyzedLines: 5, TotalMessages: 5, TotalKeywordHits: 7}, res.Summary)
}

func TestAnalyzeCaseInsensitive(t *testing.T) {
	res, err := Analyze(fixture(), "coffee", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalHits)
}

func TestAnalyzeSpeakerFilter(t *testing.T) {
	res, err := Analyze(fixture(), "커피", Options{Speakers: []string{"지영"}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalHits)
	assert.Equal(t, 1, res.Summary.AnalyzedLines)
	assert.Equal(t, 5, res.Summary.TotalMessages)

	res, err = Analyze(fixture(), "커피", Options{Speakers: []string{}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalHits)
	assert.NotNil(t, res.SpeakerStats)
	assert.NotNil(t, res.Timeline)
	assert.Equal(t, 0, res.Summary.AnalyzedLines)
}

func TestAnalyzeLiteralByDefault(t *testing.T) {
	msgs := []models.ParsedMessage{msg("민수", "가격은 1.5배? a+b", 1, 9)}

	res, err := Analyze(msgs, "1.5배?", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalHits)

	res, err = Analyze(msgs, "a+b", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalHits)

	res, err = Analyze(msgs, "a+b", Options{Regex: true})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalHits, "as a pattern a+b needs consecutive a's then b")

	res, err = Analyze(msgs, `\d\.\d`, Options{Regex: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalHits)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := Analyze(fixture(), "  ", Options{})
	assert.True(t, errors.Is(err, ErrEmptyKeyword))

	_, err = Analyze(fixture(), "(", Options{Regex: true})
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	_, err = Analyze(fixture(), "(", Options{})
	assert.NoError(t, err)
}

func TestAnalyzeNoMatches(t *testing.T) {
	res, err := Analyze(fixture(), "맥주", Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalHits)
	assert.Empty(t, res.SpeakerStats)
	assert.Empty(t, res.Timeline)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	msgs := fixture()
	first, err := Analyze(msgs, "커피", Options{})
	require.NoError(t, err)
	second, err := Analyze(msgs, "커피", Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
