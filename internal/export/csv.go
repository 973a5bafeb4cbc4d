package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/neilberkman/chatvibe/internal/models"
)

// BOM makes spreadsheet apps read the CSV as UTF-8.
const BOM = "\ufeff"

const isoLayout = "2006-01-02T15:04:05-07:00"

// WriteKeywordSummaryCSV writes one row per speaker.
func WriteKeywordSummaryCSV(w io.Writer, ka models.KeywordAnalysis) error {
	rows := make([][]string, 0, len(ka.SpeakerStats))
	for _, s := range ka.SpeakerStats {
		rows = append(rows, []string{s.Speaker, strconv.Itoa(s.TotalHits), strconv.Itoa(s.MessageCount)})
	}
	return writeCSV(w, []string{"speaker", "total_keyword_hits", "keyword_message_count"}, rows)
}

// WriteKeywordDetailsCSV writes the timeline, newest first.
func WriteKeywordDetailsCSV(w io.Writer, ka models.KeywordAnalysis) error {
	rows := make([][]string, 0, len(ka.Timeline))
	for _, h := range ka.Timeline {
		rows = append(rows, []string{
			h.Date,
			h.Time,
			h.Timestamp.Format(isoLayout),
			h.Speaker,
			h.Message,
			strconv.Itoa(h.HitsInMessage),
		})
	}
	return writeCSV(w, []string{"date", "time", "datetime_iso", "speaker", "message", "keyword_hits_in_message"}, rows)
}

// WriteWordsCSV writes every ranked word of every speaker.
func WriteWordsCSV(w io.Writer, analyses []models.WordAnalysis) error {
	var rows [][]string
	for _, a := range analyses {
		for _, wc := range a.TopWords {
			rows = append(rows, []string{a.Speaker, strconv.Itoa(wc.Rank), wc.Word, strconv.Itoa(wc.Count)})
		}
	}
	return writeCSV(w, []string{"speaker", "rank", "word", "count"}, rows)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := io.WriteString(w, BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}
