package words

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/neilberkman/chatvibe/cmd/root"
	"github.com/neilberkman/chatvibe/internal/export"
	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/rendering"
	"github.com/neilberkman/chatvibe/internal/selection"
	"github.com/neilberkman/chatvibe/internal/words"
	"github.com/spf13/cobra"
)

var (
	speakers []string
	format   string
	usages   int
)

// WordsCmd represents the words command
var WordsCmd = &cobra.Command{
	Use:   "words FILE",
	Short: "Show each speaker's most used words",
	Long: `Show the ten most used words of every speaker, and the words that top the
whole room.

Examples:
  chatvibe words chat.txt
  chatvibe words chat.txt --speaker 민수 --usages 3
  chatvibe words chat.txt --format csv > words.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runWords,
}

func init() {
	WordsCmd.Flags().StringArrayVarP(&speakers, "speaker", "s", nil, "only analyze this speaker (repeatable)")
	WordsCmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table/json/csv)")
	WordsCmd.Flags().IntVarP(&usages, "usages", "u", 0, "show up to N messages using each word")
}

type result struct {
	Words   []models.WordAnalysis   `json:"words"`
	Podium  []models.GlobalWordRank `json:"podium"`
	Ranking []models.GlobalWordRank `json:"ranking"`
}

func runWords(cmd *cobra.Command, args []string) error {
	res, err := root.LoadExport(args[0])
	if err != nil {
		return fmt.Errorf("failed to load export: %w", err)
	}

	var selected []string
	if cmd.Flags().Changed("speaker") {
		if selected, err = selection.Resolve(speakers, res.Parse.Speakers); err != nil {
			return err
		}
	}

	analyses := words.Analyze(models.FilterBySpeakers(res.Parse.Messages, selected))
	r := result{
		Words:   analyses,
		Podium:  words.Podium(analyses),
		Ranking: words.GlobalRanking(analyses),
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case "csv":
		return export.WriteWordsCSV(out, r.Words)
	case "table":
		return outputTable(out, r, usages)
	default:
		return fmt.Errorf("unknown format %q (use table, json or csv)", format)
	}
}

func outputTable(w io.Writer, r result, usages int) error {
	if len(r.Words) == 0 {
		_, err := fmt.Fprintln(w, "No words found.")
		return err
	}

	for i, a := range r.Words {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, rendering.Title(a.Speaker)); err != nil {
			return err
		}

		t := rendering.NewTable("순위", "단어", "횟수")
		for _, wc := range a.TopWords {
			t.AddRow(strconv.Itoa(wc.Rank), wc.Word, strconv.Itoa(wc.Count))
		}
		if err := t.Render(w); err != nil {
			return err
		}

		if usages > 0 {
			if err := writeUsages(w, a, usages); err != nil {
				return err
			}
		}
	}

	if len(r.Podium) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\n"+rendering.Title("전체 순위")); err != nil {
		return err
	}
	for _, line := range rendering.PodiumLines(r.Podium) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeUsages(w io.Writer, a models.WordAnalysis, n int) error {
	for _, wc := range a.TopWords {
		list := a.WordUsages[wc.Word]
		if len(list) > n {
			list = list[:n]
		}
		for _, u := range list {
			line := fmt.Sprintf("  %s  %s %s  %s", wc.Word, u.Date, u.Time, strings.ReplaceAll(u.Message, "\n", " "))
			if _, err := fmt.Fprintln(w, rendering.Muted(line)); err != nil {
				return err
			}
		}
	}
	return nil
}
