package keyword

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/neilberkman/chatvibe/cmd/root"
	"github.com/neilberkman/chatvibe/internal/config"
	"github.com/neilberkman/chatvibe/internal/export"
	"github.com/neilberkman/chatvibe/internal/keyword"
	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/rendering"
	"github.com/neilberkman/chatvibe/internal/selection"
	"github.com/spf13/cobra"
)

var (
	speakers []string
	regex    bool
	format   string
	details  bool
	limit    int
)

// KeywordCmd represents the keyword command
var KeywordCmd = &cobra.Command{
	Use:   "keyword FILE KEYWORD",
	Short: "Count who mentions a keyword",
	Long: `Count how often each speaker mentions a keyword, and list the messages that
contain it, newest first.

Matching is literal and case-insensitive unless --regex is given.

Examples:
  chatvibe keyword chat.txt 점심
  chatvibe keyword chat.txt 점심 --speaker 지영 --details
  chatvibe keyword chat.txt '맛집|카페' --regex --format csv > hits.csv`,
	Args: cobra.ExactArgs(2),
	RunE: runKeyword,
}

func init() {
	KeywordCmd.Flags().StringArrayVarP(&speakers, "speaker", "s", nil, "only analyze this speaker (repeatable)")
	KeywordCmd.Flags().BoolVarP(&regex, "regex", "r", false, "treat KEYWORD as a regular expression")
	KeywordCmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table/json/csv)")
	KeywordCmd.Flags().BoolVarP(&details, "details", "d", false, "list matching messages instead of the per-speaker summary")
	KeywordCmd.Flags().IntVarP(&limit, "limit", "l", 20, "maximum matching messages shown in table output (0 for all)")
}

func runKeyword(cmd *cobra.Command, args []string) error {
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

	useRegex := regex
	if !cmd.Flags().Changed("regex") {
		useRegex = config.Get().Analysis.KeywordRegex
	}

	ka, err := keyword.Analyze(res.Parse.Messages, args[1], keyword.Options{Regex: useRegex, Speakers: selected})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(ka)
	case "csv":
		if details {
			return export.WriteKeywordDetailsCSV(out, ka)
		}
		return export.WriteKeywordSummaryCSV(out, ka)
	case "table":
		if details {
			return outputDetails(out, ka, limit)
		}
		return outputSummary(out, ka)
	default:
		return fmt.Errorf("unknown format %q (use table, json or csv)", format)
	}
}

func outputSummary(w io.Writer, ka models.KeywordAnalysis) error {
	if ka.TotalHits == 0 {
		_, err := fmt.Fprintf(w, "No messages mention %q.\n", ka.Keyword)
		return err
	}

	t := rendering.NewTable("화자", "언급 횟수", "메시지 수")
	for _, s := range ka.SpeakerStats {
		t.AddRow(s.Speaker, strconv.Itoa(s.TotalHits), strconv.Itoa(s.MessageCount))
	}
	if err := t.Render(w); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%q: %d hits in %d of %d messages\n",
		ka.Keyword, ka.TotalHits, len(ka.Timeline), ka.Summary.AnalyzedLines)
	return err
}

func outputDetails(w io.Writer, ka models.KeywordAnalysis, limit int) error {
	hits := ka.Timeline
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	t := rendering.NewTable("날짜", "시간", "화자", "횟수", "메시지")
	t.MaxCellWidth = 60
	for _, h := range hits {
		t.AddRow(h.Date, h.Time, h.Speaker, strconv.Itoa(h.HitsInMessage), strings.ReplaceAll(h.Message, "\n", " "))
	}
	if err := t.Render(w); err != nil {
		return err
	}

	if len(hits) < len(ka.Timeline) {
		_, err := fmt.Fprintf(w, "\n%d more (use --limit 0 to show all)\n", len(ka.Timeline)-len(hits))
		return err
	}
	return nil
}
