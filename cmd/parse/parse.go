package parse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/chatvibe/cmd/root"
	"github.com/neilberkman/chatvibe/internal/ingest"
	"github.com/neilberkman/chatvibe/internal/parser"
	"github.com/neilberkman/chatvibe/internal/rendering"
	"github.com/spf13/cobra"
)

var format string

// ParseCmd represents the parse command
var ParseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse an export and show what was found",
	Long: `Parse a KakaoTalk export and print a summary: encoding, speakers, message
counts and when the conversation started.

Examples:
  chatvibe parse KakaoTalk_20250902.txt
  chatvibe parse chat.zip!KakaoTalk_Chat.txt --format json
  cat chat.txt | chatvibe parse -`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	ParseCmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table/json)")
}

type summary struct {
	Name                  string          `json:"name"`
	Bytes                 int64           `json:"bytes"`
	Encoding              parser.Encoding `json:"encoding"`
	Fingerprint           string          `json:"fingerprint"`
	Speakers              []string        `json:"speakers"`
	ConversationStartDate string          `json:"conversationStartDate"`
	DaysSinceStart        int             `json:"daysSinceStart,omitempty"`
	TotalLines            int             `json:"totalLines"`
	ValidMessages         int             `json:"validMessages"`
	MediaMessages         int             `json:"mediaMessages"`
}

func runParse(cmd *cobra.Command, args []string) error {
	res, err := root.LoadExport(args[0])
	if err != nil {
		return fmt.Errorf("failed to load export: %w", err)
	}

	s := summarize(res, time.Now())
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	case "table":
		return outputTable(out, s)
	default:
		return fmt.Errorf("unknown format %q (use table or json)", format)
	}
}

func summarize(res *ingest.Result, now time.Time) summary {
	s := summary{
		Name:                  res.Stats.Name,
		Bytes:                 res.Stats.Bytes,
		Encoding:              res.Stats.Encoding,
		Fingerprint:           res.Stats.Fingerprint,
		Speakers:              res.Parse.Speakers,
		ConversationStartDate: res.Parse.ConversationStartDate,
		TotalLines:            res.Parse.TotalLines,
		ValidMessages:         res.Parse.ValidMessages,
	}
	if s.ConversationStartDate != "" {
		s.DaysSinceStart = parser.DaysSinceStart(s.ConversationStartDate, now)
	}
	for _, m := range res.Parse.Messages {
		if m.IsMediaLike {
			s.MediaMessages++
		}
	}
	return s
}

func outputTable(w io.Writer, s summary) error {
	if _, err := fmt.Fprintln(w, rendering.Title(s.Name)); err != nil {
		return err
	}

	start := "-"
	if s.ConversationStartDate != "" {
		start = fmt.Sprintf("%s (%s일째)", parser.FormatKoreanDate(s.ConversationStartDate), humanize.Comma(int64(s.DaysSinceStart)))
	}

	t := rendering.NewTable("항목", "값")
	t.AddRow("크기", humanize.Bytes(uint64(s.Bytes)))
	t.AddRow("인코딩", string(s.Encoding))
	t.AddRow("전체 줄", humanize.Comma(int64(s.TotalLines)))
	t.AddRow("메시지", humanize.Comma(int64(s.ValidMessages)))
	t.AddRow("미디어", humanize.Comma(int64(s.MediaMessages)))
	t.AddRow("화자", fmt.Sprintf("%d명: %s", len(s.Speakers), strings.Join(s.Speakers, ", ")))
	t.AddRow("대화 시작", start)
	if err := t.Render(w); err != nil {
		return err
	}

	if s.ValidMessages == 0 {
		_, err := fmt.Fprintln(w, "\nNo chat messages found. Is this a KakaoTalk export?")
		return err
	}
	return nil
}
