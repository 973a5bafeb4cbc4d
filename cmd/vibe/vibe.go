package vibe

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/neilberkman/chatvibe/cmd/root"
	"github.com/neilberkman/chatvibe/internal/clipboard"
	"github.com/neilberkman/chatvibe/internal/config"
	"github.com/neilberkman/chatvibe/internal/export"
	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/pipeline"
	"github.com/neilberkman/chatvibe/internal/rendering"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	speakers []string
	useAI    bool
	format   string
	copyOut  bool
)

// VibeCmd represents the vibe command
var VibeCmd = &cobra.Command{
	Use:   "vibe FILE",
	Short: "Give every speaker a nickname and describe the room",
	Long: `Score every speaker on a handful of traits, assign each a unique nickname and
summarize the mood of the room.

The sliders (0-100) make a trait easier or harder to earn. Their defaults come
from analysis.settings in the config file. With --ai, a language model writes
the nicknames; if it is unavailable the heuristic result is kept.

Examples:
  chatvibe vibe chat.txt
  chatvibe vibe chat.txt --praise 80 --aggressiveness 20
  chatvibe vibe chat.txt --ai --format markdown --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runVibe,
}

// sliderFlags maps each slider flag onto its analysis.settings key.
var sliderFlags = []struct {
	name  string
	key   string
	usage string
}{
	{"aggressiveness", "aggressiveness_sensitivity", "sensitivity to swearing and negativity"},
	{"praise", "praise_sensitivity", "sensitivity to positive words"},
	{"question", "question_sensitivity", "sensitivity to questions"},
	{"emotion", "emotion_sensitivity", "sensitivity to exclamations"},
	{"length", "message_length_sensitivity", "sensitivity to long messages"},
	{"time-pattern", "time_pattern_sensitivity", "sensitivity to night and morning activity"},
}

// bindSliders registers the slider flags on cmd and binds them to viper, so
// a flag given on the command line overrides the config file.
func bindSliders(cmd *cobra.Command) {
	for _, f := range sliderFlags {
		cmd.Flags().Int(f.name, 50, f.usage+" (0-100)")
		if err := viper.BindPFlag("analysis.settings."+f.key, cmd.Flags().Lookup(f.name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}
}

func init() {
	VibeCmd.Flags().StringArrayVarP(&speakers, "speaker", "s", nil, "only analyze this speaker (repeatable)")
	bindSliders(VibeCmd)
	VibeCmd.Flags().BoolVar(&useAI, "ai", false, "ask the configured language model for nicknames")
	VibeCmd.Flags().StringVarP(&format, "format", "f", "", "output format (table/json/markdown, default from output.format)")
	VibeCmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "copy the report to the clipboard as plain text")
}

func runVibe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	res, err := root.LoadExport(args[0])
	if err != nil {
		return fmt.Errorf("failed to load export: %w", err)
	}
	lex, err := root.Lexicon()
	if err != nil {
		return err
	}

	var selected []string
	if cmd.Flags().Changed("speaker") {
		selected = speakers
	}

	in := pipeline.Input{
		Parse:    res.Parse,
		Speakers: selected,
		Settings: cfg.Analysis.Settings,
		Lexicon:  lex,
		AI:       useAI,
		Logger:   slog.Default(),
	}
	if useAI {
		in.Enricher = root.Enricher()
	}

	out, err := pipeline.Run(cmd.Context(), in)
	if err != nil {
		return err
	}

	report := export.VibeMarkdown(out.Vibe, root.Meta(res, len(out.Speakers)))
	if copyOut {
		if err := clipboard.Copy(rendering.StripMarkdown(report)); err != nil {
			slog.Warn("failed to copy report", "error", err)
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied report to clipboard.")
		}
	}

	f := format
	if f == "" {
		f = cfg.Output.Format
	}

	w := cmd.OutOrStdout()
	switch f {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out.Vibe)
	case "markdown":
		_, err := io.WriteString(w, rendering.RenderForTerminal(report, cfg.Output.Markdown))
		return err
	case "table":
		return outputCards(w, out.Vibe)
	default:
		return fmt.Errorf("unknown format %q (use table, json or markdown)", f)
	}
}

func outputCards(w io.Writer, report models.VibeReport) error {
	caps := rendering.DetectTerminalCapabilities()

	if _, err := fmt.Fprintln(w, rendering.Title("대화방 분위기")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, report.RoomSummary); err != nil {
		return err
	}
	if report.Source != models.SourceHeuristic {
		if _, err := fmt.Fprintln(w, rendering.Muted("source: "+string(report.Source))); err != nil {
			return err
		}
	}

	for _, a := range report.Speakers {
		if _, err := fmt.Fprintln(w, rendering.NicknameCard(a, caps.Width, caps.SupportsHyperlinks)); err != nil {
			return err
		}
	}
	return nil
}
