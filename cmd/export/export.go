package export

import (
	"fmt"
	"log/slog"

	"github.com/neilberkman/chatvibe/cmd/root"
	"github.com/neilberkman/chatvibe/internal/config"
	"github.com/neilberkman/chatvibe/internal/export"
	"github.com/neilberkman/chatvibe/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outputDir string
	keyword   string
	speakers  []string
	regex     bool
	useAI     bool
	quiet     bool
)

// ExportCmd represents the export command
var ExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write CSV and markdown reports for an export",
	Long: `Run every analysis on an export and write the results to a directory:

  <name>-words-<time>.csv             speaker, rank, word, count
  <name>-words-<time>.md              top words and the overall podium
  <name>-vibe-<time>.md               nicknames, traits and room mood
  <name>-keyword-summary-<time>.csv   with --keyword
  <name>-keyword-details-<time>.csv   with --keyword

CSV files are UTF-8 with a byte order mark so spreadsheet apps read Hangul
correctly.

Examples:
  chatvibe export chat.txt -d reports/
  chatvibe export chat.txt -d reports/ --keyword 점심 --speaker 지영`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	ExportCmd.Flags().StringVarP(&outputDir, "dir", "d", "", "output directory (required)")
	ExportCmd.Flags().StringVarP(&keyword, "keyword", "k", "", "also export keyword hits for this keyword")
	ExportCmd.Flags().StringArrayVarP(&speakers, "speaker", "s", nil, "only analyze this speaker (repeatable)")
	ExportCmd.Flags().BoolVarP(&regex, "regex", "r", false, "treat --keyword as a regular expression")
	ExportCmd.Flags().BoolVar(&useAI, "ai", false, "ask the configured language model for nicknames")
	ExportCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress status messages")
	_ = ExportCmd.MarkFlagRequired("dir")
}

func runExport(cmd *cobra.Command, args []string) error {
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
	useRegex := regex
	if !cmd.Flags().Changed("regex") {
		useRegex = cfg.Analysis.KeywordRegex
	}

	in := pipeline.Input{
		Parse:    res.Parse,
		Speakers: selected,
		Keyword:  keyword,
		Regex:    useRegex,
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

	paths, err := export.WriteBundle(outputDir, export.Bundle{
		Meta:    root.Meta(res, len(out.Speakers)),
		Keyword: out.Keyword,
		Words:   out.Words,
		Podium:  out.Podium,
		Vibe:    out.Vibe,
	})
	if err != nil {
		return fmt.Errorf("failed to write reports: %w", err)
	}

	if !quiet {
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", p)
		}
	}
	return nil
}
