package root

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/neilberkman/chatvibe/internal/config"
	"github.com/neilberkman/chatvibe/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var (
	// Version information - will be set by goreleaser
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command
var RootCmd = &cobra.Command{
	Use:   "chatvibe",
	Short: "Analyze KakaoTalk chat exports",
	Long: `chatvibe reads a KakaoTalk chat export and reports who said what, how often,
and in what mood.

Everything runs locally on the export you pass in. Nothing is stored between
runs. AI nicknames are optional and fall back to the built-in heuristics.

Quick start:
  chatvibe discover                       # Find KakaoTalk exports
  chatvibe parse chat.txt                 # Check that an export parses
  chatvibe keyword chat.txt 점심          # Who mentions a keyword
  chatvibe words chat.txt                 # Top words per speaker
  chatvibe vibe chat.txt                  # Nicknames and room mood
  chatvibe export chat.txt -d reports/    # Write CSV and markdown reports`,
	Version:      Version,
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		slog.SetDefault(logging.New(viper.GetBool("verbose")))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/chatvibe/config.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	if err := viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("failed to bind flag: %v", err))
	}
}

// initConfig points viper at --config when given.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}
