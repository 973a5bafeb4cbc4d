package config

import (
	"fmt"
	"io"

	"github.com/neilberkman/chatvibe/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var initFile bool

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration chatvibe is running with, after defaults, the config
file and CHATVIBE_* environment variables are merged.

Examples:
  chatvibe config          # Show effective configuration
  chatvibe config --init   # Write it to the config file`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	ConfigCmd.Flags().BoolVar(&initFile, "init", false, "write the effective configuration to the config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if initFile {
		if err := config.SaveDefaults(); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Wrote %s\n", config.ConfigFile())
		return nil
	}

	fmt.Fprintf(out, "# %s\n", config.ConfigFile())
	return writeSettings(out, viper.AllSettings())
}

// writeSettings prints settings as YAML with the API key masked.
func writeSettings(w io.Writer, settings map[string]any) error {
	if enrich, ok := settings["enrich"].(map[string]any); ok {
		if key, _ := enrich["api_key"].(string); key != "" {
			enrich["api_key"] = mask(key)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func mask(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "****" + key[len(key)-4:]
}
