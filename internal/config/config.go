package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/neilberkman/chatvibe/internal/enrich"
	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/pkg/platform"
	"github.com/spf13/viper"
)

const appName = "chatvibe"

type Config struct {
	Analysis struct {
		Settings     models.Settings `mapstructure:"settings"`
		LexiconPath  string          `mapstructure:"lexicon_path"`
		KeywordRegex bool            `mapstructure:"keyword_regex"`
	} `mapstructure:"analysis"`

	Words struct {
		TopN int `mapstructure:"top_n"`
	} `mapstructure:"words"`

	Enrich struct {
		Enabled        bool   `mapstructure:"enabled"`
		BaseURL        string `mapstructure:"base_url"`
		Model          string `mapstructure:"model"`
		APIKey         string `mapstructure:"api_key"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
		MaxRetries     int    `mapstructure:"max_retries"`
		PerSpeakerCap  int    `mapstructure:"per_speaker_cap"`
		GlobalCap      int    `mapstructure:"global_cap"`
		MinPerSpeaker  int    `mapstructure:"min_per_speaker"`
		MaxChars       int    `mapstructure:"max_chars"`
	} `mapstructure:"enrich"`

	Output struct {
		Format   string `mapstructure:"format"`
		Markdown bool   `mapstructure:"markdown"`
	} `mapstructure:"output"`

	Server struct {
		Listen      string `mapstructure:"listen"`
		MaxUploadMB int    `mapstructure:"max_upload_mb"`
	} `mapstructure:"server"`
}

var (
	cfg  *Config
	dirs *platform.Dirs
)

func Init() error {
	appDirs, err := platform.GetAppDirs(appName)
	if err != nil {
		return fmt.Errorf("failed to get app directories: %w", err)
	}
	dirs = appDirs

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dirs.Config)

	viper.SetEnvPrefix(appName)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("enrich.api_key", "CHATVIBE_ENRICH_API_KEY", "OPENAI_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind api key: %w", err)
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is fine
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Analysis.Settings.Validate(); err != nil {
		return fmt.Errorf("failed to validate analysis.settings: %w", err)
	}
	cfg = c

	return nil
}

func setDefaults() {
	d := models.DefaultSettings()
	viper.SetDefault("analysis.settings.aggressiveness_sensitivity", d.AggressivenessSensitivity)
	viper.SetDefault("analysis.settings.praise_sensitivity", d.PraiseSensitivity)
	viper.SetDefault("analysis.settings.question_sensitivity", d.QuestionSensitivity)
	viper.SetDefault("analysis.settings.emotion_sensitivity", d.EmotionSensitivity)
	viper.SetDefault("analysis.settings.message_length_sensitivity", d.MessageLengthSensitivity)
	viper.SetDefault("analysis.settings.time_pattern_sensitivity", d.TimePatternSensitivity)
	viper.SetDefault("analysis.lexicon_path", "")
	viper.SetDefault("analysis.keyword_regex", false)

	viper.SetDefault("words.top_n", 10)

	e := enrich.DefaultConfig()
	viper.SetDefault("enrich.enabled", false)
	viper.SetDefault("enrich.base_url", "")
	viper.SetDefault("enrich.model", e.Model)
	viper.SetDefault("enrich.api_key", "")
	viper.SetDefault("enrich.timeout_seconds", int(e.Timeout/time.Second))
	viper.SetDefault("enrich.max_retries", e.MaxRetries)
	viper.SetDefault("enrich.per_speaker_cap", e.Limits.PerSpeaker)
	viper.SetDefault("enrich.global_cap", e.Limits.Global)
	viper.SetDefault("enrich.min_per_speaker", e.Limits.MinPerSpeaker)
	viper.SetDefault("enrich.max_chars", e.Limits.MaxChars)

	viper.SetDefault("output.format", "table")
	viper.SetDefault("output.markdown", true)

	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("server.max_upload_mb", 20)
}

// EnrichConfig converts the enrich section into a client config.
func (c *Config) EnrichConfig() enrich.Config {
	return enrich.Config{
		Enabled:    c.Enrich.Enabled,
		APIKey:     c.Enrich.APIKey,
		BaseURL:    c.Enrich.BaseURL,
		Model:      c.Enrich.Model,
		Timeout:    time.Duration(c.Enrich.TimeoutSeconds) * time.Second,
		MaxRetries: c.Enrich.MaxRetries,
		Limits: enrich.Limits{
			PerSpeaker:    c.Enrich.PerSpeakerCap,
			Global:        c.Enrich.GlobalCap,
			MinPerSpeaker: c.Enrich.MinPerSpeaker,
			MaxChars:      c.Enrich.MaxChars,
		},
	}
}

// MaxUploadBytes is the server body cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

func GetDirs() *platform.Dirs {
	if dirs == nil {
		panic("config not initialized")
	}
	return dirs
}

// ConfigFile is the file the effective config was read from, or the
// default location when none exists yet.
func ConfigFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(GetDirs().Config, "config.yaml")
}

func SaveDefaults() error {
	configPath := filepath.Join(GetDirs().Config, "config.yaml")
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	return nil
}
