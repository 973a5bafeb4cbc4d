package models

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrInvalidSettings is returned when a slider is outside 0-100.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the six user-tunable sensitivity sliders, each 0-100.
type Settings struct {
	AggressivenessSensitivity int `json:"aggressivenessSensitivity" mapstructure:"aggressiveness_sensitivity"`
	PraiseSensitivity         int `json:"praiseSensitivity" mapstructure:"praise_sensitivity"`
	QuestionSensitivity       int `json:"questionSensitivity" mapstructure:"question_sensitivity"`
	EmotionSensitivity        int `json:"emotionSensitivity" mapstructure:"emotion_sensitivity"`
	MessageLengthSensitivity  int `json:"messageLengthSensitivity" mapstructure:"message_length_sensitivity"`
	TimePatternSensitivity    int `json:"timePatternSensitivity" mapstructure:"time_pattern_sensitivity"`
}

// DefaultSettings puts every slider at 50.
func DefaultSettings() Settings {
	return Settings{
		AggressivenessSensitivity: 50,
		PraiseSensitivity:         50,
		QuestionSensitivity:       50,
		EmotionSensitivity:        50,
		MessageLengthSensitivity:  50,
		TimePatternSensitivity:    50,
	}
}

// Validate reports every slider outside 0-100.
func (s Settings) Validate() error {
	var err error
	for _, f := range []struct {
		name  string
		value int
	}{
		{"aggressivenessSensitivity", s.AggressivenessSensitivity},
		{"praiseSensitivity", s.PraiseSensitivity},
		{"questionSensitivity", s.QuestionSensitivity},
		{"emotionSensitivity", s.EmotionSensitivity},
		{"messageLengthSensitivity", s.MessageLengthSensitivity},
		{"timePatternSensitivity", s.TimePatternSensitivity},
	} {
		if f.value < 0 || f.value > 100 {
			err = multierr.Append(err, fmt.Errorf("%w: %s must be between 0 and 100, got %d", ErrInvalidSettings, f.name, f.value))
		}
	}
	return err
}
