package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML shape of a lexicon override. Lists left out keep the
// built-in words unless Replace is set.
type File struct {
	Replace  bool     `yaml:"replace"`
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
	Swear    []string `yaml:"swear"`
}

// LoadFile reads a YAML lexicon and compiles it. An empty path returns Default().
func LoadFile(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return Parse(data)
}

// Parse compiles a lexicon from YAML bytes.
func Parse(data []byte) (*Lexicon, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if f.Replace {
		return New(f.Positive, f.Negative, f.Swear), nil
	}
	return New(
		append(append([]string{}, defaultPositive...), f.Positive...),
		append(append([]string{}, defaultNegative...), f.Negative...),
		append(append([]string{}, defaultSwear...), f.Swear...),
	), nil
}
