// Package selection resolves speaker names typed by a user against the
// speakers found in an export.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/multierr"
)

// ErrUnknownSpeaker is returned for a requested name no speaker matches.
var ErrUnknownSpeaker = errors.New("unknown speaker")

// MaxSuggestions caps the "did you mean" list.
const MaxSuggestions = 3

// Resolve maps requested names onto known speakers. Exact matches win,
// then case-insensitive ones. A nil request means no filter and returns
// nil; an empty non-nil request selects nobody. Every unresolved name is
// reported, each with fuzzy suggestions.
func Resolve(requested, known []string) ([]string, error) {
	if requested == nil {
		return nil, nil
	}

	exact := make(map[string]bool, len(known))
	folded := make(map[string]string, len(known))
	for _, k := range known {
		exact[k] = true
		if _, ok := folded[strings.ToLower(k)]; !ok {
			folded[strings.ToLower(k)] = k
		}
	}

	resolved := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	var errs error

	for _, name := range requested {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		match, ok := name, exact[name]
		if !ok {
			match, ok = folded[strings.ToLower(name)]
		}
		if !ok {
			errs = multierr.Append(errs, unknown(name, known))
			continue
		}
		if !seen[match] {
			seen[match] = true
			resolved = append(resolved, match)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return resolved, nil
}

// Suggest returns up to MaxSuggestions known speakers resembling name,
// best first.
func Suggest(name string, known []string) []string {
	matches := fuzzy.Find(name, known)
	out := make([]string, 0, min(len(matches), MaxSuggestions))
	for _, m := range matches {
		if len(out) == MaxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func unknown(name string, known []string) error {
	if s := Suggest(name, known); len(s) > 0 {
		return fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownSpeaker, name, strings.Join(s, ", "))
	}
	return fmt.Errorf("%w %q", ErrUnknownSpeaker, name)
}
