package enrich

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/multierr"
)

// Response is the JSON object the model is asked to produce.
type Response struct {
	RoomSummary string           `json:"roomSummary" jsonschema:"required"`
	Speakers    []SpeakerSummary `json:"speakerAnalyses" jsonschema:"required"`
}

// SpeakerSummary is the model's take on one speaker.
type SpeakerSummary struct {
	Speaker        string   `json:"speaker" jsonschema:"required"`
	Nickname       string   `json:"nickname" jsonschema:"required"`
	Traits         []string `json:"traits" jsonschema:"required"`
	FeatureSummary string   `json:"featureSummary" jsonschema:"required"`
	Analysis       string   `json:"analysis" jsonschema:"required"`
}

// Decode extracts and validates a response for speakers. Entries for
// speakers not asked about are dropped.
func Decode(text string, speakers []string) (*Response, error) {
	js, ok := ExtractJSON(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in %d bytes of output", ErrMalformed, len(text))
	}

	root := gjson.Parse(js)
	list := root.Get("speakerAnalyses")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: speakerAnalyses is missing or not a list", ErrMalformed)
	}

	wanted := make(map[string]bool, len(speakers))
	for _, s := range speakers {
		wanted[s] = true
	}

	resp := &Response{RoomSummary: strings.TrimSpace(root.Get("roomSummary").String())}
	seen := make(map[string]int, len(speakers))
	var errs error

	list.ForEach(func(_, item gjson.Result) bool {
		speaker := strings.TrimSpace(item.Get("speaker").String())
		if !wanted[speaker] {
			return true
		}
		seen[speaker]++
		if seen[speaker] > 1 {
			errs = multierr.Append(errs, fmt.Errorf("speaker %q appears more than once", speaker))
			return true
		}
		nickname := strings.TrimSpace(item.Get("nickname").String())
		if nickname == "" {
			errs = multierr.Append(errs, fmt.Errorf("speaker %q has no nickname", speaker))
			return true
		}
		resp.Speakers = append(resp.Speakers, SpeakerSummary{
			Speaker:        speaker,
			Nickname:       nickname,
			Traits:         readTraits(item.Get("traits")),
			FeatureSummary: strings.TrimSpace(item.Get("featureSummary").String()),
			Analysis:       strings.TrimSpace(item.Get("analysis").String()),
		})
		return true
	})

	for _, s := range speakers {
		if seen[s] == 0 {
			errs = multierr.Append(errs, fmt.Errorf("speaker %q is missing", s))
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncomplete, errs)
	}
	return resp, nil
}

// readTraits accepts a list or a comma separated string.
func readTraits(v gjson.Result) []string {
	var raw []string
	switch {
	case v.IsArray():
		for _, t := range v.Array() {
			raw = append(raw, t.String())
		}
	case v.Type == gjson.String:
		raw = strings.Split(v.String(), ",")
	}

	traits := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" && !contains(traits, t) {
			traits = append(traits, t)
		}
		if len(traits) == MaxTraits {
			break
		}
	}
	return traits
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
