// Package enrich asks an external language model for nicknames and a room
// summary. It is never load-bearing: every failure comes back as an
// Outcome carrying an error, and callers keep the heuristic report.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neilberkman/chatvibe/internal/models"
)

var (
	ErrDisabled   = errors.New("enrichment disabled")
	ErrTimeout    = errors.New("enrichment timed out")
	ErrTransport  = errors.New("enrichment request failed")
	ErrMalformed  = errors.New("enrichment response is not valid JSON")
	ErrIncomplete = errors.New("enrichment response does not cover every speaker")
)

// MaxTraits caps the traits taken from a model response.
const MaxTraits = 4

// Config configures the enrichment client.
type Config struct {
	Enabled    bool
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Limits     Limits
}

// DefaultConfig returns the built-in settings with enrichment off.
func DefaultConfig() Config {
	return Config{
		Model:      "gpt-4o-mini",
		Timeout:    25 * time.Second,
		MaxRetries: 1,
		Limits:     DefaultLimits(),
	}
}

// Generator produces raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, instructions, input string) (string, error)
}

// Request is everything the model is shown.
type Request struct {
	Messages  []models.ParsedMessage
	Speakers  []string
	Settings  models.Settings
	Heuristic models.VibeReport
}

// Outcome is the result of one enrichment attempt. Exactly one of Result
// and Err is set.
type Outcome struct {
	Result *Response
	Err    error
}

// OK reports whether the attempt produced a usable response.
func (o Outcome) OK() bool { return o.Err == nil && o.Result != nil }

// Client runs enrichment requests.
type Client struct {
	cfg Config
	gen Generator
}

// NewClient builds a client backed by the OpenAI Responses API. A disabled
// config or a missing API key yields a client whose every call returns
// ErrDisabled.
func NewClient(cfg Config) *Client {
	c := &Client{cfg: cfg}
	if cfg.Enabled && cfg.APIKey != "" {
		c.gen = newOpenAIGenerator(cfg)
	}
	return c
}

// NewClientWithGenerator builds a client around any Generator.
func NewClientWithGenerator(cfg Config, gen Generator) *Client {
	return &Client{cfg: cfg, gen: gen}
}

// Enrich samples the conversation, asks the model and validates the answer.
func (c *Client) Enrich(ctx context.Context, req Request) Outcome {
	if c == nil || c.gen == nil || !c.cfg.Enabled {
		return Outcome{Err: ErrDisabled}
	}

	sample := Sample(req.Messages, req.Speakers, c.cfg.Limits)
	input, err := buildInput(req, sample)
	if err != nil {
		return Outcome{Err: fmt.Errorf("%w: %v", ErrTransport, err)}
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := c.gen.Generate(ctx, instructions, input)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Outcome{Err: fmt.Errorf("%w after %s: %v", ErrTimeout, timeout, err)}
		}
		return Outcome{Err: fmt.Errorf("%w: %v", ErrTransport, err)}
	}

	resp, err := Decode(text, req.Speakers)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Result: resp}
}
