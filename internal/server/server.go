// Package server exposes the analysis pipeline as a single stateless HTTP
// endpoint. Nothing from one request is kept for the next.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neilberkman/chatvibe/internal/enrich"
	"github.com/neilberkman/chatvibe/internal/ingest"
	"github.com/neilberkman/chatvibe/internal/lexicon"
	"github.com/neilberkman/chatvibe/internal/logging"
	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/parser"
	"github.com/neilberkman/chatvibe/internal/pipeline"
)

// DefaultMaxUploadBytes applies when Options leaves the cap unset.
const DefaultMaxUploadBytes = 20 << 20

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Options configures a Server.
type Options struct {
	MaxUploadBytes int64
	// Defaults are the slider values used when a request omits one.
	Defaults models.Settings
	Lexicon  *lexicon.Lexicon
	Enricher *enrich.Client
	Logger   *slog.Logger
}

// Server serves POST /api/v1/analyze and GET /healthz.
type Server struct {
	opts Options
	mux  *http.ServeMux
	log  *slog.Logger
}

// NewServer validates opts and registers the routes.
func NewServer(opts Options) (*Server, error) {
	if opts.MaxUploadBytes < 0 {
		return nil, fmt.Errorf("max upload size must not be negative, got %d", opts.MaxUploadBytes)
	}
	if opts.MaxUploadBytes == 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.Defaults == (models.Settings{}) {
		opts.Defaults = models.DefaultSettings()
	}
	if err := opts.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate default settings: %w", err)
	}
	if opts.Lexicon == nil {
		opts.Lexicon = lexicon.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	s := &Server{opts: opts, mux: http.NewServeMux(), log: log}
	s.registerRoutes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, id)
	r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	s.log.Info("request",
		"id", id,
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start))
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

type requestIDKey struct{}

// RequestID returns the id assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type parseSummary struct {
	Speakers              []string        `json:"speakers"`
	ConversationStartDate string          `json:"conversationStartDate"`
	TotalLines            int             `json:"totalLines"`
	ValidMessages         int             `json:"validMessages"`
	Encoding              parser.Encoding `json:"encoding"`
}

type analyzeResponse struct {
	RequestID string                  `json:"requestId"`
	Parse     parseSummary            `json:"parse"`
	Keyword   *models.KeywordAnalysis `json:"keyword,omitempty"`
	Words     []models.WordAnalysis   `json:"words"`
	Podium    []models.GlobalWordRank `json:"podium"`
	Vibe      models.VibeReport       `json:"vibe"`
}

var sliderParams = []struct {
	name string
	set  func(*models.Settings, int)
}{
	{"aggressivenessSensitivity", func(s *models.Settings, v int) { s.AggressivenessSensitivity = v }},
	{"praiseSensitivity", func(s *models.Settings, v int) { s.PraiseSensitivity = v }},
	{"questionSensitivity", func(s *models.Settings, v int) { s.QuestionSensitivity = v }},
	{"emotionSensitivity", func(s *models.Settings, v int) { s.EmotionSensitivity = v }},
	{"messageLengthSensitivity", func(s *models.Settings, v int) { s.MessageLengthSensitivity = v }},
	{"timePatternSensitivity", func(s *models.Settings, v int) { s.TimePatternSensitivity = v }},
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	name, body, values, err := s.readUpload(r)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	if body != nil {
		defer body.Close()
	}

	settings, err := s.settingsFrom(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ai := false
	if v := values.Get("ai"); v != "" {
		if ai, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("ai must be a boolean, got %q", v))
			return
		}
	}
	regex := false
	if v := values.Get("regex"); v != "" {
		if regex, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("regex must be a boolean, got %q", v))
			return
		}
	}

	res, err := ingest.Load(name, body)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	out, err := pipeline.Run(r.Context(), pipeline.Input{
		Parse:    res.Parse,
		Speakers: values["speaker"],
		Keyword:  strings.TrimSpace(values.Get("keyword")),
		Regex:    regex,
		Settings: settings,
		Lexicon:  s.opts.Lexicon,
		AI:       ai,
		Enricher: s.opts.Enricher,
		Logger:   s.log.With("id", RequestID(r.Context())),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := analyzeResponse{
		RequestID: RequestID(r.Context()),
		Parse: parseSummary{
			Speakers:              res.Parse.Speakers,
			ConversationStartDate: res.Parse.ConversationStartDate,
			TotalLines:            res.Parse.TotalLines,
			ValidMessages:         res.Parse.ValidMessages,
			Encoding:              res.Stats.Encoding,
		},
		Keyword: out.Keyword,
		Words:   nonNil(out.Words),
		Podium:  nonNil(out.Podium),
		Vibe:    out.Vibe,
	}
	resp.Parse.Speakers = nonNil(resp.Parse.Speakers)
	resp.Vibe.Speakers = nonNil(resp.Vibe.Speakers)
	writeJSON(w, http.StatusOK, resp)
}

// readUpload returns the export body and the request parameters. A
// multipart request carries the export in its "file" part; anything else
// is the export itself with parameters in the query string.
func (s *Server) readUpload(r *http.Request) (string, io.ReadCloser, url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return "upload.txt", r.Body, r.URL.Query(), nil
	}

	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		return "", nil, nil, fmt.Errorf("failed to parse form: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, nil, fmt.Errorf("%w: missing file part", ingest.ErrEmptyInput)
	}
	return header.Filename, file, r.Form, nil
}

func (s *Server) settingsFrom(values url.Values) (models.Settings, error) {
	settings := s.opts.Defaults
	for _, p := range sliderParams {
		raw := first(values[p.name])
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return settings, fmt.Errorf("%w: %s must be an integer, got %q", models.ErrInvalidSettings, p.name, raw)
		}
		p.set(&settings, v)
	}
	return settings, settings.Validate()
}

func first(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return strings.TrimSpace(v[0])
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeUploadError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, ingest.ErrTooLarge),
		strings.Contains(err.Error(), "request body too large"):
		writeError(w, http.StatusRequestEntityTooLarge, errors.New("export is too large"))
	default:
		writeError(w, http.StatusBadRequest, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	type resp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, resp{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("only %s is supported", allow))
}
