package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/chatvibe/internal/models"
)

const chat = `2025. 1. 2. 오전 9:00, 민수 : 점심 뭐 먹을까?
2025. 1. 2. 오전 9:01, 지영 : 점심 김치찌개 최고!
2025. 1. 2. 오후 11:30, 철수 : 점심 짜증나 ㅡㅡ
`

type result struct {
	RequestID string `json:"requestId"`
	Parse     struct {
		Speakers      []string `json:"speakers"`
		ValidMessages int      `json:"validMessages"`
		Encoding      string   `json:"encoding"`
	} `json:"parse"`
	Keyword *models.KeywordAnalysis `json:"keyword"`
	Words   []models.WordAnalysis   `json:"words"`
	Podium  []models.GlobalWordRank `json:"podium"`
	Vibe    models.VibeReport       `json:"vibe"`
	Error   string                  `json:"error"`
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	s, err := NewServer(opts)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Server, req *http.Request) (*httptest.ResponseRecorder, result) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var res result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return rec, res
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestAnalyzeRawBody(t *testing.T) {
	s := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze?keyword="+url.QueryEscape("점심"), strings.NewReader(chat))
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	rec, res := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, res.Error)

	assert.NotEmpty(t, res.RequestID)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), res.RequestID)
	assert.Equal(t, []string{"민수", "지영", "철수"}, res.Parse.Speakers)
	assert.Equal(t, 3, res.Parse.ValidMessages)
	assert.Equal(t, "utf-8", res.Parse.Encoding)
	require.NotNil(t, res.Keyword)
	assert.Equal(t, 3, res.Keyword.TotalHits)
	assert.Len(t, res.Words, 3)
	require.NotEmpty(t, res.Podium)
	assert.Equal(t, "점심", res.Podium[0].Word)
	assert.Len(t, res.Vibe.Speakers, 3)
	assert.Equal(t, models.SourceHeuristic, res.Vibe.Source)
}

func TestAnalyzeWithoutKeyword(t *testing.T) {
	s := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(chat))

	rec, res := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, res.Error)
	assert.Nil(t, res.Keyword)
	assert.NotContains(t, rec.Body.String(), `"keyword"`)
}

func TestAnalyzeMultipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "KakaoTalk_chat.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(chat))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("speaker", "지영"))
	require.NoError(t, mw.WriteField("praiseSensitivity", "90"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec, res := do(t, newTestServer(t, Options{}), req)
	require.Equal(t, http.StatusOK, rec.Code, res.Error)
	require.Len(t, res.Vibe.Speakers, 1)
	assert.Equal(t, "지영", res.Vibe.Speakers[0].Speaker)
	require.Len(t, res.Words, 1)
	assert.Equal(t, "지영", res.Words[0].Speaker)
}

func TestAnalyzeKeywordSummaryCountsBeforeFilter(t *testing.T) {
	s := newTestServer(t, Options{})
	target := "/api/v1/analyze?speaker=" + url.QueryEscape("지영") + "&keyword=" + url.QueryEscape("점심")
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(chat))

	rec, res := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, res.Error)
	require.NotNil(t, res.Keyword)
	assert.Equal(t, 1, res.Keyword.TotalHits)
	assert.Equal(t, 1, res.Keyword.Summary.AnalyzedLines)
	assert.Equal(t, 3, res.Keyword.Summary.TotalMessages)
}

func TestAnalyzeAIFallsBackWithoutEnricher(t *testing.T) {
	s := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze?ai=true", strings.NewReader(chat))

	rec, res := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code, res.Error)
	assert.Equal(t, models.SourceFallback, res.Vibe.Source)
}

func TestAnalyzeRequestIDEchoed(t *testing.T) {
	s := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(chat))
	req.Header.Set(RequestIDHeader, "req-123")

	rec, res := do(t, s, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", res.RequestID)
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		opts   Options
		status int
	}{
		{"wrong method", http.MethodGet, "/api/v1/analyze", "", Options{}, http.StatusMethodNotAllowed},
		{"empty body", http.MethodPost, "/api/v1/analyze", "", Options{}, http.StatusBadRequest},
		{"slider out of range", http.MethodPost, "/api/v1/analyze?praiseSensitivity=150", chat, Options{}, http.StatusBadRequest},
		{"slider not a number", http.MethodPost, "/api/v1/analyze?emotionSensitivity=abc", chat, Options{}, http.StatusBadRequest},
		{"bad ai flag", http.MethodPost, "/api/v1/analyze?ai=maybe", chat, Options{}, http.StatusBadRequest},
		{"unknown speaker", http.MethodPost, "/api/v1/analyze?speaker="+url.QueryEscape("영희"), chat, Options{}, http.StatusBadRequest},
		{"invalid pattern", http.MethodPost, "/api/v1/analyze?regex=true&keyword="+url.QueryEscape("("), chat, Options{}, http.StatusBadRequest},
		{"too large", http.MethodPost, "/api/v1/analyze", chat, Options{MaxUploadBytes: 16}, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.opts)
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))

			rec, res := do(t, s, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, res.Error)
			if tt.status == http.StatusMethodNotAllowed {
				assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
			}
		})
	}
}

func TestNewServerRejectsBadOptions(t *testing.T) {
	_, err := NewServer(Options{MaxUploadBytes: -1})
	assert.Error(t, err)

	bad := models.DefaultSettings()
	bad.QuestionSensitivity = 101
	_, err = NewServer(Options{Defaults: bad})
	assert.ErrorIs(t, err, models.ErrInvalidSettings)
}
