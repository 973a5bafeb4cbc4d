package models

import (
	"time"
)

// KST is the fixed +09:00 zone every exported timestamp is interpreted in.
var KST = time.FixedZone("KST", 9*60*60)

// ParsedMessage represents one chat line, with continuation lines merged in
type ParsedMessage struct {
	Timestamp   time.Time `json:"datetimeISO"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM, 24-hour
	Speaker     string    `json:"speaker"`
	Text        string    `json:"text"`
	IsMediaLike bool      `json:"isMediaLike"`
}

// DatetimeISO returns the timestamp in the export's own offset
func (m ParsedMessage) DatetimeISO() string {
	return m.Timestamp.Format("2006-01-02T15:04:05-07:00")
}

// ParseResult is the normalized output of one export file
type ParseResult struct {
	Messages              []ParsedMessage `json:"messages"`
	Speakers              []string        `json:"speakers"`
	ConversationStartDate string          `json:"conversationStartDate"`
	TotalLines            int             `json:"totalLines"`
	ValidMessages         int             `json:"validMessages"`
}

// KeywordAnalysis is the result of scanning messages for one keyword
type KeywordAnalysis struct {
	Keyword      string                `json:"keyword"`
	TotalHits    int                   `json:"totalHits"`
	SpeakerStats []SpeakerKeywordStats `json:"speakerStats"`
	Timeline     []KeywordHit          `json:"timeline"`
	Summary      KeywordSummary        `json:"summary"`
}

// SpeakerKeywordStats aggregates keyword hits for one speaker
type SpeakerKeywordStats struct {
	Speaker      string `json:"speaker"`
	TotalHits    int    `json:"totalHits"`
	MessageCount int    `json:"messageCount"`
}

// KeywordHit is a single message that matched the keyword
type KeywordHit struct {
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Timestamp     time.Time `json:"datetimeISO"`
	Speaker       string    `json:"speaker"`
	Message       string    `json:"message"`
	HitsInMessage int       `json:"hitsInMessage"`
}

// KeywordSummary carries the message counts a keyword run was based on
type KeywordSummary struct {
	AnalyzedLines    int `json:"analyzedLines"`
	TotalMessages    int `json:"totalMessages"`
	TotalKeywordHits int `json:"totalKeywordHits"`
}

// WordAnalysis holds one speaker's top words and where they were used
type WordAnalysis struct {
	Speaker    string                 `json:"speaker"`
	TopWords   []WordCount            `json:"topWords"`
	WordUsages map[string][]WordUsage `json:"wordUsages"`
}

// WordCount is a ranked word
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

// WordUsage records one occurrence of a word
type WordUsage struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// GlobalWordRank is a word's standing across every speaker's top list
type GlobalWordRank struct {
	Word       string             `json:"word"`
	TotalCount int                `json:"totalCount"`
	TopSpeaker string             `json:"topSpeaker"`
	TopCount   int                `json:"topCount"`
	Speakers   []SpeakerWordCount `json:"allSpeakers"`
}

// SpeakerWordCount is one speaker's contribution to a GlobalWordRank
type SpeakerWordCount struct {
	Speaker string `json:"speaker"`
	Count   int    `json:"count"`
}

// SpeakerFeatures are the raw behavioral counters for one speaker
type SpeakerFeatures struct {
	PositiveCount        int              `json:"positiveCount"`
	NegativeCount        int              `json:"negativeCount"`
	SwearCount           int              `json:"swearCount"`
	QuestionCount        int              `json:"questionCount"`
	ExclamationCount     int              `json:"exclamationCount"`
	LinkCount            int              `json:"linkCount"`
	AverageMessageLength int              `json:"averageMessageLength"`
	TimeDistribution     TimeDistribution `json:"timeDistribution"`
}

// SpeakerVibeAnalysis is the nickname/trait result for one speaker
type SpeakerVibeAnalysis struct {
	Speaker          string          `json:"speaker"`
	Nickname         string          `json:"nickname"`
	Traits           []string        `json:"traits"`
	Features         SpeakerFeatures `json:"features"`
	EvidenceSnippets []string        `json:"evidenceSnippets"`
	FeatureSummary   string          `json:"featureSummary,omitempty"`
}

// VibeSource records which path produced a VibeReport
type VibeSource string

const (
	SourceHeuristic VibeSource = "heuristic"
	SourceAI        VibeSource = "ai"
	SourceFallback  VibeSource = "heuristic-fallback"
)

// VibeReport is the room-level output of a vibe analysis run
type VibeReport struct {
	RoomSummary string                `json:"roomSummary"`
	Speakers    []SpeakerVibeAnalysis `json:"speakerAnalyses"`
	Source      VibeSource            `json:"source"`
}

// FilterBySpeakers keeps the messages whose speaker is listed. A nil list
// means no filter; an empty non-nil list keeps nothing.
func FilterBySpeakers(messages []ParsedMessage, speakers []string) []ParsedMessage {
	if speakers == nil {
		return messages
	}
	allowed := make(map[string]struct{}, len(speakers))
	for _, s := range speakers {
		allowed[s] = struct{}{}
	}
	filtered := make([]ParsedMessage, 0, len(messages))
	for _, m := range messages {
		if _, ok := allowed[m.Speaker]; ok {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
