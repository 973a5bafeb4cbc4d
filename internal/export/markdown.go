package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/chatvibe/internal/models"
	"github.com/neilberkman/chatvibe/internal/parser"
)

// Meta describes the export a report was made from.
type Meta struct {
	Name      string
	Bytes     int64
	StartDate string
	Messages  int
	Speakers  int
	Generated time.Time
}

var medals = []string{"🥇", "🥈", "🥉"}

var sourceLabels = map[models.VibeSource]string{
	models.SourceHeuristic: "휴리스틱",
	models.SourceAI:        "AI",
	models.SourceFallback:  "휴리스틱 (AI 실패)",
}

// VibeMarkdown renders the vibe report as a markdown document.
func VibeMarkdown(report models.VibeReport, meta Meta) string {
	var sb strings.Builder
	writeHeader(&sb, "대화 분위기 분석", meta)

	sb.WriteString("## 대화방 분위기\n\n")
	sb.WriteString(report.RoomSummary + "\n\n")
	if label, ok := sourceLabels[report.Source]; ok {
		sb.WriteString(fmt.Sprintf("_분석 방식: %s_\n\n", label))
	}

	if len(report.Speakers) == 0 {
		sb.WriteString("분석할 메시지가 없습니다.\n")
		return sb.String()
	}

	sb.WriteString("## 화자별 분석\n\n")
	for i, s := range report.Speakers {
		f := s.Features
		sb.WriteString(fmt.Sprintf("### %s (%s)\n\n", s.Nickname, s.Speaker))
		sb.WriteString(fmt.Sprintf("- **특징:** %s\n", strings.Join(s.Traits, ", ")))
		if s.FeatureSummary != "" {
			sb.WriteString(fmt.Sprintf("- **요약:** %s\n", s.FeatureSummary))
		}
		sb.WriteString(fmt.Sprintf("- **활동 시간대:** %s\n", f.TimeDistribution.String()))
		sb.WriteString(fmt.Sprintf("- **지표:** 긍정 %d · 부정 %d · 욕설 %d · 질문 %d · 감탄 %d · 링크 %d · 평균 %d자\n",
			f.PositiveCount, f.NegativeCount, f.SwearCount, f.QuestionCount,
			f.ExclamationCount, f.LinkCount, f.AverageMessageLength))

		if len(s.EvidenceSnippets) > 0 {
			sb.WriteString("\n")
			for _, e := range s.EvidenceSnippets {
				sb.WriteString("> " + strings.ReplaceAll(e, "\n", " ") + "\n")
			}
		}
		if i < len(report.Speakers)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// WordsMarkdown renders the podium and every speaker's top words.
func WordsMarkdown(analyses []models.WordAnalysis, podium []models.GlobalWordRank, meta Meta) string {
	var sb strings.Builder
	writeHeader(&sb, "자주 쓰는 단어", meta)

	if len(podium) > 0 {
		sb.WriteString("## 단어 포디움\n\n")
		for i, p := range podium {
			sb.WriteString(fmt.Sprintf("%s **%s** %s회 (최다: %s %s회)\n",
				medals[i%len(medals)], p.Word, humanize.Comma(int64(p.TotalCount)),
				p.TopSpeaker, humanize.Comma(int64(p.TopCount))))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## 화자별 상위 단어\n\n")
	if len(analyses) == 0 {
		sb.WriteString("분석할 단어가 없습니다.\n")
		return sb.String()
	}
	for _, a := range analyses {
		sb.WriteString(fmt.Sprintf("### %s\n\n", a.Speaker))
		sb.WriteString("| 순위 | 단어 | 횟수 |\n|---:|---|---:|\n")
		for _, w := range a.TopWords {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n", w.Rank, escapeCell(w.Word), humanize.Comma(int64(w.Count))))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeHeader(sb *strings.Builder, title string, meta Meta) {
	if meta.Name != "" {
		sb.WriteString(fmt.Sprintf("# %s: %s\n\n", title, meta.Name))
	} else {
		sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	}

	if meta.StartDate != "" {
		line := fmt.Sprintf("**대화 시작:** %s", parser.FormatKoreanDate(meta.StartDate))
		if !meta.Generated.IsZero() {
			line += fmt.Sprintf(" (%d일째)", parser.DaysSinceStart(meta.StartDate, meta.Generated))
		}
		sb.WriteString(line + "\n\n")
	}

	parts := []string{
		fmt.Sprintf("**메시지:** %s개", humanize.Comma(int64(meta.Messages))),
		fmt.Sprintf("**참여자:** %d명", meta.Speakers),
	}
	if meta.Bytes > 0 {
		parts = append(parts, fmt.Sprintf("**파일 크기:** %s", humanize.Bytes(uint64(meta.Bytes))))
	}
	sb.WriteString(strings.Join(parts, " · ") + "\n\n")
	sb.WriteString("---\n\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// WriteFile writes data to outputPath, creating its directory.
func WriteFile(outputPath string, data []byte) error {
	outputDir := filepath.Dir(outputPath)
	if outputDir != "." && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(outputPath), err)
	}
	return nil
}

// GenerateDefaultFilename builds "<name>-<kind>-<timestamp>.<ext>" from an
// export file name.
func GenerateDefaultFilename(name, kind, ext string, now time.Time) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '-'
		}
		return r
	}, name)

	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) > 100 {
		name = string(runes[:100])
	}
	if name == "" {
		name = "chat"
	}

	return fmt.Sprintf("%s-%s-%s.%s", name, kind, now.Format("20060102-150405"), ext)
}

// Bundle is everything one export run writes.
type Bundle struct {
	Meta    Meta
	Keyword *models.KeywordAnalysis
	Words   []models.WordAnalysis
	Podium  []models.GlobalWordRank
	Vibe    models.VibeReport
}

// WriteBundle writes the CSV and markdown files for b into dir and returns
// their paths. Keyword files are only written when b.Keyword is set.
func WriteBundle(dir string, b Bundle) ([]string, error) {
	type file struct {
		kind, ext string
		render    func(*bytes.Buffer) error
	}
	files := []file{
		{"words", "csv", func(buf *bytes.Buffer) error { return WriteWordsCSV(buf, b.Words) }},
		{"words", "md", func(buf *bytes.Buffer) error {
			buf.WriteString(WordsMarkdown(b.Words, b.Podium, b.Meta))
			return nil
		}},
		{"vibe", "md", func(buf *bytes.Buffer) error {
			buf.WriteString(VibeMarkdown(b.Vibe, b.Meta))
			return nil
		}},
	}
	if b.Keyword != nil {
		ka := *b.Keyword
		files = append(files,
			file{"keyword-summary", "csv", func(buf *bytes.Buffer) error { return WriteKeywordSummaryCSV(buf, ka) }},
			file{"keyword-details", "csv", func(buf *bytes.Buffer) error { return WriteKeywordDetailsCSV(buf, ka) }},
		)
	}

	now := b.Meta.Generated
	if now.IsZero() {
		now = time.Now()
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		var buf bytes.Buffer
		if err := f.render(&buf); err != nil {
			return paths, fmt.Errorf("failed to render %s: %w", f.kind, err)
		}
		path := filepath.Join(dir, GenerateDefaultFilename(b.Meta.Name, f.kind, f.ext, now))
		if err := WriteFile(path, buf.Bytes()); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
