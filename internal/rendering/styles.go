package rendering

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/neilberkman/chatvibe/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	nicknameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00D4AA"))

	traitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	medalStyles = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0C0C0")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CD7F32")),
	}
	medals = []string{"🥇", "🥈", "🥉"}
)

// Title styles a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Muted styles secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// NicknameCard renders one speaker's vibe as a bordered card at most width
// cells wide. URLs in evidence become hyperlinks when links is set.
func NicknameCard(a models.SpeakerVibeAnalysis, width int, links bool) string {
	var sb strings.Builder
	sb.WriteString(nicknameStyle.Render(a.Nickname))
	sb.WriteString(" " + mutedStyle.Render("("+a.Speaker+")") + "\n")

	badges := make([]string, len(a.Traits))
	for i, t := range a.Traits {
		badges[i] = traitStyle.Render("#" + t)
	}
	sb.WriteString(strings.Join(badges, " ") + "\n")

	f := a.Features
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("질문 %d · 감탄 %d · 링크 %d · 평균 %d자",
		f.QuestionCount, f.ExclamationCount, f.LinkCount, f.AverageMessageLength)) + "\n")
	sb.WriteString(mutedStyle.Render(f.TimeDistribution.String()))

	for _, e := range a.EvidenceSnippets {
		sb.WriteString("\n“" + LinkURLs(strings.ReplaceAll(e, "\n", " "), links) + "”")
	}

	style := cardStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(sb.String())
}

// PodiumLines renders the top words with medals.
func PodiumLines(podium []models.GlobalWordRank) []string {
	lines := make([]string, 0, len(podium))
	for i, p := range podium {
		style := medalStyles[i%len(medalStyles)]
		lines = append(lines, fmt.Sprintf("%s %s %s",
			medals[i%len(medals)],
			style.Render(p.Word),
			mutedStyle.Render(fmt.Sprintf("%s회 · %s %s회",
				humanize.Comma(int64(p.TotalCount)), p.TopSpeaker, humanize.Comma(int64(p.TopCount))))))
	}
	return lines
}
