package rendering

import (
	"strings"
	"testing"

	"github.com/neilberkman/chatvibe/internal/models"
)

func TestNicknameCard(t *testing.T) {
	a := models.SpeakerVibeAnalysis{
		Speaker:          "민수",
		Nickname:         "질문요정민수",
		Traits:           []string{"호기심", "수다"},
		EvidenceSnippets: []string{"이거 뭐야?"},
		Features:         models.SpeakerFeatures{QuestionCount: 4},
	}

	card := NicknameCard(a, 60, false)
	for _, want := range []string{"질문요정민수", "(민수)", "#호기심", "#수다", "질문 4", "이거 뭐야?", "데이터 없음"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

func TestPodiumLines(t *testing.T) {
	lines := PodiumLines([]models.GlobalWordRank{
		{Word: "점심", TotalCount: 1200, TopSpeaker: "민수", TopCount: 700},
		{Word: "커피", TotalCount: 3, TopSpeaker: "지영", TopCount: 2},
	})
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "🥇") || !strings.Contains(lines[0], "1,200회") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "🥈") {
		t.Errorf("unexpected second line %q", lines[1])
	}
}
