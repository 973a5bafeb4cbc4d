package parse

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/neilberkman/chatvibe/internal/ingest"
	"github.com/neilberkman/chatvibe/internal/models"
)

const chat = `2025. 1. 2. 오전 9:00, 민수 : 점심 뭐 먹을까?
2025. 1. 2. 오전 9:01, 지영 : 사진
`

func load(t *testing.T) *ingest.Result {
	t.Helper()
	res, err := ingest.Load("KakaoTalk_chat.txt", strings.NewReader(chat))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return res
}

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 1, 11, 12, 0, 0, 0, models.KST)
	s := summarize(load(t), now)

	if s.Name != "KakaoTalk_chat.txt" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.ValidMessages != 2 {
		t.Errorf("ValidMessages = %d, want 2", s.ValidMessages)
	}
	if s.MediaMessages != 1 {
		t.Errorf("MediaMessages = %d, want 1", s.MediaMessages)
	}
	if s.ConversationStartDate != "2025-01-02" {
		t.Errorf("ConversationStartDate = %q", s.ConversationStartDate)
	}
	if s.DaysSinceStart != 10 {
		t.Errorf("DaysSinceStart = %d, want 10", s.DaysSinceStart)
	}
}

func TestOutputTable(t *testing.T) {
	var buf bytes.Buffer
	s := summarize(load(t), time.Date(2025, 1, 11, 12, 0, 0, 0, models.KST))
	if err := outputTable(&buf, s); err != nil {
		t.Fatalf("outputTable() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"2명: 민수, 지영", "2025년 1월 2일 목요일 (10일째)", "utf-8"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q\nOutput: %s", want, out)
		}
	}
}

func TestOutputTableNoMessages(t *testing.T) {
	var buf bytes.Buffer
	if err := outputTable(&buf, summary{Name: "notes.txt"}); err != nil {
		t.Fatalf("outputTable() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No chat messages found") {
		t.Errorf("expected empty notice, got %s", buf.String())
	}
}
