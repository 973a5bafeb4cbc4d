package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"hangul words", "오늘 점심 뭐 먹지", []string{"오늘", "점심", "먹지"}},
		{"class order", "Go 2025 버전 OK 나옴 12", []string{"버전", "나옴", "go", "ok", "2025", "12"}},
		{"urls removed", "이거 봐 https://example.com/path?q=1 대박", []string{"이거", "대박"}},
		{"emails removed", "메일 minsu.kim@example.co.kr 로 보내", []string{"메일", "보내"}},
		{"laughter removed", "ㅋㅋㅋㅋ 웃기다 ㅠㅠㅠ", []string{"웃기다"}},
		{"short laughter is not a token either", "ㅋㅋ 진짜", []string{"진짜"}},
		{"laughter joins neighbours", "진짜ㅋㅋㅋ웃겨", []string{"진짜웃겨"}},
		{"single characters ignored", "a 1 가", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a b", Clean("  a \n\t b  "))
	assert.Equal(t, "링크", Clean("링크 http://naver.com"))
	assert.Equal(t, "", Clean("ㅎㅎㅎ"))
}
