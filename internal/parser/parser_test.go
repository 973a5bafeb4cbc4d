package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/neilberkman/chatvibe/internal/models"
)

func TestDesktopLines(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		date    string
		time    string
		speaker string
		text    string
	}{
		{"form A afternoon", "2025. 1. 2. 오후 3:05, 민수 : 안녕", "2025-01-02", "15:05", "민수", "안녕"},
		{"form A midnight", "2025. 1. 2. 오전 12:30, 민수 : 자니", "2025-01-02", "00:30", "민수", "자니"},
		{"form A noon", "2025. 1. 2. 오후 12:30, 민수 : 점심", "2025-01-02", "12:30", "민수", "점심"},
		{"form A morning", "2025.11.20. 오전 9:41, 지영 : 출근", "2025-11-20", "09:41", "지영", "출근"},
		{"form B", "[2025. 1. 2. 오후 3:05] 민수 : 안녕", "2025-01-02", "15:05", "민수", "안녕"},
		{"text keeps colons", "2025. 1. 2. 오후 3:05, 민수 : 시간은 3:30", "2025-01-02", "15:05", "민수", "시간은 3:30"},
		{"speaker is trimmed", "2025. 1. 2. 오후 3:05,   김 민수   : 안녕", "2025-01-02", "15:05", "김 민수", "안녕"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseText(tt.line)
			require.Len(t, res.Messages, 1)
			m := res.Messages[0]
			assert.Equal(t, tt.date, m.Date)
			assert.Equal(t, tt.time, m.Time)
			assert.Equal(t, tt.speaker, m.Speaker)
			assert.Equal(t, tt.text, m.Text)
			assert.Equal(t, tt.date+"T"+tt.time+":00+09:00", m.DatetimeISO())
		})
	}
}

func TestMobileExport(t *testing.T) {
	input := strings.Join([]string{
		"지영 님과 카카오톡 대화",
		"저장한 날짜 : 2025-09-03 10:00:00",
		"",
		"[민수] [오전 9:00] 이 줄은 날짜가 없어서 버려짐",
		"--------------- 2025년 9월 2일 화요일 ---------------",
		"[민수] [오후 11:30] 늦었다",
		"[지영] [21:15] 24시간 표기",
		"--------------- 2025년 9월 3일 수요일 ---------------",
		"[민수] [오전 7:05] 좋은 아침",
		"[지영] [오후] 시간 없음",
	}, "\n")

	res := ParseText(input)
	require.Len(t, res.Messages, 4)

	assert.Equal(t, "2025-09-02", res.Messages[0].Date)
	assert.Equal(t, "23:30", res.Messages[0].Time)
	assert.Equal(t, "2025-09-02", res.Messages[1].Date)
	assert.Equal(t, "21:15", res.Messages[1].Time)
	assert.Equal(t, "2025-09-03", res.Messages[2].Date)
	assert.Equal(t, "07:05", res.Messages[2].Time)
	assert.Equal(t, "12:00", res.Messages[3].Time, "a bare 오후 is read as 오후 00:00")

	assert.Equal(t, "2025-09-02", res.ConversationStartDate)
	assert.Equal(t, []string{"민수", "지영"}, res.Speakers)
	assert.Equal(t, 10, res.TotalLines)
	assert.Equal(t, 4, res.ValidMessages)
}

func TestContinuationLines(t *testing.T) {
	input := strings.Join([]string{
		"2025. 1. 2. 오후 3:05, 민수 : 첫 줄",
		"둘째 줄",
		"   셋째 줄   ",
		"",
		"콜론: 있는 줄은 버려짐",
		"[괄호 있는 줄도 버려짐",
		"2025. 1. 2. 오후 3:06, 지영 : 다음",
	}, "\n")

	res := ParseText(input)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "첫 줄\n둘째 줄\n셋째 줄", res.Messages[0].Text)
	assert.Equal(t, "다음", res.Messages[1].Text)
	assert.Equal(t, 7, res.TotalLines)
}

func TestContinuationReevaluatesMedia(t *testing.T) {
	input := "2025. 1. 2. 오후 3:05, 민수 : 이거 봐\n사진"
	res := ParseText(input)
	require.Len(t, res.Messages, 1)
	assert.True(t, res.Messages[0].IsMediaLike)
}

func TestContinuationBeforeAnyMessageIsDropped(t *testing.T) {
	res := ParseText("그냥 텍스트\n또 텍스트")
	assert.Empty(t, res.Messages)
	assert.NotNil(t, res.Messages)
	assert.Empty(t, res.Speakers)
	assert.Equal(t, "", res.ConversationStartDate)
	assert.Equal(t, 2, res.TotalLines)
}

func TestStartDateIsFirstEmittedMessage(t *testing.T) {
	input := strings.Join([]string{
		"--------------- 2024년 12월 31일 화요일 ---------------",
		"잡음",
		"2025. 1. 5. 오전 10:00, 민수 : 첫 메시지",
		"2024. 12. 1. 오전 10:00, 지영 : 더 이른 날짜",
	}, "\n")

	res := ParseText(input)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "2025-01-05", res.ConversationStartDate)
	assert.Equal(t, "2024-12-01", res.Messages[1].Date, "messages keep file order")
}

func TestMixedFormats(t *testing.T) {
	input := strings.Join([]string{
		"2025. 3. 1. 오후 1:00, 민수 : 데스크톱",
		"--------------- 2025년 3월 2일 일요일 ---------------",
		"[지영] [오후 2:00] 모바일",
		"[2025. 3. 3. 오전 8:00] 민수 : 대괄호",
	}, "\n")

	res := ParseText(input)
	require.Len(t, res.Messages, 3)
	assert.Equal(t, []string{"2025-03-01", "2025-03-02", "2025-03-03"},
		[]string{res.Messages[0].Date, res.Messages[1].Date, res.Messages[2].Date})
}

func TestImpossibleValuesAreUnmatched(t *testing.T) {
	input := strings.Join([]string{
		"2025. 1. 2. 오후 3:05, 민수 : 정상",
		"2025. 13. 2. 오후 3:05, 민수 : 13월",
		"2025. 2. 30. 오후 3:05, 민수 : 2월 30일",
		"2025. 1. 2. 오후 13:05, 민수 : 오후 13시",
		"2025. 1. 2. 오후 3:75, 민수 : 75분",
		"--------------- 2025년 2월 31일 월요일 ---------------",
		"[지영] [오후 2:00] 날짜 없음",
	}, "\n")

	res := ParseText(input)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "정상", res.Messages[0].Text)
}

func TestMediaLike(t *testing.T) {
	input := strings.Join([]string{
		"2025. 1. 2. 오후 3:05, 민수 : 사진",
		"2025. 1. 2. 오후 3:05, 민수 : 이모티콘",
		"2025. 1. 2. 오후 3:05, 민수 : 삭제된 메시지입니다",
		"2025. 1. 2. 오후 3:05, 민수 : 메시지가 삭제되었습니다.",
		"2025. 1. 2. 오후 3:05, 민수 : 평범한 말",
	}, "\n")

	res := ParseText(input)
	require.Len(t, res.Messages, 5)
	var flags []bool
	for _, m := range res.Messages {
		flags = append(flags, m.IsMediaLike)
	}
	assert.Equal(t, []bool{true, true, false, true, false}, flags)
}

func TestCRLFInput(t *testing.T) {
	res := ParseText("2025. 1. 2. 오후 3:05, 민수 : 안녕\r\n이어짐\r\n")
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "안녕\n이어짐", res.Messages[0].Text)
	assert.Equal(t, 3, res.TotalLines)
}

func TestRulesOrderAndMatch(t *testing.T) {
	var names []string
	for _, r := range Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"date-header", "desktop", "desktop-bracketed", "mobile", "continuation"}, names)

	byName := map[string]Rule{}
	for _, r := range Rules() {
		byName[r.Name] = r
	}
	assert.True(t, byName["date-header"].Match("--------------- 2025년 9월 2일 화요일 ---------------"))
	assert.False(t, byName["date-header"].Match("---- 2025년 9월 2일 화요일 ----"))
	assert.True(t, byName["desktop"].Match("2025. 1. 2. 오후 3:05, 민수 : 안녕"))
	assert.False(t, byName["desktop"].Match("[2025. 1. 2. 오후 3:05] 민수 : 안녕"))
	assert.True(t, byName["desktop-bracketed"].Match("[2025. 1. 2. 오후 3:05] 민수 : 안녕"))
	assert.True(t, byName["mobile"].Match("[민수] [오후 3:05] 안녕"))
	assert.True(t, byName["mobile"].Match("[민수] [15:05] 안녕"))
	assert.True(t, byName["continuation"].Match("그냥 텍스트"))
	assert.False(t, byName["continuation"].Match("a: b"))
}

func TestRulesReturnsCopy(t *testing.T) {
	r := Rules()
	r[0].Name = "changed"
	assert.Equal(t, "date-header", Rules()[0].Name)
}

func TestDecode(t *testing.T) {
	utf := "2025. 1. 2. 오후 3:05, 민수 : 안녕"

	text, enc := Decode([]byte(utf))
	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, utf, text)

	text, enc = Decode(append([]byte{0xEF, 0xBB, 0xBF}, utf...))
	assert.Equal(t, EncodingUTF8BOM, enc)
	assert.Equal(t, utf, text)

	legacy, err := korean.EUCKR.NewEncoder().String(utf)
	require.NoError(t, err)
	text, enc = Decode([]byte(legacy))
	assert.Equal(t, EncodingEUCKR, enc)
	assert.Equal(t, utf, text)

	text, enc = Decode([]byte("hello: world"))
	assert.Equal(t, EncodingUTF8, enc, "ASCII without Hangul stays UTF-8")
	assert.Equal(t, "hello: world", text)
}

func TestDecodeNormalizesToNFC(t *testing.T) {
	decomposed := "\u1112\u1161\u11ab"
	text, _ := Decode([]byte("2025. 1. 2. 오후 3:05, 민수 : " + decomposed))
	assert.True(t, strings.HasSuffix(text, "한"))
}

func TestParseLegacyBytes(t *testing.T) {
	legacy, err := korean.EUCKR.NewEncoder().String("2025. 1. 2. 오후 3:05, 민수 : 안녕")
	require.NoError(t, err)

	res := Parse([]byte(legacy))
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "민수", res.Messages[0].Speaker)
	assert.Equal(t, "안녕", res.Messages[0].Text)
}

func TestDetectEncoding(t *testing.T) {
	assert.Equal(t, EncodingUTF8BOM, DetectEncoding([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, EncodingUTF8, DetectEncoding([]byte("가나다")))
	assert.Equal(t, EncodingEUCKR, DetectEncoding([]byte("abc")))
	assert.Equal(t, EncodingEUCKR, DetectEncoding([]byte{0xB0, 0xA1}))
}

func TestDaysSinceStart(t *testing.T) {
	now := time.Date(2025, 1, 3, 12, 0, 0, 0, models.KST)
	assert.Equal(t, 3, DaysSinceStart("2025-01-01", now))
	assert.Equal(t, 1, DaysSinceStart("2025-01-03", now))
	assert.Equal(t, 1, DaysSinceStart("2025-02-01", now), "future start clamps to 1")
	assert.Equal(t, 1, DaysSinceStart("", now))
}

func TestFormatKoreanDate(t *testing.T) {
	assert.Equal(t, "2025년 9월 2일 화요일", FormatKoreanDate("2025-09-02"))
	assert.Equal(t, "2025년 1월 1일 수요일", FormatKoreanDate("2025-01-01"))
	assert.Equal(t, "nonsense", FormatKoreanDate("nonsense"))
}
