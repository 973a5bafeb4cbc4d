package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestFilterBySpeakers(t *testing.T) {
	msgs := []ParsedMessage{
		{Speaker: "민수", Text: "a"},
		{Speaker: "지영", Text: "b"},
		{Speaker: "민수", Text: "c"},
	}

	tests := []struct {
		name     string
		speakers []string
		want     []string
	}{
		{"nil keeps everything", nil, []string{"a", "b", "c"}},
		{"empty keeps nothing", []string{}, nil},
		{"single speaker", []string{"민수"}, []string{"a", "c"}},
		{"unknown speaker", []string{"철수"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range FilterBySpeakers(msgs, tt.speakers) {
				got = append(got, m.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDatetimeISO(t *testing.T) {
	msg := ParsedMessage{Timestamp: time.Date(2025, 1, 2, 15, 5, 0, 0, KST)}
	assert.Equal(t, "2025-01-02T15:05:00+09:00", msg.DatetimeISO())
}

func TestSlotForHour(t *testing.T) {
	cases := map[int]TimeSlot{
		0: SlotDawn, 5: SlotDawn,
		6: SlotMorning, 11: SlotMorning,
		12: SlotAfternoon, 17: SlotAfternoon,
		18: SlotEvening, 23: SlotEvening,
	}
	for hour, want := range cases {
		assert.Equal(t, want, SlotForHour(hour), "hour %d", hour)
	}
}

func TestTimeDistributionString(t *testing.T) {
	var d TimeDistribution
	assert.Equal(t, "데이터 없음", d.String())

	d.Add(SlotDawn)
	d.Add(SlotMorning)
	d.Add(SlotMorning)
	d.Add(SlotEvening)
	assert.Equal(t, 4, d.Total())
	assert.Equal(t, SlotMorning, d.Dominant())
	assert.Equal(t, "새벽 25%, 오전 50%, 오후 0%, 저녁 25%", d.String())
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())

	s := DefaultSettings()
	s.PraiseSensitivity = 0
	s.TimePatternSensitivity = 100
	s.EmotionSensitivity = 37
	assert.NoError(t, s.Validate(), "any integer in range is accepted")

	s.AggressivenessSensitivity = -1
	s.QuestionSensitivity = 101
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSettings))
	assert.Len(t, multierr.Errors(err), 2)
}
