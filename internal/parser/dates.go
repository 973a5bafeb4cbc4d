package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/neilberkman/chatvibe/internal/models"
)

const (
	periodAM = "오전"
	periodPM = "오후"
)

var (
	longDateRegex = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)
	weekdays      = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}
)

// clock is a validated hour/minute pair in 24-hour form.
type clock struct {
	hour, minute int
}

func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// to24Hour converts "H:MM" plus 오전/오후 to 24-hour time.
// 오전 12 is midnight, 오후 12 is noon.
func to24Hour(hm, period string) (clock, bool) {
	c, ok := parseClock(hm)
	if !ok || c.hour > 12 {
		return clock{}, false
	}
	switch period {
	case periodAM:
		if c.hour == 12 {
			c.hour = 0
		}
	case periodPM:
		if c.hour != 12 {
			c.hour += 12
		}
	default:
		return clock{}, false
	}
	return c, true
}

func parseClock(hm string) (clock, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(hm), ":")
	if !found {
		return clock{}, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return clock{}, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return clock{}, false
	}
	return clock{hour: hour, minute: minute}, true
}

// civilDate is a calendar day that is known to exist.
type civilDate struct {
	year       int
	month, day int
}

func (d civilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

func (d civilDate) at(c clock) time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, c.hour, c.minute, 0, 0, models.KST)
}

func newCivilDate(year, month, day string) (civilDate, bool) {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return civilDate{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, models.KST)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return civilDate{}, false
	}
	return civilDate{year: y, month: m, day: d}, true
}

// parseDotDate handles the desktop "2025. 1. 2." form.
func parseDotDate(s string) (civilDate, bool) {
	cleaned := strings.TrimSuffix(strings.Join(strings.Fields(s), ""), ".")
	parts := strings.Split(cleaned, ".")
	if len(parts) != 3 {
		return civilDate{}, false
	}
	return newCivilDate(parts[0], parts[1], parts[2])
}

// parseLongDate handles the mobile "2025년 9월 2일 화요일" form.
func parseLongDate(s string) (civilDate, bool) {
	m := longDateRegex.FindStringSubmatch(s)
	if m == nil {
		return civilDate{}, false
	}
	return newCivilDate(m[1], m[2], m[3])
}

// DaysSinceStart returns how many days the conversation has been running
// as of now, counting a partial day as a full one. The result is at least 1.
func DaysSinceStart(start string, now time.Time) int {
	t, err := time.ParseInLocation(time.DateOnly, start, models.KST)
	if err != nil {
		return 1
	}
	days := int(math.Ceil(now.Sub(t).Hours() / 24))
	return max(1, days)
}

// FormatKoreanDate renders "2025-09-02" as "2025년 9월 2일 화요일".
// Unparseable input is returned unchanged.
func FormatKoreanDate(date string) string {
	t, err := time.ParseInLocation(time.DateOnly, date, models.KST)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d년 %d월 %d일 %s", t.Year(), int(t.Month()), t.Day(), weekdays[t.Weekday()])
}
