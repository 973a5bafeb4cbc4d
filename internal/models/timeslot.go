package models

import (
	"fmt"
	"math"
	"strings"
)

// TimeSlot is a quarter of the day by local hour
type TimeSlot int

const (
	SlotDawn      TimeSlot = iota // 00-05
	SlotMorning                   // 06-11
	SlotAfternoon                 // 12-17
	SlotEvening                   // 18-23
)

// TimeSlots lists every slot in display order.
var TimeSlots = []TimeSlot{SlotDawn, SlotMorning, SlotAfternoon, SlotEvening}

// SlotForHour buckets a 0-23 hour.
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour < 6:
		return SlotDawn
	case hour < 12:
		return SlotMorning
	case hour < 18:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

// Label returns the Korean label used in reports
func (s TimeSlot) Label() string {
	switch s {
	case SlotDawn:
		return "새벽"
	case SlotMorning:
		return "오전"
	case SlotAfternoon:
		return "오후"
	case SlotEvening:
		return "저녁"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// TimeDistribution counts messages per TimeSlot
type TimeDistribution struct {
	Dawn      int `json:"새벽"`
	Morning   int `json:"오전"`
	Afternoon int `json:"오후"`
	Evening   int `json:"저녁"`
}

// Add increments the counter for slot.
func (d *TimeDistribution) Add(slot TimeSlot) {
	switch slot {
	case SlotDawn:
		d.Dawn++
	case SlotMorning:
		d.Morning++
	case SlotAfternoon:
		d.Afternoon++
	case SlotEvening:
		d.Evening++
	}
}

// Count returns the counter for slot.
func (d TimeDistribution) Count(slot TimeSlot) int {
	switch slot {
	case SlotDawn:
		return d.Dawn
	case SlotMorning:
		return d.Morning
	case SlotAfternoon:
		return d.Afternoon
	case SlotEvening:
		return d.Evening
	}
	return 0
}

// Total returns the number of bucketed messages.
func (d TimeDistribution) Total() int {
	return d.Dawn + d.Morning + d.Afternoon + d.Evening
}

// Dominant returns the slot with the most messages; ties go to the earlier slot.
func (d TimeDistribution) Dominant() TimeSlot {
	best := SlotDawn
	for _, s := range TimeSlots {
		if d.Count(s) > d.Count(best) {
			best = s
		}
	}
	return best
}

// String renders the distribution as rounded percentages, e.g. "새벽 10%, 오전 40%, ...".
func (d TimeDistribution) String() string {
	total := d.Total()
	if total == 0 {
		return "데이터 없음"
	}
	parts := make([]string, 0, len(TimeSlots))
	for _, s := range TimeSlots {
		pct := math.Round(float64(d.Count(s)) / float64(total) * 100)
		parts = append(parts, fmt.Sprintf("%s %d%%", s.Label(), int(pct)))
	}
	return strings.Join(parts, ", ")
}
