package model

import (
	"fmt"
	"strings"
	"time"
)

// Event is the single record stored for a calendar day.
type Event struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Description  string `json:"description"`
	Participants string `json:"participants"`
}

// DefaultTime is the slot preselected for days without an event.
const DefaultTime = "00:00"

const (
	dateKeyLayout       = "2006-01-02"
	legacyDateKeyLayout = "2006-1-2"
)

// KeyFor returns the canonical date-key (YYYY-MM-DD) for a calendar day.
// Out-of-range month/day values are normalized the way time.Date does.
func KeyFor(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(dateKeyLayout)
}

// KeyOf returns the date-key of t's calendar day in t's location.
func KeyOf(t time.Time) string {
	return KeyFor(t.Year(), t.Month(), t.Day())
}

// ParseDateKey parses a canonical or legacy unpadded ("2024-3-5") date-key.
// The returned time is midnight UTC.
func ParseDateKey(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateKeyLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(legacyDateKeyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// NormalizeDateKey rewrites any accepted date-key form into the canonical one.
func NormalizeDateKey(s string) (string, error) {
	t, err := ParseDateKey(s)
	if err != nil {
		return "", err
	}
	return t.Format(dateKeyLayout), nil
}

var timeSlots = buildTimeSlots()

func buildTimeSlots() []string {
	out := make([]string, 0, 48)
	for h := 0; h < 24; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return out
}

// TimeSlots returns the 48 half-hour slots from 00:00 to 23:30.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// TimeSlotIndex returns the index of s in TimeSlots, or -1.
func TimeSlotIndex(s string) int {
	s = strings.TrimSpace(s)
	for i, slot := range timeSlots {
		if slot == s {
			return i
		}
	}
	return -1
}

func IsTimeSlot(s string) bool { return TimeSlotIndex(s) >= 0 }

// SlotAt returns the slot for index i, wrapping around in both directions.
func SlotAt(i int) string {
	n := len(timeSlots)
	i %= n
	if i < 0 {
		i += n
	}
	return timeSlots[i]
}

// FloorTimeSlot maps an hour/minute onto the half-hour slot that contains it.
func FloorTimeSlot(hour, minute int) string {
	if hour < 0 || hour > 23 {
		return DefaultTime
	}
	idx := hour * 2
	if minute >= 30 {
		idx++
	}
	return timeSlots[idx]
}

type ViewMode int

const (
	ViewMonthly ViewMode = iota
	ViewYearly
	ViewDaily
)

func (v ViewMode) String() string {
	switch v {
	case ViewYearly:
		return "yearly"
	case ViewDaily:
		return "daily"
	default:
		return "monthly"
	}
}

func (v ViewMode) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *ViewMode) UnmarshalText(b []byte) error {
	m, err := ParseViewMode(string(b))
	if err != nil {
		return err
	}
	*v = m
	return nil
}

// ParseViewMode accepts the mode names plus the short forms month/year/day.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly", "month", "m":
		return ViewMonthly, nil
	case "yearly", "year", "y":
		return ViewYearly, nil
	case "daily", "day", "d":
		return ViewDaily, nil
	default:
		return ViewMonthly, fmt.Errorf("unknown view mode: %s (want monthly|yearly|daily)", s)
	}
}
