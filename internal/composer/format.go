package composer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

var japaneseWeekdays = [...]string{
	time.Sunday:    "日曜日",
	time.Monday:    "月曜日",
	time.Tuesday:   "火曜日",
	time.Wednesday: "水曜日",
	time.Thursday:  "木曜日",
	time.Friday:    "金曜日",
	time.Saturday:  "土曜日",
}

// ShortWeekday returns the one-character Japanese weekday name ("土" for
// Saturday), as used in calendar headers.
func ShortWeekday(day time.Weekday) string {
	return string([]rune(japaneseWeekdays[day])[:1])
}

// FormatDate renders t as "5月 3日 (土曜日)".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d月 %d日 (%s)", int(t.Month()), t.Day(), japaneseWeekdays[t.Weekday()])
}

// FormatMonth renders the calendar title for t, e.g. "2025年 5月".
func FormatMonth(t time.Time) string {
	return fmt.Sprintf("%d年 %d月", t.Year(), int(t.Month()))
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatClock renders t as zero-padded 24-hour "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeSlot renders t for the slot at slotIndex. Even indexes open a
// slot (" 09:00~"), odd indexes close it ("10:30,").
func FormatTimeSlot(t time.Time, slotIndex int) string {
	clock := FormatClock(t)
	if slotIndex%2 == 0 {
		return " " + clock + "~"
	}
	return clock + ","
}

// SelectDate applies a calendar pick. A nil date leaves s unchanged and
// returns ErrNoSelection.
func (s State) SelectDate(date *time.Time) (State, error) {
	if date == nil {
		return s, ErrNoSelection
	}
	return s.ReplaceWithDate(FormatDate(*date)), nil
}

// SelectTime applies a time pick: the fragment is chosen by the current slot
// count, inserted at the surface's selection, and recorded in the slot
// history. A nil time leaves s unchanged and returns ErrNoSelection.
//
// The slot is recorded even when no surface is attached, matching the picker
// having fired; only the draft edit is skipped.
func (s State) SelectTime(clock *time.Time, surface EditingSurface) (State, PendingCursorUpdate, error) {
	if clock == nil {
		return s, PendingCursorUpdate{}, ErrNoSelection
	}
	fragment := FormatTimeSlot(*clock, s.SlotCount())
	s = s.withSlot(FormatClock(*clock))
	next, pending := s.RequestInsertion(fragment, surface)
	return next, pending, nil
}

// ParseClock parses a manually typed time of day. It accepts "9:00",
// "09:00", "0900", "9" and their full-width forms ("０９：００"). Hours
// take one or two digits and minutes exactly two; signs are rejected.
func ParseClock(input string) (time.Time, error) {
	value := strings.TrimSpace(width.Narrow.String(input))
	if value == "" {
		return time.Time{}, fmt.Errorf("parse clock %q: empty", input)
	}

	var hourText, minuteText string
	if before, after, ok := strings.Cut(value, ":"); ok {
		if len(before) < 1 || len(before) > 2 || len(after) != 2 {
			return time.Time{}, fmt.Errorf("parse clock %q: unrecognized format", input)
		}
		hourText, minuteText = before, after
	} else {
		switch len(value) {
		case 1, 2:
			hourText, minuteText = value, "0"
		case 3, 4:
			hourText, minuteText = value[:len(value)-2], value[len(value)-2:]
		default:
			return time.Time{}, fmt.Errorf("parse clock %q: unrecognized format", input)
		}
	}

	if !allDigits(hourText) || !allDigits(minuteText) {
		return time.Time{}, fmt.Errorf("parse clock %q: unrecognized format", input)
	}

	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("parse clock %q: invalid hour", input)
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("parse clock %q: invalid minute", input)
	}
	return time.Date(0, time.January, 1, hour, minute, 0, 0, time.Local), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
