package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Minute-of-day bounds. Windows saturate at these values; there is no
// cross-midnight rollover.
const (
	DayStartMinute = 0
	DayEndMinute   = 1439 // 23:59
)

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %s", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %s", s)
	}

	return hour*60 + minute, nil
}

// FormatClock converts minutes since midnight back to zero-padded "HH:MM".
func FormatClock(m int) string {
	if m < DayStartMinute {
		m = DayStartMinute
	}
	if m > DayEndMinute {
		m = DayEndMinute
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ClampMinute saturates a minute-of-day value to [00:00, 23:59].
func ClampMinute(m int) int {
	if m < DayStartMinute {
		return DayStartMinute
	}
	if m > DayEndMinute {
		return DayEndMinute
	}
	return m
}
