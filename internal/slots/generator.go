// Package slots computes the selectable pickup/return times for one office
// and date: extension windows around normal opening hours, discrete time
// slots on a fixed-interval grid, and conflict flags against existing
// reservations.
package slots

import (
	"fmt"

	"vanrent/internal/model"
)

// DefaultInterval is the slot grid granularity in minutes.
const DefaultInterval = 15

// Generate produces the ascending list of "HH:MM" slots covering
// [start, end], both bounds included when aligned to the interval grid.
// An inverted range yields an empty list, not an error.
func Generate(start, end string, intervalMinutes int) ([]string, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultInterval
	}

	from, err := model.ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}
	to, err := model.ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("parse end time: %w", err)
	}

	var out []string
	for cursor := from; cursor <= to; cursor += intervalMinutes {
		out = append(out, model.FormatClock(cursor))
	}
	return out, nil
}
