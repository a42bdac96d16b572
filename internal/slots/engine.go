package slots

import (
	"fmt"
	"time"

	"vanrent/internal/model"
	"vanrent/internal/schedule"
)

// Engine composes the full availability pipeline for one office, date and
// reservation side: resolve the schedule, apply the extension window,
// generate the slot grid and flag conflicts. It is pure and safe for
// concurrent use.
type Engine struct {
	// Interval is the slot grid granularity in minutes; zero means the
	// default 15.
	Interval int
}

// DaySlots is the engine output for one query.
type DaySlots struct {
	Window   schedule.Window
	Extended Extended
	Slots    []model.SlotStatus
}

// HasSlots reports whether the day offers any selectable time at all.
func (d DaySlots) HasSlots() bool {
	return len(d.Slots) > 0
}

// SlotsForDate runs the pipeline. A closed or degenerate day produces an
// empty slot list, which is a valid, displayable outcome, never an error.
// Extensions only attach to the weekly schedule; special days carry none.
func (e Engine) SlotsForDate(office *model.Office, date time.Time, role model.Role, reserved []model.ReservedSlot) (DaySlots, error) {
	win := schedule.Resolve(office, date)
	if win.IsClosed() {
		return DaySlots{Window: win, Slots: []model.SlotStatus{}}, nil
	}

	var ext *model.Extension
	if win.Source == schedule.SourceWorking {
		ext = office.WorkingDayFor(model.WeekdayOf(date)).ExtensionFor(role)
	}

	extended, err := ApplyExtension(win.Start, win.End, ext)
	if err != nil {
		return DaySlots{}, fmt.Errorf("apply extension: %w", err)
	}
	if extended.Empty {
		return DaySlots{Window: win, Extended: extended, Slots: []model.SlotStatus{}}, nil
	}

	times, err := Generate(extended.Start, extended.End, e.Interval)
	if err != nil {
		return DaySlots{}, fmt.Errorf("generate slots: %w", err)
	}

	return DaySlots{
		Window:   win,
		Extended: extended,
		Slots:    FilterReserved(times, reserved),
	}, nil
}
