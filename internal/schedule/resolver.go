// Package schedule resolves an office's effective open/close window for a
// calendar date: a matching special day fully overrides the weekly working
// day, and a closed day yields no window at all.
package schedule

import (
	"fmt"
	"time"

	"vanrent/internal/model"
)

// Source tells which schedule layer produced a window.
type Source string

const (
	SourceSpecial Source = "special"
	SourceWorking Source = "working"
	SourceClosed  Source = "closed"
)

// Window is the resolved open/close range for one office and date.
// Start/End are "HH:MM" and only meaningful when Source is not closed.
type Window struct {
	Start  string
	End    string
	Source Source
	Info   string
}

// IsClosed reports whether the date has no opening window.
func (w Window) IsClosed() bool {
	return w.Source == SourceClosed
}

// Resolve computes the effective window for a date. Special days always win
// over the weekly schedule; there is no merge of the two. Open entries with
// missing times recover to the widest possible window rather than failing.
func Resolve(office *model.Office, date time.Time) Window {
	month := int(date.Month())
	day := date.Day()

	if sp := office.SpecialDayFor(month, day); sp != nil {
		if !sp.IsOpen {
			return Window{Source: SourceClosed, Info: closedInfo(sp.Reason)}
		}
		start, end := defaultTimes(sp.StartTime, sp.EndTime)
		return Window{
			Start:  start,
			End:    end,
			Source: SourceSpecial,
			Info:   openInfo(start, end, sp.Reason),
		}
	}

	wd := office.WorkingDayFor(model.WeekdayOf(date))
	if wd == nil || !wd.IsOpen {
		return Window{Source: SourceClosed, Info: closedInfo("")}
	}

	start, end := defaultTimes(wd.StartTime, wd.EndTime)
	return Window{
		Start:  start,
		End:    end,
		Source: SourceWorking,
		Info:   openInfo(start, end, ""),
	}
}

func defaultTimes(start, end string) (string, string) {
	if start == "" {
		start = model.DefaultStartTime
	}
	if end == "" {
		end = model.DefaultEndTime
	}
	return start, end
}

func openInfo(start, end, reason string) string {
	if reason != "" {
		return fmt.Sprintf("open %s-%s (%s)", start, end, reason)
	}
	return fmt.Sprintf("open %s-%s", start, end)
}

func closedInfo(reason string) string {
	if reason != "" {
		return fmt.Sprintf("closed (%s)", reason)
	}
	return "closed"
}
