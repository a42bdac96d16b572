package schedule

import (
	"testing"
	"time"

	"vanrent/internal/model"
)

func openAllWeek(start, end string) []model.WorkingDay {
	days := []model.Weekday{
		model.Monday, model.Tuesday, model.Wednesday, model.Thursday,
		model.Friday, model.Saturday, model.Sunday,
	}
	out := make([]model.WorkingDay, 0, len(days))
	for _, d := range days {
		out = append(out, model.WorkingDay{Day: d, IsOpen: true, StartTime: start, EndTime: end})
	}
	return out
}

func TestResolve(t *testing.T) {
	// 2026-03-02 is a Monday, 2026-03-08 a Sunday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		office     model.Office
		date       time.Time
		wantSource Source
		wantStart  string
		wantEnd    string
	}{
		{
			name:       "weekly schedule applies",
			office:     model.Office{WorkingDays: openAllWeek("09:00", "17:00")},
			date:       monday,
			wantSource: SourceWorking,
			wantStart:  "09:00",
			wantEnd:    "17:00",
		},
		{
			name: "closed weekday",
			office: model.Office{WorkingDays: []model.WorkingDay{
				{Day: model.Sunday, IsOpen: false},
			}},
			date:       sunday,
			wantSource: SourceClosed,
		},
		{
			name:       "no working day entry means closed",
			office:     model.Office{},
			date:       monday,
			wantSource: SourceClosed,
		},
		{
			name: "special day closes an otherwise open weekday",
			office: model.Office{
				WorkingDays: openAllWeek("09:00", "17:00"),
				SpecialDays: []model.SpecialDay{{Month: 3, Day: 2, IsOpen: false, Reason: "public holiday"}},
			},
			date:       monday,
			wantSource: SourceClosed,
		},
		{
			name: "special day overrides weekly times",
			office: model.Office{
				WorkingDays: openAllWeek("09:00", "17:00"),
				SpecialDays: []model.SpecialDay{{Month: 3, Day: 2, IsOpen: true, StartTime: "11:00", EndTime: "14:00"}},
			},
			date:       monday,
			wantSource: SourceSpecial,
			wantStart:  "11:00",
			wantEnd:    "14:00",
		},
		{
			name: "open special day without times gets widest window",
			office: model.Office{
				SpecialDays: []model.SpecialDay{{Month: 3, Day: 2, IsOpen: true}},
			},
			date:       monday,
			wantSource: SourceSpecial,
			wantStart:  "00:00",
			wantEnd:    "23:59",
		},
		{
			name: "open working day without times gets widest window",
			office: model.Office{WorkingDays: []model.WorkingDay{
				{Day: model.Monday, IsOpen: true},
			}},
			date:       monday,
			wantSource: SourceWorking,
			wantStart:  "00:00",
			wantEnd:    "23:59",
		},
		{
			name: "special day on another date does not apply",
			office: model.Office{
				WorkingDays: openAllWeek("09:00", "17:00"),
				SpecialDays: []model.SpecialDay{{Month: 12, Day: 25, IsOpen: false}},
			},
			date:       monday,
			wantSource: SourceWorking,
			wantStart:  "09:00",
			wantEnd:    "17:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := Resolve(&tt.office, tt.date)
			if win.Source != tt.wantSource {
				t.Fatalf("source: expected %s, got %s", tt.wantSource, win.Source)
			}
			if win.IsClosed() {
				return
			}
			if win.Start != tt.wantStart || win.End != tt.wantEnd {
				t.Errorf("window: expected %s-%s, got %s-%s",
					tt.wantStart, tt.wantEnd, win.Start, win.End)
			}
			if win.Info == "" {
				t.Error("expected non-empty info string")
			}
		})
	}
}

func TestResolveSpecialDayRecursAnnually(t *testing.T) {
	office := model.Office{
		WorkingDays: openAllWeek("09:00", "17:00"),
		SpecialDays: []model.SpecialDay{{Month: 12, Day: 25, IsOpen: false, Reason: "christmas"}},
	}

	for _, year := range []int{2025, 2026, 2027} {
		date := time.Date(year, 12, 25, 0, 0, 0, 0, time.UTC)
		win := Resolve(&office, date)
		if win.Source != SourceClosed {
			t.Errorf("year %d: expected closed, got %s", year, win.Source)
		}
	}
}
