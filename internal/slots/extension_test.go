package slots

import (
	"testing"

	"vanrent/internal/model"
)

func TestApplyExtension(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		ext       *model.Extension
		wantStart string
		wantEnd   string
		wantPrice float64
		wantEmpty bool
	}{
		{
			name:      "no extension leaves window unchanged",
			start:     "09:00",
			end:       "17:00",
			ext:       nil,
			wantStart: "09:00",
			wantEnd:   "17:00",
		},
		{
			name:      "zero-width extension is a no-op",
			start:     "09:00",
			end:       "17:00",
			ext:       &model.Extension{FlatPrice: 10},
			wantStart: "09:00",
			wantEnd:   "17:00",
		},
		{
			name:      "extends both ends",
			start:     "09:00",
			end:       "17:00",
			ext:       &model.Extension{HoursBefore: 2, HoursAfter: 1, FlatPrice: 15},
			wantStart: "07:00",
			wantEnd:   "18:00",
			wantPrice: 15,
		},
		{
			name:      "clamps at day boundaries",
			start:     "01:00",
			end:       "23:00",
			ext:       &model.Extension{HoursBefore: 3, HoursAfter: 3, FlatPrice: 5},
			wantStart: "00:00",
			wantEnd:   "23:59",
			wantPrice: 5,
		},
		{
			name:      "degenerate day with extension opens around the instant",
			start:     "09:00",
			end:       "09:00",
			ext:       &model.Extension{HoursBefore: 1, HoursAfter: 1, FlatPrice: 5},
			wantStart: "08:00",
			wantEnd:   "10:00",
			wantPrice: 5,
		},
		{
			name:      "degenerate day without extension has no slots",
			start:     "09:00",
			end:       "09:00",
			ext:       nil,
			wantEmpty: true,
			wantStart: "09:00",
			wantEnd:   "09:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyExtension(tt.start, tt.end, tt.ext)
			if err != nil {
				t.Fatalf("ApplyExtension error: %v", err)
			}
			if got.Empty != tt.wantEmpty {
				t.Fatalf("empty: expected %v, got %v", tt.wantEmpty, got.Empty)
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Errorf("window: expected %s-%s, got %s-%s",
					tt.wantStart, tt.wantEnd, got.Start, got.End)
			}
			if got.Price != tt.wantPrice {
				t.Errorf("price: expected %v, got %v", tt.wantPrice, got.Price)
			}
			if got.NormalStart != tt.start || got.NormalEnd != tt.end {
				t.Errorf("normal bounds must keep the original window, got %s-%s",
					got.NormalStart, got.NormalEnd)
			}
		})
	}
}

func TestSurchargeBoundaries(t *testing.T) {
	ext, err := ApplyExtension("09:00", "17:00", &model.Extension{HoursBefore: 2, HoursAfter: 2, FlatPrice: 12})
	if err != nil {
		t.Fatalf("ApplyExtension error: %v", err)
	}

	tests := []struct {
		time       string
		surcharged bool
	}{
		{"07:00", true},
		{"08:45", true},
		{"09:00", false}, // boundary instant is not surcharged
		{"12:00", false},
		{"17:00", false}, // boundary instant is not surcharged
		{"17:15", true},
		{"19:00", true},
	}

	for _, tt := range tests {
		if got := ext.Surcharged(tt.time); got != tt.surcharged {
			t.Errorf("Surcharged(%s): expected %v, got %v", tt.time, tt.surcharged, got)
		}
	}

	if fee := ext.SurchargeFor("07:30"); fee != 12 {
		t.Errorf("expected full flat fee 12, got %v", fee)
	}
	if fee := ext.SurchargeFor("12:00"); fee != 0 {
		t.Errorf("expected no fee inside normal hours, got %v", fee)
	}
}

// The degenerate-day boundary is the crux of the extension-only logic: the
// single instant of the zero-width normal window is the only time that is
// not surcharged.
func TestDegenerateDaySurcharge(t *testing.T) {
	ext, err := ApplyExtension("09:00", "09:00", &model.Extension{HoursBefore: 1, HoursAfter: 1, FlatPrice: 5})
	if err != nil {
		t.Fatalf("ApplyExtension error: %v", err)
	}

	slots, err := Generate(ext.Start, ext.End, 15)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(slots) != 9 || slots[0] != "08:00" || slots[len(slots)-1] != "10:00" {
		t.Fatalf("expected 08:00..10:00 at 15m (9 slots), got %v", slots)
	}

	for _, tt := range []struct {
		time string
		fee  float64
	}{
		{"08:00", 5},
		{"10:00", 5},
		{"09:15", 5},
		{"09:00", 0},
	} {
		if fee := ext.SurchargeFor(tt.time); fee != tt.fee {
			t.Errorf("SurchargeFor(%s): expected %v, got %v", tt.time, tt.fee, fee)
		}
	}
}
