package slots

import (
	"fmt"

	"vanrent/internal/model"
)

// Extended is an opening window widened by an extension config. NormalStart
// and NormalEnd keep the original, non-extended bounds so a chosen time can
// be tested for the surcharge after the fact; the surcharge depends on the
// chosen time, not on the slot list itself.
type Extended struct {
	Start       string
	End         string
	NormalStart string
	NormalEnd   string
	Price       float64
	Empty       bool
}

// ApplyExtension widens [start, end] by the extension's hours on each side,
// clamped to [00:00, 23:59] with no cross-midnight rollover.
//
// A degenerate window (start == end) encodes a day that is closed except for
// its extension hours: with a non-zero extension the visible window is the
// extension range around the single instant; with none, the day has no slots
// at all.
func ApplyExtension(start, end string, ext *model.Extension) (Extended, error) {
	from, err := model.ParseClock(start)
	if err != nil {
		return Extended{}, fmt.Errorf("parse window start: %w", err)
	}
	to, err := model.ParseClock(end)
	if err != nil {
		return Extended{}, fmt.Errorf("parse window end: %w", err)
	}

	out := Extended{
		Start:       start,
		End:         end,
		NormalStart: start,
		NormalEnd:   end,
	}

	if ext.IsZero() {
		if from == to {
			out.Empty = true
		}
		return out, nil
	}

	out.Start = model.FormatClock(model.ClampMinute(from - ext.HoursBefore*60))
	out.End = model.FormatClock(model.ClampMinute(to + ext.HoursAfter*60))
	out.Price = ext.FlatPrice
	return out, nil
}

// Surcharged reports whether a chosen time falls strictly outside the
// normal, non-extended window. The boundary instants themselves are not
// surcharged.
func (e Extended) Surcharged(t string) bool {
	m, err := model.ParseClock(t)
	if err != nil {
		return false
	}
	normalStart, err := model.ParseClock(e.NormalStart)
	if err != nil {
		return false
	}
	normalEnd, err := model.ParseClock(e.NormalEnd)
	if err != nil {
		return false
	}
	return m < normalStart || m > normalEnd
}

// SurchargeFor returns the flat extension fee for a chosen time: the full
// configured price when the time sits in the surcharge region, zero
// otherwise. The fee is all-or-nothing, never prorated.
func (e Extended) SurchargeFor(t string) float64 {
	if e.Surcharged(t) {
		return e.Price
	}
	return 0
}
