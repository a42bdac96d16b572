package slots

import "vanrent/internal/model"

// FilterReserved marks each slot that falls inside any reserved range,
// boundaries included. The caller must have pre-filtered the ranges to the
// queried office, date and role; no dates are re-checked here. Reserved
// slots stay in the output so a picker can render them struck-through.
func FilterReserved(slotTimes []string, reserved []model.ReservedSlot) []model.SlotStatus {
	out := make([]model.SlotStatus, 0, len(slotTimes))
	for _, t := range slotTimes {
		out = append(out, model.SlotStatus{
			Time:     t,
			Reserved: coveredByAny(t, reserved),
		})
	}
	return out
}

func coveredByAny(t string, reserved []model.ReservedSlot) bool {
	m, err := model.ParseClock(t)
	if err != nil {
		return false
	}
	for _, r := range reserved {
		from, err := model.ParseClock(r.StartTime)
		if err != nil {
			continue
		}
		to, err := model.ParseClock(r.EndTime)
		if err != nil {
			continue
		}
		if m >= from && m <= to {
			return true
		}
	}
	return false
}
