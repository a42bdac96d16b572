package model

// Role distinguishes the pickup side of a reservation from the return side.
type Role string

const (
	RolePickup Role = "pickup"
	RoleReturn Role = "return"
)

// ParseRole maps a query-string value to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePickup, RoleReturn:
		return Role(s), true
	default:
		return "", false
	}
}

// ReservedSlot is one existing reservation's time footprint on a queried
// date, supplied by the reservation-lookup collaborator. The engine treats
// these as read-only facts for one day at a time.
type ReservedSlot struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	IsSameDay bool   `json:"is_same_day"`
}

// SlotStatus is one engine output slot. Reserved slots stay in the list so
// a picker can render them struck-through.
type SlotStatus struct {
	Time     string `json:"time"` // HH:MM
	Reserved bool   `json:"reserved"`
}
