package model

import (
	"strings"
	"time"
)

// Defaults applied when an open day carries no explicit times. The widest
// possible window is a recovered default, not an error.
const (
	DefaultStartTime = "00:00"
	DefaultEndTime   = "23:59"
)

// Weekday is a lowercase weekday name as stored on office schedules.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// WeekdayOf returns the schedule weekday name for a date.
func WeekdayOf(date time.Time) Weekday {
	return Weekday(strings.ToLower(date.Weekday().String()))
}

// Extension describes additional pickup/return hours around the normal
// open/close times, charged as a flat one-off fee per reservation side.
type Extension struct {
	HoursBefore int     `yaml:"hours_before" json:"hours_before"`
	HoursAfter  int     `yaml:"hours_after" json:"hours_after"`
	FlatPrice   float64 `yaml:"flat_price" json:"flat_price"`
}

// IsZero reports whether the extension adds no hours at all.
func (e *Extension) IsZero() bool {
	return e == nil || (e.HoursBefore == 0 && e.HoursAfter == 0)
}

// WorkingDay is a weekday's default open/close schedule on an office.
// StartTime/EndTime are "HH:MM" and only meaningful when IsOpen is true.
type WorkingDay struct {
	Day             Weekday    `yaml:"day" json:"day"`
	IsOpen          bool       `yaml:"is_open" json:"is_open"`
	StartTime       string     `yaml:"start_time" json:"start_time"`
	EndTime         string     `yaml:"end_time" json:"end_time"`
	PickupExtension *Extension `yaml:"pickup_extension,omitempty" json:"pickup_extension,omitempty"`
	ReturnExtension *Extension `yaml:"return_extension,omitempty" json:"return_extension,omitempty"`
}

// ExtensionFor returns the extension config for a reservation side.
func (wd *WorkingDay) ExtensionFor(role Role) *Extension {
	if wd == nil {
		return nil
	}
	if role == RoleReturn {
		return wd.ReturnExtension
	}
	return wd.PickupExtension
}

// SpecialDay is a calendar-date override keyed by month+day, recurring
// annually. A matching special day fully replaces the weekly working day,
// including its open/closed state; special days carry no extensions.
type SpecialDay struct {
	Month     int    `yaml:"month" json:"month"`
	Day       int    `yaml:"day" json:"day"`
	IsOpen    bool   `yaml:"is_open" json:"is_open"`
	StartTime string `yaml:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime   string `yaml:"end_time,omitempty" json:"end_time,omitempty"`
	Reason    string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// DriverAgeRange bounds the acceptable driver age for an office.
type DriverAgeRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// DefaultDriverAgeRange is the business-rule default; offices may tighten it.
func DefaultDriverAgeRange() DriverAgeRange {
	return DriverAgeRange{Min: 21, Max: 80}
}

// Office owns seven WorkingDay entries and any number of SpecialDay
// overrides. Reservations reference the office by ID; the office does not
// own their lifecycle.
type Office struct {
	ID          string          `yaml:"id" json:"id"`
	Name        string          `yaml:"name" json:"name"`
	WorkingDays []WorkingDay    `yaml:"working_days" json:"working_days"`
	SpecialDays []SpecialDay    `yaml:"special_days,omitempty" json:"special_days,omitempty"`
	DriverAge   *DriverAgeRange `yaml:"driver_age,omitempty" json:"driver_age,omitempty"`
}

// WorkingDayFor returns the weekly schedule entry for a weekday, or nil when
// the office has none configured for it.
func (o *Office) WorkingDayFor(day Weekday) *WorkingDay {
	for i := range o.WorkingDays {
		if o.WorkingDays[i].Day == day {
			return &o.WorkingDays[i]
		}
	}
	return nil
}

// SpecialDayFor returns the override matching month+day, or nil.
func (o *Office) SpecialDayFor(month, day int) *SpecialDay {
	for i := range o.SpecialDays {
		if o.SpecialDays[i].Month == month && o.SpecialDays[i].Day == day {
			return &o.SpecialDays[i]
		}
	}
	return nil
}

// AgeRange returns the office's driver age policy, falling back to the
// default range when none is configured.
func (o *Office) AgeRange() DriverAgeRange {
	if o.DriverAge != nil && o.DriverAge.Min > 0 && o.DriverAge.Max > 0 {
		return *o.DriverAge
	}
	return DefaultDriverAgeRange()
}
