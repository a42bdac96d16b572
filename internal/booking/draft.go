// Package booking models the booking draft a customer builds up step by
// step: office, date range, pickup/return times, driver age. Transitions are
// explicit and upstream changes drop downstream selections instead of
// trusting stale ones.
package booking

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"vanrent/internal/model"
)

// State represents the progress of a booking draft.
type State string

const (
	StateNoOffice         State = "no_office"
	StateOfficeSelected   State = "office_selected"
	StateDateRangeChosen  State = "date_range_chosen"
	StatePickupTimeChosen State = "pickup_time_chosen"
	StateReturnTimeChosen State = "return_time_chosen"
	StateValid            State = "valid"
)

// MinSameDayGap is the minimum pickup-to-return duration when both fall on
// the same calendar day. Exactly this long is accepted. Multi-day bookings
// have no minimum beyond non-negative duration.
const MinSameDayGap = 6 * time.Hour

var (
	ErrNoOffice           = errors.New("select an office first")
	ErrNoDates            = errors.New("select pickup and return dates first")
	ErrInvalidDateRange   = errors.New("return date is before pickup date")
	ErrSameDayMinDuration = errors.New("same-day rental must last at least 6 hours")
	ErrDriverAge          = errors.New("driver age outside the allowed range")
)

const dateLayout = "2006-01-02"

// Draft is one in-progress booking. Safe for concurrent use.
type Draft struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	office     *model.Office
	pickupDate string
	returnDate string
	pickupTime string
	returnTime string
	driverAge  int

	mu sync.Mutex
}

// NewDraft creates an empty draft.
func NewDraft() *Draft {
	now := time.Now()
	return &Draft{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// State derives the current progress from the fields that are set.
func (d *Draft) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state()
}

func (d *Draft) state() State {
	switch {
	case d.office == nil:
		return StateNoOffice
	case d.pickupDate == "" || d.returnDate == "":
		return StateOfficeSelected
	case d.pickupTime == "":
		return StateDateRangeChosen
	case d.returnTime == "":
		return StatePickupTimeChosen
	case d.driverAge == 0:
		return StateReturnTimeChosen
	default:
		return StateValid
	}
}

// Office returns the selected office, nil while none is chosen.
func (d *Draft) Office() *model.Office {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.office
}

// Selection returns the chosen dates and times.
func (d *Draft) Selection() (pickupDate, pickupTime, returnDate, returnTime string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pickupDate, d.pickupTime, d.returnDate, d.returnTime
}

// SetOffice selects an office and drops every downstream selection: the
// previous dates and times belong to another office's schedule.
func (d *Draft) SetOffice(office *model.Office) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.office = office
	d.pickupDate, d.returnDate = "", ""
	d.pickupTime, d.returnTime = "", ""
	d.touch()
}

// SetDates selects the pickup and return dates (YYYY-MM-DD). Chosen times
// are dropped; they were derived from the previous dates' slot lists and
// must be recomputed.
func (d *Draft) SetDates(pickup, ret string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.office == nil {
		return ErrNoOffice
	}

	from, err := time.Parse(dateLayout, pickup)
	if err != nil {
		return fmt.Errorf("parse pickup date: %w", err)
	}
	to, err := time.Parse(dateLayout, ret)
	if err != nil {
		return fmt.Errorf("parse return date: %w", err)
	}
	if to.Before(from) {
		return ErrInvalidDateRange
	}

	d.pickupDate, d.returnDate = pickup, ret
	d.pickupTime, d.returnTime = "", ""
	d.touch()
	return nil
}

// SetPickupTime selects the pickup time. On a same-day booking a selection
// closer than 6 hours to the chosen return time is rejected and not stored.
func (d *Draft) SetPickupTime(t string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pickupDate == "" || d.returnDate == "" {
		return ErrNoDates
	}
	if d.sameDay() && d.returnTime != "" {
		ok, err := SameDayGapOK(t, d.returnTime)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSameDayMinDuration
		}
	}

	d.pickupTime = t
	d.touch()
	return nil
}

// SetReturnTime selects the return time, symmetric to SetPickupTime.
func (d *Draft) SetReturnTime(t string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pickupDate == "" || d.returnDate == "" {
		return ErrNoDates
	}
	if d.sameDay() && d.pickupTime != "" {
		ok, err := SameDayGapOK(d.pickupTime, t)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSameDayMinDuration
		}
	}

	d.returnTime = t
	d.touch()
	return nil
}

// SetDriverAge validates the age against the office's policy.
func (d *Draft) SetDriverAge(age int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.office == nil {
		return ErrNoOffice
	}
	r := d.office.AgeRange()
	if age < r.Min || age > r.Max {
		return fmt.Errorf("%w: %d not in %d-%d", ErrDriverAge, age, r.Min, r.Max)
	}

	d.driverAge = age
	d.touch()
	return nil
}

func (d *Draft) sameDay() bool {
	return d.pickupDate != "" && d.pickupDate == d.returnDate
}

func (d *Draft) touch() {
	d.UpdatedAt = time.Now()
}

// IsExpired checks whether the draft has been idle longer than timeout.
func (d *Draft) IsExpired(timeout time.Duration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return time.Since(d.UpdatedAt) > timeout
}

// SameDayGapOK reports whether a same-day pickup/return pair keeps the
// 6-hour minimum. The boundary is inclusive: exactly 6 hours is accepted.
func SameDayGapOK(pickup, ret string) (bool, error) {
	from, err := model.ParseClock(pickup)
	if err != nil {
		return false, fmt.Errorf("parse pickup time: %w", err)
	}
	to, err := model.ParseClock(ret)
	if err != nil {
		return false, fmt.Errorf("parse return time: %w", err)
	}
	return to-from >= int(MinSameDayGap.Minutes()), nil
}
