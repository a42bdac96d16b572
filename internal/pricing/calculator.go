// Package pricing turns a priced-out booking selection into a total: the
// category's duration-tiered daily rate, the flat extension surcharges
// emitted by the availability engine, and an optional discount. The flat
// surcharge values are used exactly as emitted; they are never recomputed
// here.
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrNoTiers         = errors.New("category has no pricing tiers")
	ErrInvalidDuration = errors.New("rental duration must be at least one day")
	ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")
)

// Tier sets the per-day rate for rentals of at least MinDays days.
type Tier struct {
	MinDays     int     `yaml:"min_days" json:"min_days"`
	PricePerDay float64 `yaml:"price_per_day" json:"price_per_day"`
}

// Category is a rentable vehicle class with duration-tiered daily rates.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Tiers []Tier `yaml:"tiers" json:"tiers"`
}

// RateFor returns the per-day rate for a rental of the given length: the
// tier with the greatest MinDays not exceeding days.
func (c Category) RateFor(days int) (float64, error) {
	if len(c.Tiers) == 0 {
		return 0, ErrNoTiers
	}

	tiers := append([]Tier(nil), c.Tiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinDays < tiers[j].MinDays })

	rate := tiers[0].PricePerDay
	for _, t := range tiers {
		if days >= t.MinDays {
			rate = t.PricePerDay
		}
	}
	return rate, nil
}

// Breakdown itemises a quote.
type Breakdown struct {
	Days            int     `json:"days"`
	PerDay          float64 `json:"per_day"`
	Base            float64 `json:"base"`
	PickupExtension float64 `json:"pickup_extension"`
	ReturnExtension float64 `json:"return_extension"`
	Discount        float64 `json:"discount"`
	Total           float64 `json:"total"`
}

// Quote prices a booking. pickupSurcharge and returnSurcharge are the flat
// fees for the chosen times as computed by the engine (zero when the time
// falls inside normal hours). discountPercent applies to the base rental
// only, not to extension fees.
func Quote(cat Category, days int, pickupSurcharge, returnSurcharge, discountPercent float64) (Breakdown, error) {
	if days < 1 {
		return Breakdown{}, ErrInvalidDuration
	}
	if discountPercent < 0 || discountPercent > 100 {
		return Breakdown{}, ErrInvalidDiscount
	}

	rate, err := cat.RateFor(days)
	if err != nil {
		return Breakdown{}, fmt.Errorf("category %s: %w", cat.ID, err)
	}

	base := rate * float64(days)
	discount := base * discountPercent / 100

	return Breakdown{
		Days:            days,
		PerDay:          rate,
		Base:            base,
		PickupExtension: pickupSurcharge,
		ReturnExtension: returnSurcharge,
		Discount:        discount,
		Total:           base - discount + pickupSurcharge + returnSurcharge,
	}, nil
}

// RentalDays converts a date range to chargeable days. A same-day rental
// counts as one day; otherwise each started day is charged.
func RentalDays(pickupDate, returnDate string) (int, error) {
	from, err := time.Parse("2006-01-02", pickupDate)
	if err != nil {
		return 0, fmt.Errorf("parse pickup date: %w", err)
	}
	to, err := time.Parse("2006-01-02", returnDate)
	if err != nil {
		return 0, fmt.Errorf("parse return date: %w", err)
	}
	if to.Before(from) {
		return 0, ErrInvalidDuration
	}

	days := int(to.Sub(from).Hours()/24) + 1
	return days, nil
}
