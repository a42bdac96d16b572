package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var transit = Category{
	ID:   "transit-l2",
	Name: "Transit L2H2",
	Tiers: []Tier{
		{MinDays: 1, PricePerDay: 60},
		{MinDays: 3, PricePerDay: 50},
		{MinDays: 7, PricePerDay: 40},
	},
}

func TestRateFor(t *testing.T) {
	tests := []struct {
		days int
		rate float64
	}{
		{1, 60},
		{2, 60},
		{3, 50},
		{6, 50},
		{7, 40},
		{30, 40},
	}

	for _, tt := range tests {
		rate, err := transit.RateFor(tt.days)
		assert.NoError(t, err)
		assert.Equal(t, tt.rate, rate, "days=%d", tt.days)
	}
}

func TestRateForUnsortedTiers(t *testing.T) {
	cat := Category{ID: "x", Tiers: []Tier{
		{MinDays: 7, PricePerDay: 40},
		{MinDays: 1, PricePerDay: 60},
	}}
	rate, err := cat.RateFor(2)
	assert.NoError(t, err)
	assert.Equal(t, 60.0, rate)
}

func TestQuote(t *testing.T) {
	b, err := Quote(transit, 3, 5, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, b.Base)
	assert.Equal(t, 5.0, b.PickupExtension)
	assert.Equal(t, 0.0, b.ReturnExtension)
	assert.Equal(t, 155.0, b.Total)
}

func TestQuoteDiscountSparesExtensionFees(t *testing.T) {
	b, err := Quote(transit, 2, 5, 8, 10)
	assert.NoError(t, err)
	assert.Equal(t, 120.0, b.Base)
	assert.Equal(t, 12.0, b.Discount)
	// Extensions are flat fees outside the discount.
	assert.Equal(t, 120.0-12.0+5.0+8.0, b.Total)
}

func TestQuoteErrors(t *testing.T) {
	_, err := Quote(transit, 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Quote(transit, 1, 0, 0, 150)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = Quote(Category{ID: "empty"}, 1, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNoTiers)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name   string
		pickup string
		ret    string
		days   int
		ok     bool
	}{
		{"same day counts as one", "2026-04-10", "2026-04-10", 1, true},
		{"overnight counts as two", "2026-04-10", "2026-04-11", 2, true},
		{"week", "2026-04-10", "2026-04-16", 7, true},
		{"inverted range rejected", "2026-04-11", "2026-04-10", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, err := RentalDays(tt.pickup, tt.ret)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.days, days)
		})
	}
}
