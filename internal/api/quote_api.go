package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"vanrent/internal/booking"
	"vanrent/internal/metrics"
	"vanrent/internal/model"
	"vanrent/internal/pricing"
	"vanrent/internal/slots"
)

// QuoteRequest prices a complete booking selection.
type QuoteRequest struct {
	OfficeID        string  `json:"office_id"`
	CategoryID      string  `json:"category_id"`
	PickupDate      string  `json:"pickup_date"` // YYYY-MM-DD
	PickupTime      string  `json:"pickup_time"` // HH:MM
	ReturnDate      string  `json:"return_date"`
	ReturnTime      string  `json:"return_time"`
	DriverAge       int     `json:"driver_age"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
}

// QuoteResponse carries the price breakdown plus which sides were
// surcharged.
type QuoteResponse struct {
	Breakdown        pricing.Breakdown `json:"breakdown"`
	PickupSurcharged bool              `json:"pickup_surcharged"`
	ReturnSurcharged bool              `json:"return_surcharged"`
}

// handleQuote validates a selection end to end and prices it. The flat
// extension fees come straight from the engine's surcharge boundaries; this
// is the only place they turn into money.
// POST /api/v1/quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("quote")

	var req QuoteRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		metrics.IncQuote("bad_request")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	office := s.catalogue.Get(req.OfficeID)
	if office == nil {
		metrics.IncQuote("unknown_office")
		writeError(w, http.StatusNotFound, "unknown office")
		return
	}

	category, ok := s.cfg.CategoryByID(req.CategoryID)
	if !ok {
		metrics.IncQuote("unknown_category")
		writeError(w, http.StatusNotFound, "unknown category")
		return
	}

	if ageRange := office.AgeRange(); req.DriverAge < ageRange.Min || req.DriverAge > ageRange.Max {
		metrics.IncQuote("driver_age")
		writeError(w, http.StatusUnprocessableEntity, "driver age outside the allowed range")
		return
	}

	days, err := pricing.RentalDays(req.PickupDate, req.ReturnDate)
	if err != nil {
		metrics.IncQuote("bad_dates")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.PickupDate == req.ReturnDate {
		ok, err := booking.SameDayGapOK(req.PickupTime, req.ReturnTime)
		if err != nil {
			metrics.IncQuote("bad_times")
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !ok {
			metrics.IncSameDayRejection()
			metrics.IncQuote("same_day_gap")
			writeError(w, http.StatusUnprocessableEntity, booking.ErrSameDayMinDuration.Error())
			return
		}
	}

	pickupFee, err := s.sideSurcharge(r, office.ID, req.PickupDate, req.PickupTime, model.RolePickup, office)
	if err != nil {
		s.quoteSideError(w, err)
		return
	}
	returnFee, err := s.sideSurcharge(r, office.ID, req.ReturnDate, req.ReturnTime, model.RoleReturn, office)
	if err != nil {
		s.quoteSideError(w, err)
		return
	}

	breakdown, err := pricing.Quote(category, days, pickupFee, returnFee, req.DiscountPercent)
	if err != nil {
		metrics.IncQuote("pricing_error")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	metrics.IncQuote("ok")
	writeJSON(w, http.StatusOK, QuoteResponse{
		Breakdown:        breakdown,
		PickupSurcharged: pickupFee > 0,
		ReturnSurcharged: returnFee > 0,
	})
}

var (
	errSlotUnavailable = errors.New("chosen time is not an available slot")
	errLookupFailed    = errors.New("reservation lookup failed")
)

// sideSurcharge checks that the chosen time is an open, unreserved slot for
// its side and returns the flat extension fee it carries.
func (s *Server) sideSurcharge(r *http.Request, officeID, rawDate, rawTime string, role model.Role, office *model.Office) (float64, error) {
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return 0, err
	}

	reserved, err := s.lookup.ReservedSlots(r.Context(), officeID, rawDate, role)
	if err != nil {
		s.logger.Error().Err(err).Str("office", officeID).Msg("reservation lookup failed")
		return 0, errLookupFailed
	}

	day, err := s.engine.SlotsForDate(office, date, role, reserved)
	if err != nil {
		return 0, err
	}
	if !slotSelectable(day, rawTime) {
		return 0, errSlotUnavailable
	}

	return day.Extended.SurchargeFor(rawTime), nil
}

func slotSelectable(day slots.DaySlots, t string) bool {
	for _, s := range day.Slots {
		if s.Time == t {
			return !s.Reserved
		}
	}
	return false
}

func (s *Server) quoteSideError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errSlotUnavailable):
		metrics.IncQuote("slot_unavailable")
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errLookupFailed):
		metrics.IncQuote("lookup_failed")
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		metrics.IncQuote("bad_request")
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
