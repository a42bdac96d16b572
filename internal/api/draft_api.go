package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"vanrent/internal/booking"
	"vanrent/internal/metrics"
)

// DraftUpdateRequest applies one booking step. Fields are optional; set
// fields are applied in pipeline order (office, dates, times, age).
type DraftUpdateRequest struct {
	OfficeID   string `json:"office_id,omitempty"`
	PickupDate string `json:"pickup_date,omitempty"`
	ReturnDate string `json:"return_date,omitempty"`
	PickupTime string `json:"pickup_time,omitempty"`
	ReturnTime string `json:"return_time,omitempty"`
	DriverAge  int    `json:"driver_age,omitempty"`
}

// DraftResponse reflects the draft back with its derived state.
type DraftResponse struct {
	ID         string        `json:"id"`
	State      booking.State `json:"state"`
	OfficeID   string        `json:"office_id,omitempty"`
	PickupDate string        `json:"pickup_date,omitempty"`
	PickupTime string        `json:"pickup_time,omitempty"`
	ReturnDate string        `json:"return_date,omitempty"`
	ReturnTime string        `json:"return_time,omitempty"`
}

// handleCreateDraft starts a booking draft.
// POST /api/v1/drafts
func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("draft_create")
	writeJSON(w, http.StatusCreated, draftResponse(s.drafts.Create()))
}

// handleGetDraft returns the current draft state.
// GET /api/v1/drafts/{id}
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("draft_get")

	d := s.drafts.Get(r.PathValue("id"))
	if d == nil {
		writeError(w, http.StatusNotFound, "unknown or expired draft")
		return
	}
	writeJSON(w, http.StatusOK, draftResponse(d))
}

// handleUpdateDraft applies booking steps to a draft. A rejected step (such
// as a same-day time pair closer than 6 hours) leaves the draft unchanged
// for that field and surfaces a validation error.
// POST /api/v1/drafts/{id}
func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("draft_update")

	d := s.drafts.Get(r.PathValue("id"))
	if d == nil {
		writeError(w, http.StatusNotFound, "unknown or expired draft")
		return
	}

	var req DraftUpdateRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.applyDraftSteps(d, req); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, booking.ErrSameDayMinDuration) {
			metrics.IncSameDayRejection()
		}
		writeJSON(w, status, map[string]any{
			"error": err.Error(),
			"draft": draftResponse(d),
		})
		return
	}

	writeJSON(w, http.StatusOK, draftResponse(d))
}

func (s *Server) applyDraftSteps(d *booking.Draft, req DraftUpdateRequest) error {
	if req.OfficeID != "" {
		office := s.catalogue.Get(req.OfficeID)
		if office == nil {
			return errors.New("unknown office")
		}
		d.SetOffice(office)
	}
	if req.PickupDate != "" || req.ReturnDate != "" {
		if err := d.SetDates(req.PickupDate, req.ReturnDate); err != nil {
			return err
		}
	}
	if req.PickupTime != "" {
		if err := d.SetPickupTime(req.PickupTime); err != nil {
			return err
		}
	}
	if req.ReturnTime != "" {
		if err := d.SetReturnTime(req.ReturnTime); err != nil {
			return err
		}
	}
	if req.DriverAge != 0 {
		if err := d.SetDriverAge(req.DriverAge); err != nil {
			return err
		}
	}
	return nil
}

func draftResponse(d *booking.Draft) DraftResponse {
	pickupDate, pickupTime, returnDate, returnTime := d.Selection()
	resp := DraftResponse{
		ID:         d.ID,
		State:      d.State(),
		PickupDate: pickupDate,
		PickupTime: pickupTime,
		ReturnDate: returnDate,
		ReturnTime: returnTime,
	}
	if office := d.Office(); office != nil {
		resp.OfficeID = office.ID
	}
	return resp
}
