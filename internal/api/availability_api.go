package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"vanrent/internal/export"
	"vanrent/internal/metrics"
	"vanrent/internal/model"
	"vanrent/internal/resapi"
	"vanrent/internal/schedule"
	"vanrent/internal/slots"
)

const dateLayout = "2006-01-02"

// OfficeSummary is the list-view shape of an office.
type OfficeSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SlotsResponse is the payload for GET /api/v1/offices/{id}/slots.
type SlotsResponse struct {
	OfficeID string             `json:"office_id"`
	Date     string             `json:"date"`
	Role     model.Role         `json:"role"`
	Source   schedule.Source    `json:"source"`
	Info     string             `json:"info"`
	Slots    []model.SlotStatus `json:"slots"`
	// Surcharge metadata for the price step: a chosen time strictly outside
	// [normal_start, normal_end] costs the flat extension fee.
	NormalStart    string  `json:"normal_start,omitempty"`
	NormalEnd      string  `json:"normal_end,omitempty"`
	ExtensionPrice float64 `json:"extension_price"`
}

// handleListOffices returns the office catalogue.
// GET /api/v1/offices
func (s *Server) handleListOffices(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("offices_list")

	offices := s.catalogue.List()
	out := make([]OfficeSummary, 0, len(offices))
	for _, o := range offices {
		out = append(out, OfficeSummary{ID: o.ID, Name: o.Name})
	}
	writeJSON(w, http.StatusOK, map[string]any{"offices": out})
}

// handleOfficeSlots returns the time-slot list for one office, date and
// reservation side.
// GET /api/v1/offices/{id}/slots?date=YYYY-MM-DD&role=pickup|return
func (s *Server) handleOfficeSlots(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("office_slots")

	office := s.catalogue.Get(r.PathValue("id"))
	if office == nil {
		writeError(w, http.StatusNotFound, "unknown office")
		return
	}

	date, role, err := parseSlotQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lookup := s.fetchers.lookupFor(r.URL.Query().Get("consumer"))
	reserved, err := lookup.ReservedSlots(r.Context(), office.ID, date.Format(dateLayout), role)
	if err != nil {
		if errors.Is(err, resapi.ErrStaleLookup) {
			// A newer query for this consumer superseded us; the fresh
			// response carries the data.
			writeError(w, http.StatusConflict, "superseded by a newer query")
			return
		}
		s.logger.Error().Err(err).Str("office", office.ID).Msg("reservation lookup failed")
		writeError(w, http.StatusBadGateway, "reservation lookup failed")
		return
	}

	day, err := s.engine.SlotsForDate(office, date, role, reserved)
	if err != nil {
		s.logger.Error().Err(err).Str("office", office.ID).Msg("slot computation failed")
		writeError(w, http.StatusInternalServerError, "slot computation failed")
		return
	}
	metrics.IncAvailabilityQuery(string(day.Window.Source))

	resp := SlotsResponse{
		OfficeID:       office.ID,
		Date:           date.Format(dateLayout),
		Role:           role,
		Source:         day.Window.Source,
		Info:           day.Window.Info,
		Slots:          day.Slots,
		ExtensionPrice: day.Extended.Price,
	}
	if day.HasSlots() {
		resp.NormalStart = day.Extended.NormalStart
		resp.NormalEnd = day.Extended.NormalEnd
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleScheduleExport streams the office schedule workbook.
// GET /api/v1/offices/{id}/schedule.xlsx?date=YYYY-MM-DD
func (s *Server) handleScheduleExport(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("schedule_export")

	office := s.catalogue.Get(r.PathValue("id"))
	if office == nil {
		writeError(w, http.StatusNotFound, "unknown office")
		return
	}

	date, role, err := parseSlotQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lookup := s.fetchers.lookupFor(r.URL.Query().Get("consumer"))
	reserved, err := lookup.ReservedSlots(r.Context(), office.ID, date.Format(dateLayout), role)
	if err != nil {
		s.logger.Error().Err(err).Str("office", office.ID).Msg("reservation lookup failed")
		writeError(w, http.StatusBadGateway, "reservation lookup failed")
		return
	}

	day, err := s.engine.SlotsForDate(office, date, role, reserved)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "slot computation failed")
		return
	}

	s.writeWorkbook(w, office, date, day)
}

func parseSlotQuery(r *http.Request) (time.Time, model.Role, error) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		return time.Time{}, "", fmt.Errorf("date query parameter is required")
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid date format; expected YYYY-MM-DD")
	}

	rawRole := r.URL.Query().Get("role")
	if rawRole == "" {
		return date, model.RolePickup, nil
	}
	role, ok := model.ParseRole(rawRole)
	if !ok {
		return time.Time{}, "", fmt.Errorf("invalid role; expected pickup or return")
	}
	return date, role, nil
}

func (s *Server) writeWorkbook(w http.ResponseWriter, office *model.Office, date time.Time, day slots.DaySlots) {
	f, err := export.ScheduleWorkbook(office, date, day)
	if err != nil {
		s.logger.Error().Err(err).Str("office", office.ID).Msg("workbook build failed")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s-%s.xlsx", office.ID, date.Format(dateLayout)))
	if err := f.Write(w); err != nil {
		s.logger.Error().Err(err).Msg("workbook write failed")
	}
}
