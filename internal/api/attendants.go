package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"sales-tracker-go/internal/attribution"
	"sales-tracker-go/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type attendantPayload struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	MonthlyCost decimal.Decimal `json:"monthly_cost"`
}

// validateAttendant normalizes and checks a payload, returning the
// rejection message when it is unacceptable.
func validateAttendant(payload *attendantPayload) string {
	payload.Code = attribution.NormalizeCode(payload.Code)
	payload.Name = strings.TrimSpace(payload.Name)

	if payload.Code == models.UnassignedAttendant.Code {
		return "This code is reserved."
	}
	if !attribution.IsValidAttendantCode(payload.Code) {
		return "Code must be exactly 4 letters or digits."
	}
	if payload.Name == "" {
		return "Name is required."
	}
	if payload.MonthlyCost.IsNegative() {
		return "Monthly cost cannot be negative."
	}
	return ""
}

func (s *Server) handleListAttendants(w http.ResponseWriter, r *http.Request) {
	attendants, err := s.attendants.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if attendants == nil {
		attendants = []models.Attendant{}
	}
	respondJSON(w, http.StatusOK, attendants)
}

func (s *Server) handleCreateAttendant(w http.ResponseWriter, r *http.Request) {
	var payload attendantPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}
	if message := validateAttendant(&payload); message != "" {
		respondMessage(w, http.StatusBadRequest, message)
		return
	}

	attendant := models.Attendant{
		Code:        payload.Code,
		Name:        payload.Name,
		MonthlyCost: payload.MonthlyCost,
	}
	if err := s.attendants.Create(r.Context(), attendant); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, attendant)
}

func (s *Server) handleUpdateAttendant(w http.ResponseWriter, r *http.Request) {
	code := attribution.NormalizeCode(chi.URLParam(r, "code"))
	if code == models.UnassignedAttendant.Code {
		respondMessage(w, http.StatusBadRequest, "This code is reserved.")
		return
	}
	if !attribution.IsValidAttendantCode(code) {
		respondMessage(w, http.StatusBadRequest, "Code must be exactly 4 letters or digits.")
		return
	}

	var payload attendantPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}
	// A payload without a code keeps the current one.
	if strings.TrimSpace(payload.Code) == "" {
		payload.Code = code
	}
	if message := validateAttendant(&payload); message != "" {
		respondMessage(w, http.StatusBadRequest, message)
		return
	}

	attendant := models.Attendant{
		Code:        payload.Code,
		Name:        payload.Name,
		MonthlyCost: payload.MonthlyCost,
	}
	if err := s.attendants.Update(r.Context(), code, attendant); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, attendant)
}

func (s *Server) handleDeleteAttendant(w http.ResponseWriter, r *http.Request) {
	code := attribution.NormalizeCode(chi.URLParam(r, "code"))
	if code == models.UnassignedAttendant.Code {
		respondMessage(w, http.StatusBadRequest, "This code is reserved.")
		return
	}
	if !attribution.IsValidAttendantCode(code) {
		respondMessage(w, http.StatusBadRequest, "Code must be exactly 4 letters or digits.")
		return
	}

	if err := s.attendants.Delete(r.Context(), code); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Attendant deleted."})
}
