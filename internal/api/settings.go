package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"sales-tracker-go/internal/models"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload models.Settings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	payload.UserName = strings.TrimSpace(payload.UserName)
	payload.UserEmail = strings.TrimSpace(payload.UserEmail)
	if payload.MonthlyInvestment.IsNegative() {
		respondMessage(w, http.StatusBadRequest, "Monthly investment cannot be negative.")
		return
	}

	if err := s.settings.Save(r.Context(), payload); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payload)
}
