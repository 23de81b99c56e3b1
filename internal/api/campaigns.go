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

type campaignPayload struct {
	Code string          `json:"code"`
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

func validateCampaign(payload *campaignPayload) string {
	payload.Code = attribution.NormalizeCode(payload.Code)
	payload.Name = strings.TrimSpace(payload.Name)

	if payload.Code == models.UndefinedCampaign.Code {
		return "This code is reserved."
	}
	if !attribution.IsValidCampaignCode(payload.Code) {
		return "Code must be 1 to 10 letters or digits."
	}
	if payload.Name == "" {
		return "Name is required."
	}
	if payload.Cost.IsNegative() {
		return "Cost cannot be negative."
	}
	return ""
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.campaigns.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	respondJSON(w, http.StatusOK, campaigns)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var payload campaignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}
	if message := validateCampaign(&payload); message != "" {
		respondMessage(w, http.StatusBadRequest, message)
		return
	}

	campaign := models.Campaign{
		Code: payload.Code,
		Name: payload.Name,
		Cost: payload.Cost,
	}
	if err := s.campaigns.Create(r.Context(), campaign); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, campaign)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	code := attribution.NormalizeCode(chi.URLParam(r, "code"))
	if code == models.UndefinedCampaign.Code {
		respondMessage(w, http.StatusBadRequest, "This code is reserved.")
		return
	}
	if !attribution.IsValidCampaignCode(code) {
		respondMessage(w, http.StatusBadRequest, "Code must be 1 to 10 letters or digits.")
		return
	}

	var payload campaignPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}
	if strings.TrimSpace(payload.Code) == "" {
		payload.Code = code
	}
	if message := validateCampaign(&payload); message != "" {
		respondMessage(w, http.StatusBadRequest, message)
		return
	}

	campaign := models.Campaign{
		Code: payload.Code,
		Name: payload.Name,
		Cost: payload.Cost,
	}
	if err := s.campaigns.Update(r.Context(), code, campaign); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	code := attribution.NormalizeCode(chi.URLParam(r, "code"))
	// The reserved code matches the valid pattern, so reject it first.
	if code == models.UndefinedCampaign.Code {
		respondMessage(w, http.StatusBadRequest, "This code is reserved.")
		return
	}
	if !attribution.IsValidCampaignCode(code) {
		respondMessage(w, http.StatusBadRequest, "Code must be 1 to 10 letters or digits.")
		return
	}

	if err := s.campaigns.Delete(r.Context(), code); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Campaign deleted."})
}
