package api

import (
	"net/http"
	"strings"
	"time"

	"sales-tracker-go/internal/attribution"
	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/period"
	"sales-tracker-go/internal/report"
)

// parseReportWindow validates the period/startDate/endDate query triple
// shared by every report endpoint. A named period and a custom range are
// mutually exclusive, and a custom range needs both bounds.
func parseReportWindow(r *http.Request) (period.Range, bool, string) {
	query := r.URL.Query()
	name := strings.ToLower(strings.TrimSpace(query.Get("period")))
	startDate := strings.TrimSpace(query.Get("startDate"))
	endDate := strings.TrimSpace(query.Get("endDate"))
	hasCustom := startDate != "" || endDate != ""

	if name != "" && hasCustom {
		return period.Range{}, false, "Use either period or startDate/endDate, not both."
	}
	if hasCustom && (startDate == "" || endDate == "") {
		return period.Range{}, false, "Both startDate and endDate are required for custom ranges."
	}
	if name != "" && !period.IsNamed(name) {
		return period.Range{}, false, "Invalid period parameter provided."
	}

	rng, err := period.Resolve(name, startDate, endDate, time.Now())
	if err != nil {
		return period.Range{}, false, err.Error()
	}
	return rng, true, ""
}

// attendantScope reads the optional attendant filter; "all" (and the
// legacy "todos") means no filter.
func attendantScope(r *http.Request) string {
	code := attribution.NormalizeCode(r.URL.Query().Get("attendant"))
	if code == "all" || code == "todos" {
		return ""
	}
	return code
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rng, ok, message := parseReportWindow(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, message)
		return
	}

	summary, err := s.reports.BuildSummary(r.Context(), report.Query{
		Range:         rng,
		AttendantCode: attendantScope(r),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAttendantsReport(w http.ResponseWriter, r *http.Request) {
	rng, ok, message := parseReportWindow(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, message)
		return
	}

	ranking, err := s.reports.BuildAttendantRanking(r.Context(), rng)
	if err != nil {
		respondError(w, err)
		return
	}
	if ranking == nil {
		ranking = []models.AttendantRank{}
	}
	respondJSON(w, http.StatusOK, ranking)
}

func (s *Server) handleCampaignsReport(w http.ResponseWriter, r *http.Request) {
	rng, ok, message := parseReportWindow(r)
	if !ok {
		respondMessage(w, http.StatusBadRequest, message)
		return
	}

	entries, err := s.reports.BuildCampaignReport(r.Context(), rng)
	if err != nil {
		respondError(w, err)
		return
	}
	if entries == nil {
		entries = []models.CampaignReportEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}
