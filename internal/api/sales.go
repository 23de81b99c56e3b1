package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"sales-tracker-go/internal/attribution"
	"sales-tracker-go/internal/models"
	"sales-tracker-go/internal/money"
	"sales-tracker-go/internal/period"
	"sales-tracker-go/internal/status"
	"sales-tracker-go/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// saleResponse is a stored sale with the display fields the dashboard
// derives on every read: the status class, the decimal amount and the
// timestamp reporting windows key on.
type saleResponse struct {
	models.Sale
	StatusClass   status.Class    `json:"status_class"`
	TotalValue    decimal.Decimal `json:"total_value"`
	EffectiveDate string          `json:"effective_date"`
}

func saleResponseFrom(sale models.Sale) saleResponse {
	return saleResponse{
		Sale:          sale,
		StatusClass:   status.Classify(sale.StatusText, sale.StatusCode),
		TotalValue:    money.CentsToAmount(sale.TotalValueCents),
		EffectiveDate: sale.EffectiveDate(),
	}
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.SaleFilter{
		Status:        query.Get("status"),
		AttendantCode: query.Get("attendant"),
		Search:        query.Get("search"),
	}

	sales, err := s.sales.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	response := make([]saleResponse, len(sales))
	for i, sale := range sales {
		response[i] = saleResponseFrom(sale)
	}
	respondJSON(w, http.StatusOK, response)
}

// manualStatuses are the only hand-applied corrections: marking a sale as
// collected or as lost. English and Portuguese keys are both accepted;
// the stored fields mirror what the provider would have sent so
// classification stays uniform.
var manualStatuses = map[string]struct {
	code int
	text string
}{
	"paid":      {3, "Pago"},
	"pago":      {3, "Pago"},
	"failed":    {5, "Frustrado"},
	"frustrado": {5, "Frustrado"},
}

func (s *Server) handleUpdateSaleStatus(w http.ResponseWriter, r *http.Request) {
	transactionId := chi.URLParam(r, "transactionId")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	manual, ok := manualStatuses[strings.ToLower(strings.TrimSpace(body.Status))]
	if !ok {
		respondMessage(w, http.StatusBadRequest, `status must be either "paid" or "failed".`)
		return
	}

	updatedAt := time.Now().Format(period.DateTimeLayout)
	sale, err := s.sales.UpdateStatus(r.Context(), transactionId, manual.code, manual.text, updatedAt)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saleResponseFrom(*sale))
}

func (s *Server) handleAssignAttendant(w http.ResponseWriter, r *http.Request) {
	transactionId := chi.URLParam(r, "transactionId")

	var body struct {
		AttendantCode string `json:"attendant_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}

	code := attribution.NormalizeCode(body.AttendantCode)
	if code == "" {
		respondMessage(w, http.StatusBadRequest, "A valid attendant code is required.")
		return
	}

	// Reassigning back to the reserved attendant is always allowed.
	var attendant models.Attendant
	if code == models.UnassignedAttendant.Code {
		attendant = models.UnassignedAttendant
	} else {
		if !attribution.IsValidAttendantCode(code) {
			respondMessage(w, http.StatusBadRequest, "A valid 4-character code is required.")
			return
		}
		registered, err := s.attendants.FindByCode(r.Context(), code)
		if err != nil {
			respondError(w, err)
			return
		}
		attendant = *registered
	}

	sale, err := s.sales.AssignAttendant(r.Context(), transactionId, attendant)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saleResponseFrom(*sale))
}
