package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"sales-tracker-go/internal/postback"
)

func (s *Server) handlePostback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Unable to read request body.")
		return
	}

	var event postback.Event
	if err := json.Unmarshal(body, &event); err != nil {
		respondMessage(w, http.StatusBadRequest, "Request body must be valid JSON.")
		return
	}
	event.Raw = body

	stored, err := s.pipeline.Ingest(r.Context(), event)
	if err != nil {
		if errors.Is(err, postback.ErrMissingTransactionId) {
			respondMessage(w, http.StatusBadRequest, "transaction_id is required.")
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, saleResponseFrom(*stored))
}

// handlePostbackURL tells the dashboard which URL providers should be
// configured with. An explicit POSTBACK_URL wins over the derived one.
func (s *Server) handlePostbackURL(w http.ResponseWriter, r *http.Request) {
	url := s.cfg.PostbackURL
	if url == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		host := r.Host
		if host == "" {
			host = "localhost:3001"
		}
		url = scheme + "://" + host + "/api/postback"
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
