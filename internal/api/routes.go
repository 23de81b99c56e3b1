package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the HTTP surface around the ingestion and reporting core.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/postback", s.handlePostback)
		r.Get("/postback-url", s.handlePostbackURL)

		r.Get("/summary", s.handleSummary)
		r.Get("/reports/attendants", s.handleAttendantsReport)
		r.Get("/reports/campaigns", s.handleCampaignsReport)

		r.Get("/sales", s.handleListSales)
		r.Patch("/sales/{transactionId}/status", s.handleUpdateSaleStatus)
		r.Patch("/sales/{transactionId}/attendant", s.handleAssignAttendant)

		r.Get("/attendants", s.handleListAttendants)
		r.Post("/attendants", s.handleCreateAttendant)
		r.Put("/attendants/{code}", s.handleUpdateAttendant)
		r.Delete("/attendants/{code}", s.handleDeleteAttendant)

		r.Get("/campaigns", s.handleListCampaigns)
		r.Post("/campaigns", s.handleCreateCampaign)
		r.Put("/campaigns/{code}", s.handleUpdateCampaign)
		r.Delete("/campaigns/{code}", s.handleDeleteCampaign)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.HealthCheck(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
