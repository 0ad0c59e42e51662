package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mtgtools/commanderforge/internal/api/handlers"
	"github.com/mtgtools/commanderforge/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		deckHandler := handlers.NewDeckHandler(s.generator, ObserveGeneration)
		r.Route("/decks", func(r chi.Router) {
			r.Post("/generate", deckHandler.GenerateDeck)
		})

		cardHandler := handlers.NewCardHandler(s.db)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.SearchCards)
			r.Post("/analyze", cardHandler.AnalyzeCard)
			r.Get("/name/{name}", cardHandler.GetCardByName)
			r.Get("/name/{name}/analysis", cardHandler.AnalyzeCardByName)
		})

		tagHandler := handlers.NewTagHandler(s.db)
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tagHandler.GetTags)
			r.Post("/merge", tagHandler.MergeTags)
			r.Delete("/{name}", tagHandler.DeleteTag)
		})

		synergyHandler := handlers.NewSynergyHandler(s.db, s.scorer)
		r.Post("/synergy", synergyHandler.CalculateSynergy)
	})
}

// healthCheck reports liveness and corpus size.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := s.db.CountCards(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"cards":  count,
	})
}
