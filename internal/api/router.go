package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/karuta-api/internal/api/middleware"
	"github.com/phrazzld/karuta-api/internal/service"
	"github.com/phrazzld/karuta-api/internal/service/layout"
)

// NewRouter wires every handler and the shared middleware into one router.
func NewRouter(sessions *layout.Manager, decks service.DeckService, logger *slog.Logger) http.Handler {
	catalogHandler := NewCatalogHandler(sessions.Catalog(), logger)
	sessionHandler := NewSessionHandler(sessions, decks, logger)
	deckHandler := NewDeckHandler(decks, sessions.Catalog(), logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", catalogHandler.ListCards)

		r.Post("/sessions", sessionHandler.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.GetSession)
			r.Delete("/", sessionHandler.DeleteSession)

			r.Post("/selection", sessionHandler.AddCard)
			r.Delete("/selection", sessionHandler.ClearSelection)
			r.Delete("/selection/{cardID}", sessionHandler.RemoveCard)

			r.Put("/board/{zone}", sessionHandler.AssignZone)
			r.Get("/advice", sessionHandler.GetAdvice)

			r.Post("/memorize/start", sessionHandler.StartMemorize)
			r.Post("/memorize/test", sessionHandler.StartTest)
			r.Post("/memorize/submit", sessionHandler.SubmitRecall)
			r.Post("/memorize/cancel", sessionHandler.CancelSession)

			r.Post("/decks", sessionHandler.SaveDeck)
			r.Post("/decks/{deckID}/load", sessionHandler.LoadDeck)
		})

		r.Get("/decks", deckHandler.ListDecks)
		r.Get("/stats/placements", deckHandler.PlacementStats)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
