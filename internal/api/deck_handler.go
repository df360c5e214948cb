package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/karuta-api/internal/api/shared"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
	"github.com/phrazzld/karuta-api/internal/service"
)

// DeckHandler serves saved decks and placement statistics.
type DeckHandler struct {
	decks   service.DeckService
	catalog *domain.Catalog
	logger  *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(decks service.DeckService, catalog *domain.Catalog, logger *slog.Logger) *DeckHandler {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("decks cannot be nil for DeckHandler")
	}
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil for DeckHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		decks:   decks,
		catalog: catalog,
		logger:  logger.With(slog.String("component", "deck_handler")),
	}
}

// ListDecks handles GET /api/decks requests
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.ListDecks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}
	if decks == nil {
		decks = []*domain.Deck{}
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("decks listed", slog.Int("count", len(decks)))
	shared.RespondWithJSON(w, r, http.StatusOK, DeckListResponse{Decks: decks})
}

// PlacementStats handles GET /api/stats/placements?card_id= requests
func (h *DeckHandler) PlacementStats(w http.ResponseWriter, r *http.Request) {
	cardID := r.URL.Query().Get("card_id")
	if cardID != "" && !h.catalog.Contains(cardID) {
		HandleAPIError(w, r, fmt.Errorf("%w: %q", domain.ErrCardNotInCatalog, cardID), "")
		return
	}

	stats, err := h.decks.PlacementStats(r.Context(), cardID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build placement statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}
