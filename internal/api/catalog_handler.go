package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/karuta-api/internal/api/shared"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
	"github.com/phrazzld/karuta-api/internal/service/layout"
)

// CatalogHandler serves the card catalog.
type CatalogHandler struct {
	catalog *domain.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *domain.Catalog, logger *slog.Logger) *CatalogHandler {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil for CatalogHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CatalogHandler")
	}

	return &CatalogHandler{
		catalog: catalog,
		logger:  logger.With(slog.String("component", "catalog_handler")),
	}
}

// ListCards handles GET /api/catalog?class=&row= requests
func (h *CatalogHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	class, err := domain.ParseClassFilter(r.URL.Query().Get("class"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	row, err := domain.ParseKanaRow(r.URL.Query().Get("row"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards := h.catalog.Filter(class, row)
	resp := CatalogResponse{Cards: make([]layout.CardView, 0, len(cards)), Count: len(cards)}
	for _, c := range cards {
		resp.Cards = append(resp.Cards, layout.NewCardView(c))
	}

	log.Debug("catalog listed",
		slog.String("class", string(class)),
		slog.String("row", string(row)),
		slog.Int("count", resp.Count))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
