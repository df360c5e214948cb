package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
)

// unavailableDeckService answers every call with ErrPersistenceUnavailable.
// It stands in when no database is configured, so the layout features keep
// working without persistence.
type unavailableDeckService struct {
	reason string
	logger *slog.Logger
}

// NewUnavailableDeckService returns a DeckService whose operations all fail
// with ErrPersistenceUnavailable. reason is included in the error.
func NewUnavailableDeckService(reason string, logger *slog.Logger) DeckService {
	if logger == nil {
		logger = slog.Default()
	}
	return &unavailableDeckService{
		reason: reason,
		logger: logger.With(slog.String("component", "deck_service")),
	}
}

func (s *unavailableDeckService) fail(operation string) error {
	s.logger.Debug("persistence call while unavailable", slog.String("operation", operation))
	return NewServiceError(operation, s.reason, ErrPersistenceUnavailable)
}

func (s *unavailableDeckService) SaveDeck(context.Context, string, []string, domain.Placement) (*domain.Deck, error) {
	return nil, s.fail("save_deck")
}

func (s *unavailableDeckService) ListDecks(context.Context) ([]*domain.Deck, error) {
	return nil, s.fail("list_decks")
}

func (s *unavailableDeckService) GetDeck(context.Context, uuid.UUID) (*domain.Deck, error) {
	return nil, s.fail("get_deck")
}

func (s *unavailableDeckService) PlacementStats(context.Context, string) (*PlacementStats, error) {
	return nil, s.fail("placement_stats")
}

func (s *unavailableDeckService) RecordScore(context.Context, int, string) (*domain.ScoreRecord, error) {
	return nil, s.fail("record_score")
}

func (s *unavailableDeckService) Available() bool { return false }
