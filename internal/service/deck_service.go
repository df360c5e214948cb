package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
	"github.com/phrazzld/karuta-api/internal/store"
)

// PlacementStats is the placement grid built from every saved deck.
type PlacementStats struct {
	CardID    string               `json:"card_id,omitempty"`
	DeckCount int                  `json:"deck_count"`
	Grid      domain.PlacementGrid `json:"grid"`
}

// DeckService provides the persistence use cases of the layout tool.
type DeckService interface {
	// SaveDeck stores a named layout.
	SaveDeck(ctx context.Context, name string, selected []string, placement domain.Placement) (*domain.Deck, error)

	// ListDecks returns saved layouts, newest first.
	ListDecks(ctx context.Context) ([]*domain.Deck, error)

	// GetDeck returns one saved layout.
	// Returns store.ErrDeckNotFound if it does not exist.
	GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// PlacementStats counts where a card (or every card, when cardID is
	// empty) was placed across all saved decks.
	PlacementStats(ctx context.Context, cardID string) (*PlacementStats, error)

	// RecordScore stores a memorization test result.
	RecordScore(ctx context.Context, score int, deckName string) (*domain.ScoreRecord, error)

	// Available reports whether a persistence gateway is configured.
	Available() bool
}

// deckServiceImpl implements the DeckService interface
type deckServiceImpl struct {
	db     *sql.DB
	decks  store.DeckStore
	scores store.ScoreStore
	logger *slog.Logger
}

// NewDeckService creates a DeckService backed by the given stores. Writes
// run in a transaction on db.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	db *sql.DB,
	decks store.DeckStore,
	scores store.ScoreStore,
	logger *slog.Logger,
) (DeckService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if decks == nil {
		return nil, domain.NewValidationError("decks", "cannot be nil", domain.ErrValidation)
	}
	if scores == nil {
		return nil, domain.NewValidationError("scores", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		db:     db,
		decks:  decks,
		scores: scores,
		logger: logger.With(slog.String("component", "deck_service")),
	}, nil
}

var _ DeckService = (*deckServiceImpl)(nil)

// SaveDeck implements DeckService.SaveDeck
func (s *deckServiceImpl) SaveDeck(
	ctx context.Context,
	name string,
	selected []string,
	placement domain.Placement,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(name, selected, placement)
	if err != nil {
		log.Debug("deck rejected", slog.String("error", err.Error()))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.decks.WithTx(tx).Insert(ctx, deck)
	})
	if err != nil {
		log.Error("failed to save deck",
			slog.String("error", err.Error()),
			slog.String("deck_name", deck.Name))
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		return nil, operationFailed("save_deck", "failed to save deck", err)
	}

	log.Info("deck saved",
		slog.String("deck_id", deck.ID.String()),
		slog.String("deck_name", deck.Name))
	return deck, nil
}

// ListDecks implements DeckService.ListDecks
func (s *deckServiceImpl) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list decks",
			slog.String("error", err.Error()))
		return nil, operationFailed("list_decks", "failed to list decks", err)
	}
	return decks, nil
}

// GetDeck implements DeckService.GetDeck
func (s *deckServiceImpl) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.decks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, NewServiceError("get_deck", "deck not found", store.ErrDeckNotFound)
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, operationFailed("get_deck", "failed to load deck", err)
	}
	return deck, nil
}

// PlacementStats implements DeckService.PlacementStats
func (s *deckServiceImpl) PlacementStats(ctx context.Context, cardID string) (*PlacementStats, error) {
	placements, err := s.decks.AggregatePlacements(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to aggregate placements",
			slog.String("error", err.Error()))
		return nil, operationFailed("placement_stats", "failed to aggregate placements", err)
	}

	return &PlacementStats{
		CardID:    cardID,
		DeckCount: len(placements),
		Grid:      domain.BuildPlacementGrid(placements, cardID),
	}, nil
}

// RecordScore implements DeckService.RecordScore
func (s *deckServiceImpl) RecordScore(ctx context.Context, score int, deckName string) (*domain.ScoreRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rec, err := domain.NewScoreRecord(score, deckName)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.scores.WithTx(tx).Insert(ctx, rec)
	})
	if err != nil {
		log.Error("failed to record score",
			slog.String("error", err.Error()),
			slog.Int("score", score))
		return nil, operationFailed("record_score", "failed to record score", err)
	}

	return rec, nil
}

// Available implements DeckService.Available
func (s *deckServiceImpl) Available() bool { return true }
