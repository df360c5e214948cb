package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
	"github.com/phrazzld/karuta-api/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{db: tx, logger: s.logger}
}

// Insert implements store.DeckStore.Insert
// The selection and placement are stored as JSONB.
func (s *PostgresDeckStore) Insert(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	selected, err := json.Marshal(deck.Selected)
	if err != nil {
		return fmt.Errorf("encode selected_fuda: %w", err)
	}
	placement, err := json.Marshal(deck.Placement)
	if err != nil {
		return fmt.Errorf("encode placement: %w", err)
	}

	query := `
		INSERT INTO decks (id, deck_name, selected_fuda, placement, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(ctx, query,
		deck.ID,
		deck.Name,
		string(selected),
		string(placement),
		deck.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("deck already exists", slog.String("deck_id", deck.ID.String()))
			return MapUniqueViolation(err, "deck", store.ErrDeckExists)
		}
		log.Error("failed to insert deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return store.NewStoreError("deck", "insert", "failed to insert deck", MapError(err))
	}

	log.Info("deck saved",
		slog.String("deck_id", deck.ID.String()),
		slog.String("deck_name", deck.Name))
	return nil
}

// List implements store.DeckStore.List
func (s *PostgresDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_name, selected_fuda, placement, created_at
		FROM decks
		ORDER BY created_at DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "list", "failed to query decks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	decks := []*domain.Deck{}
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck", slog.String("error", err.Error()))
			return nil, store.NewStoreError("deck", "list", "failed to read deck", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "list", "failed to iterate decks", MapError(err))
	}

	log.Debug("decks listed", slog.Int("count", len(decks)))
	return decks, nil
}

// GetByID implements store.DeckStore.GetByID
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_name, selected_fuda, placement, created_at
		FROM decks
		WHERE id = $1
	`
	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, store.NewStoreError("deck", "get", "failed to read deck", MapError(err))
	}
	return deck, nil
}

// AggregatePlacements implements store.DeckStore.AggregatePlacements
func (s *PostgresDeckStore) AggregatePlacements(ctx context.Context) ([]domain.Placement, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT placement FROM decks ORDER BY created_at DESC, id`)
	if err != nil {
		log.Error("failed to aggregate placements", slog.String("error", err.Error()))
		return nil, store.NewStoreError("deck", "aggregate", "failed to query placements", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	placements := []domain.Placement{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, store.NewStoreError("deck", "aggregate", "failed to scan placement", err)
		}
		var p domain.Placement
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, store.NewStoreError("deck", "aggregate", "stored placement is malformed", err)
		}
		placements = append(placements, p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("deck", "aggregate", "failed to iterate placements", MapError(err))
	}

	return placements, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeck(row rowScanner) (*domain.Deck, error) {
	var (
		deck                domain.Deck
		selected, placement []byte
	)
	if err := row.Scan(&deck.ID, &deck.Name, &selected, &placement, &deck.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(selected, &deck.Selected); err != nil {
		return nil, fmt.Errorf("decode selected_fuda: %w", err)
	}
	if err := json.Unmarshal(placement, &deck.Placement); err != nil {
		return nil, fmt.Errorf("decode placement: %w", err)
	}
	return &deck, nil
}
