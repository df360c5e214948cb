package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
)

// DeckStore defines the interface for saved layout persistence.
type DeckStore interface {
	// Insert saves a new deck.
	// Returns validation errors from the domain Deck if data is invalid.
	// Returns ErrDeckExists if a deck with the same ID already exists.
	Insert(ctx context.Context, deck *domain.Deck) error

	// List returns every saved deck, newest first by created_at.
	// Returns an empty slice when nothing is saved.
	List(ctx context.Context) ([]*domain.Deck, error)

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// AggregatePlacements returns the placement of every saved deck, in the
	// same order as List.
	AggregatePlacements(ctx context.Context) ([]domain.Placement, error)

	// WithTx returns a new DeckStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) DeckStore
}

// ScoreStore defines the interface for memorization score persistence.
type ScoreStore interface {
	// Insert saves a score record.
	// Returns validation errors from the domain ScoreRecord if data is invalid.
	Insert(ctx context.Context, score *domain.ScoreRecord) error

	// WithTx returns a new ScoreStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ScoreStore
}
