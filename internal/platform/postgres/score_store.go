package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
	"github.com/phrazzld/karuta-api/internal/store"
)

// PostgresScoreStore implements the store.ScoreStore interface.
type PostgresScoreStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScoreStore creates a new PostgreSQL implementation of the ScoreStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresScoreStore(db store.DBTX, logger *slog.Logger) *PostgresScoreStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScoreStore{
		db:     db,
		logger: logger.With(slog.String("component", "score_store")),
	}
}

var _ store.ScoreStore = (*PostgresScoreStore)(nil)

// WithTx implements store.ScoreStore.WithTx
func (s *PostgresScoreStore) WithTx(tx *sql.Tx) store.ScoreStore {
	return &PostgresScoreStore{db: tx, logger: s.logger}
}

// Insert implements store.ScoreStore.Insert
func (s *PostgresScoreStore) Insert(ctx context.Context, score *domain.ScoreRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := score.Validate(); err != nil {
		log.Warn("score validation failed during insert",
			slog.String("error", err.Error()),
			slog.Int("score", score.Score))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO scores (id, deck_name, score, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, score.ID, score.DeckName, score.Score, score.CreatedAt); err != nil {
		log.Error("failed to insert score",
			slog.String("error", err.Error()),
			slog.String("score_id", score.ID.String()))
		return store.NewStoreError("score", "insert", "failed to insert score", MapError(err))
	}

	log.Info("score saved",
		slog.String("score_id", score.ID.String()),
		slog.Int("score", score.Score),
		slog.String("deck_name", score.DeckName))
	return nil
}
