package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockDeckStore mocks the store.DeckStore interface
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) Insert(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckStore) AggregatePlacements(ctx context.Context) ([]domain.Placement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Placement), args.Error(1)
}

// WithTx returns the same mock so expectations carry over into transactions.
func (m *MockDeckStore) WithTx(*sql.Tx) store.DeckStore {
	return m
}

// MockScoreStore mocks the store.ScoreStore interface
type MockScoreStore struct {
	mock.Mock
}

func (m *MockScoreStore) Insert(ctx context.Context, rec *domain.ScoreRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockScoreStore) WithTx(*sql.Tx) store.ScoreStore {
	return m
}
