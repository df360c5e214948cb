package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/service"
	"github.com/phrazzld/karuta-api/internal/service/layout"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDeckService mocks the service.DeckService interface
type MockDeckService struct {
	mock.Mock
}

func (m *MockDeckService) SaveDeck(
	ctx context.Context,
	name string,
	selected []string,
	placement domain.Placement,
) (*domain.Deck, error) {
	args := m.Called(ctx, name, selected, placement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckService) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *MockDeckService) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckService) PlacementStats(ctx context.Context, cardID string) (*service.PlacementStats, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PlacementStats), args.Error(1)
}

func (m *MockDeckService) RecordScore(ctx context.Context, score int, deckName string) (*domain.ScoreRecord, error) {
	args := m.Called(ctx, score, deckName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreRecord), args.Error(1)
}

func (m *MockDeckService) Available() bool {
	return m.Called().Bool(0)
}

// testCatalog returns c1..c30: c1 single, c2/c3 siblings, c4 large, the rest
// class 3 with distinct first characters.
func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	cards := []*domain.Card{
		{ID: "c1", DecisiveString: "む", FullText: "むらさめの つゆもまだひぬ", Class: 1},
		{ID: "c2", DecisiveString: "かく", FullText: "かくとだに", Class: 2},
		{ID: "c3", DecisiveString: "かぜを", FullText: "かぜをいたみ", Class: 3},
		{ID: "c4", DecisiveString: "あさぼらけあ", FullText: "あさぼらけ ありあけのつきと", Class: 6},
	}
	for i := 5; i <= 30; i++ {
		cards = append(cards, &domain.Card{
			ID:             fmt.Sprintf("c%d", i),
			DecisiveString: string(rune(0x4E00+i)) + "x",
			Class:          3,
		})
	}
	catalog, err := domain.NewCatalog(cards)
	require.NoError(t, err)
	return catalog
}

func ids(from, to int) []string {
	var out []string
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("c%d", i))
	}
	return out
}

// balanced is a complete placement of c1..c25 that fires no advice rule.
func balanced() domain.Placement {
	var p domain.Placement
	p[domain.LeftTop] = ids(5, 8)
	p[domain.LeftMid] = ids(9, 12)
	p[domain.LeftLow] = append([]string{"c1", "c2"}, ids(13, 15)...)
	p[domain.RightTop] = ids(16, 19)
	p[domain.RightMid] = ids(20, 22)
	p[domain.RightLow] = append([]string{"c4", "c3"}, ids(23, 25)...)
	return p
}

type testServer struct {
	t        *testing.T
	handler  http.Handler
	sessions *layout.Manager
	decks    *MockDeckService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	decks := &MockDeckService{}
	sessions := layout.NewManager(testCatalog(t), nil, slog.Default())
	return &testServer{
		t:        t,
		handler:  NewRouter(sessions, decks, slog.Default()),
		sessions: sessions,
		decks:    decks,
	}
}

// do sends a request and decodes a JSON response into out when out is not nil.
func (s *testServer) do(method, path string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	if out != nil {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func (s *testServer) createSession() uuid.UUID {
	s.t.Helper()

	var resp CreateSessionResponse
	w := s.do(http.MethodPost, "/api/sessions", nil, &resp)
	require.Equal(s.t, http.StatusCreated, w.Code)
	return resp.SessionID
}

func (s *testServer) selectCards(id uuid.UUID, cardIDs []string) {
	s.t.Helper()

	for _, c := range cardIDs {
		w := s.do(http.MethodPost, "/api/sessions/"+id.String()+"/selection", AddCardRequest{CardID: c}, nil)
		require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	}
}

func (s *testServer) place(id uuid.UUID, p domain.Placement) {
	s.t.Helper()

	for _, z := range domain.AllZones {
		w := s.do(http.MethodPut, "/api/sessions/"+id.String()+"/board/"+z.String(),
			AssignZoneRequest{CardIDs: p[z]}, nil)
		require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	}
}

// completeSession creates a session with a complete balanced board.
func (s *testServer) completeSession() uuid.UUID {
	s.t.Helper()

	id := s.createSession()
	s.selectCards(id, ids(1, 25))
	s.place(id, balanced())
	return id
}
