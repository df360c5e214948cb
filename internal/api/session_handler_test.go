package api

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/api/shared"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/domain/advice"
	"github.com/phrazzld/karuta-api/internal/domain/memorize"
	"github.com/phrazzld/karuta-api/internal/service"
	"github.com/phrazzld/karuta-api/internal/service/layout"
	"github.com/phrazzld/karuta-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func path(id uuid.UUID, suffix string) string {
	return "/api/sessions/" + id.String() + suffix
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	var created CreateSessionResponse
	w := s.do(http.MethodPost, "/api/sessions", nil, &created)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, created.SessionID, created.View.SessionID)
	assert.Equal(t, domain.SelectionSize, created.View.Capacity)

	var v layout.View
	w = s.do(http.MethodGet, path(created.SessionID, ""), nil, &v)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, memorize.ModeWaiting, v.Mode)

	w = s.do(http.MethodDelete, path(created.SessionID, ""), nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var errResp shared.ErrorResponse
	w = s.do(http.MethodGet, path(created.SessionID, ""), nil, &errResp)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Session not found", errResp.Error)
	assert.NotEmpty(t, errResp.TraceID)

	w = s.do(http.MethodGet, "/api/sessions/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectionEndpoints(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession()

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{name: "add card", body: AddCardRequest{CardID: "c1"}, status: http.StatusOK},
		{name: "add again is a no-op", body: AddCardRequest{CardID: "c1"}, status: http.StatusOK},
		{name: "unknown card", body: AddCardRequest{CardID: "zz"}, status: http.StatusUnprocessableEntity},
		{name: "missing card id", body: `{}`, status: http.StatusBadRequest},
		{name: "malformed body", body: `{"card_id":`, status: http.StatusBadRequest},
		{name: "empty body", body: "", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, path(id, "/selection"), tt.body, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	var v layout.View
	s.do(http.MethodGet, path(id, ""), nil, &v)
	assert.Equal(t, 1, v.SelectedCount)

	s.do(http.MethodDelete, path(id, "/selection/c1"), nil, &v)
	assert.Zero(t, v.SelectedCount)

	s.selectCards(id, ids(1, 3))
	s.do(http.MethodDelete, path(id, "/selection"), nil, &v)
	assert.Zero(t, v.SelectedCount)
}

func TestSelectionCapacity(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession()
	s.selectCards(id, ids(1, 25))

	var errResp shared.ErrorResponse
	w := s.do(http.MethodPost, path(id, "/selection"), AddCardRequest{CardID: "c26"}, &errResp)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Selection is full (25 cards)", errResp.Error)

	var v layout.View
	s.do(http.MethodGet, path(id, ""), nil, &v)
	assert.Equal(t, 25, v.SelectedCount)
	assert.True(t, v.BoardReady)
}

func TestAssignZoneEndpoint(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession()
	s.selectCards(id, ids(1, 3))

	w := s.do(http.MethodPut, path(id, "/board/left-low"), AssignZoneRequest{CardIDs: []string{"c1"}}, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "board is not ready before 25 cards")

	s.selectCards(id, ids(4, 25))

	var v layout.View
	w = s.do(http.MethodPut, path(id, "/board/left-low"), AssignZoneRequest{CardIDs: []string{"c1", "c2"}}, &v)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, v.PlacedCount)
	assert.Equal(t, []string{"c1", "c2"}, v.Zones[domain.LeftLow].Cards)

	w = s.do(http.MethodPut, path(id, "/board/right-low"), AssignZoneRequest{CardIDs: []string{"c2"}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "c2 is placed in left-low")

	w = s.do(http.MethodPut, path(id, "/board/center"), AssignZoneRequest{CardIDs: []string{"c3"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, path(id, "/board/left-low"), AssignZoneRequest{CardIDs: []string{""}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An empty list clears the zone.
	w = s.do(http.MethodPut, path(id, "/board/left-low"), AssignZoneRequest{}, &v)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, v.PlacedCount)
}

func TestAdviceEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("incomplete board reports progress", func(t *testing.T) {
		id := s.createSession()
		s.selectCards(id, ids(1, 25))
		s.do(http.MethodPut, path(id, "/board/left-low"), AssignZoneRequest{CardIDs: []string{"c1"}}, nil)

		var resp AdviceResponse
		w := s.do(http.MethodGet, path(id, "/advice"), nil, &resp)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.Ready)
		assert.Nil(t, resp.Advice)
		assert.Equal(t, 1, resp.PlacedCount)
		assert.Equal(t, "Place all cards first (1/25 placed)", resp.Progress)
	})

	t.Run("no board yet", func(t *testing.T) {
		id := s.createSession()

		var resp AdviceResponse
		w := s.do(http.MethodGet, path(id, "/advice"), nil, &resp)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.Ready)
		assert.Zero(t, resp.PlacedCount)
	})

	t.Run("balanced layout", func(t *testing.T) {
		id := s.completeSession()

		var resp AdviceResponse
		w := s.do(http.MethodGet, path(id, "/advice"), nil, &resp)
		assert.Equal(t, http.StatusOK, w.Code)
		require.True(t, resp.Ready)
		require.NotNil(t, resp.Advice)
		assert.True(t, resp.Advice.Balanced)
	})

	t.Run("single-character card high up", func(t *testing.T) {
		id := s.createSession()
		s.selectCards(id, ids(1, 25))
		s.place(id, func() domain.Placement {
			p := balanced()
			p[domain.LeftTop] = []string{"c1", "c6", "c7", "c8"}
			p[domain.LeftLow] = []string{"c5", "c2", "c13", "c14", "c15"}
			return p
		}())

		var resp AdviceResponse
		s.do(http.MethodGet, path(id, "/advice"), nil, &resp)
		require.NotNil(t, resp.Advice)
		require.NotEmpty(t, resp.Advice.Findings)
		assert.Equal(t, advice.KindSingleNotLow, resp.Advice.Findings[0].Kind)
		assert.Equal(t, []string{"c1"}, resp.Advice.Findings[0].CardIDs)
	})

	t.Run("unknown session", func(t *testing.T) {
		w := s.do(http.MethodGet, path(uuid.New(), "/advice"), nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMemorizeEndpoints(t *testing.T) {
	s := newTestServer(t)

	t.Run("test start needs a complete board", func(t *testing.T) {
		id := s.createSession()
		s.selectCards(id, ids(1, 25))

		var errResp shared.ErrorResponse
		w := s.do(http.MethodPost, path(id, "/memorize/test"), nil, &errResp)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Place all cards first (0/25 placed)", errResp.Error)

		w = s.do(http.MethodPost, path(id, "/memorize/start"), nil, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("submit outside a test", func(t *testing.T) {
		id := s.completeSession()

		w := s.do(http.MethodPost, path(id, "/memorize/submit"),
			SubmitRecallRequest{Recalled: map[domain.Zone][]string{}}, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("full cycle without recording", func(t *testing.T) {
		id := s.completeSession()

		var v layout.View
		s.do(http.MethodPost, path(id, "/memorize/start"), nil, &v)
		assert.Equal(t, memorize.ModeMemorizing, v.Mode)

		s.do(http.MethodPost, path(id, "/memorize/test"), nil, &v)
		assert.Equal(t, memorize.ModeTesting, v.Mode)
		assert.Nil(t, v.Zones)

		w := s.do(http.MethodGet, path(id, "/advice"), nil, nil)
		assert.Equal(t, http.StatusConflict, w.Code, "advice would reveal the layout")

		recall := balanced().Map()
		recall[domain.LeftTop] = []string{"c5", "c6", "c7"}

		var resp SubmitRecallResponse
		w = s.do(http.MethodPost, path(id, "/memorize/submit"), SubmitRecallRequest{Recalled: recall}, &resp)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 24, resp.Score.TotalCorrect)
		assert.Equal(t, memorize.BandNear, resp.Score.Band)
		require.Len(t, resp.Score.Mismatches, 1)
		assert.Equal(t, domain.LeftTop, resp.Score.Mismatches[0].Zone)
		assert.Equal(t, []string{"c8"}, resp.Score.Mismatches[0].Missing)
		assert.Empty(t, resp.Score.Mismatches[0].Extraneous)
		assert.Nil(t, resp.Recorded)
		s.decks.AssertNotCalled(t, "RecordScore", mock.Anything, mock.Anything, mock.Anything)

		s.do(http.MethodPost, path(id, "/memorize/cancel"), nil, &v)
		assert.Equal(t, memorize.ModeWaiting, v.Mode)
	})

	t.Run("recall naming cards outside the layout or in two zones", func(t *testing.T) {
		id := s.completeSession()
		s.do(http.MethodPost, path(id, "/memorize/test"), nil, nil)

		recall := balanced().Map()
		recall[domain.LeftTop] = append(recall[domain.LeftTop], "c30")
		w := s.do(http.MethodPost, path(id, "/memorize/submit"), SubmitRecallRequest{Recalled: recall}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

		recall = balanced().Map()
		recall[domain.RightLow] = append(recall[domain.RightLow], recall[domain.LeftTop]...)
		w = s.do(http.MethodPost, path(id, "/memorize/submit"), SubmitRecallRequest{Recalled: recall, DeckName: "gamed"}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		s.decks.AssertNotCalled(t, "RecordScore", mock.Anything, mock.Anything, mock.Anything)

		var v layout.View
		s.do(http.MethodGet, path(id, ""), nil, &v)
		assert.Equal(t, memorize.ModeTesting, v.Mode)
		assert.Nil(t, v.LastScore)
	})

	t.Run("recall with an unknown zone", func(t *testing.T) {
		id := s.completeSession()
		s.do(http.MethodPost, path(id, "/memorize/test"), nil, nil)

		w := s.do(http.MethodPost, path(id, "/memorize/submit"), `{"recalled":{"center":["c1"]}}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubmitRecordsScore(t *testing.T) {
	s := newTestServer(t)
	id := s.completeSession()
	s.do(http.MethodPost, path(id, "/memorize/test"), nil, nil)

	rec := &domain.ScoreRecord{ID: uuid.New(), DeckName: "tournament", Score: 25, CreatedAt: time.Now().UTC()}
	s.decks.On("RecordScore", mock.Anything, 25, "tournament").Return(rec, nil).Once()

	var resp SubmitRecallResponse
	w := s.do(http.MethodPost, path(id, "/memorize/submit"),
		SubmitRecallRequest{Recalled: balanced().Map(), DeckName: "tournament"}, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Score.Perfect())
	require.NotNil(t, resp.Recorded)
	assert.Equal(t, rec.ID, resp.Recorded.ID)
	assert.Empty(t, resp.RecordError)

	// A failure to record is reported alongside the score.
	s.decks.On("RecordScore", mock.Anything, 25, "tournament").
		Return(nil, service.NewServiceError("record_score", "down", service.ErrPersistenceUnavailable)).Once()

	resp = SubmitRecallResponse{}
	w = s.do(http.MethodPost, path(id, "/memorize/submit"),
		SubmitRecallRequest{Recalled: balanced().Map(), DeckName: "tournament"}, &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, resp.Score.TotalCorrect)
	assert.Nil(t, resp.Recorded)
	assert.Equal(t, "Deck storage is not available", resp.RecordError)
	s.decks.AssertExpectations(t)
}

func TestSaveDeckEndpoint(t *testing.T) {
	t.Run("saves the current layout", func(t *testing.T) {
		s := newTestServer(t)
		id := s.completeSession()

		deck := &domain.Deck{ID: uuid.New(), Name: "tournament", Selected: ids(1, 25), Placement: balanced()}
		s.decks.On("SaveDeck", mock.Anything, "tournament", ids(1, 25), balanced()).Return(deck, nil)

		var got domain.Deck
		w := s.do(http.MethodPost, path(id, "/decks"), SaveDeckRequest{DeckName: "tournament"}, &got)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, deck.ID, got.ID)
		assert.Equal(t, balanced(), got.Placement)
		s.decks.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		s := newTestServer(t)
		id := s.createSession()

		w := s.do(http.MethodPost, path(id, "/decks"), SaveDeckRequest{}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.decks.AssertNotCalled(t, "SaveDeck", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "persistence unavailable", err: service.ErrPersistenceUnavailable, status: http.StatusServiceUnavailable},
		{name: "gateway failure", err: errors.Join(service.ErrPersistenceOperationFailed, errors.New("timeout")), status: http.StatusBadGateway},
		{name: "incomplete selection", err: domain.ErrIncompleteDeck, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			id := s.createSession()
			s.decks.On("SaveDeck", mock.Anything, "x", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := s.do(http.MethodPost, path(id, "/decks"), SaveDeckRequest{DeckName: "x"}, nil)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("unknown session", func(t *testing.T) {
		s := newTestServer(t)
		w := s.do(http.MethodPost, path(uuid.New(), "/decks"), SaveDeckRequest{DeckName: "x"}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLoadDeckEndpoint(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession()
	s.selectCards(id, []string{"c30"})

	deckID := uuid.New()
	s.decks.On("GetDeck", mock.Anything, deckID).
		Return(&domain.Deck{ID: deckID, Name: "saved", Selected: ids(1, 25), Placement: balanced()}, nil)

	var v layout.View
	w := s.do(http.MethodPost, path(id, "/decks/"+deckID.String()+"/load"), nil, &v)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 25, v.SelectedCount)
	assert.True(t, v.Complete)
	require.NotNil(t, v.Advice)
	assert.True(t, v.Advice.Balanced)

	missing := uuid.New()
	s.decks.On("GetDeck", mock.Anything, missing).
		Return(nil, service.NewServiceError("get_deck", "deck not found", store.ErrDeckNotFound))
	var errResp shared.ErrorResponse
	w = s.do(http.MethodPost, path(id, "/decks/"+missing.String()+"/load"), nil, &errResp)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Deck not found", errResp.Error)

	corrupt := uuid.New()
	s.decks.On("GetDeck", mock.Anything, corrupt).
		Return(&domain.Deck{ID: corrupt, Name: "old", Selected: append(ids(1, 24), "gone"), Placement: domain.Placement{}}, nil)
	w = s.do(http.MethodPost, path(id, "/decks/"+corrupt.String()+"/load"), nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	s.do(http.MethodGet, path(id, ""), nil, &v)
	assert.Equal(t, 25, v.SelectedCount, "failed load keeps the previous layout")

	w = s.do(http.MethodPost, path(uuid.New(), "/decks/"+deckID.String()+"/load"), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
