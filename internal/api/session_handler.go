package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/karuta-api/internal/api/shared"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/domain/advice"
	"github.com/phrazzld/karuta-api/internal/domain/memorize"
	"github.com/phrazzld/karuta-api/internal/platform/logger"
	"github.com/phrazzld/karuta-api/internal/service"
	"github.com/phrazzld/karuta-api/internal/service/layout"
)

// SessionHandler handles requests against layout workspaces.
type SessionHandler struct {
	sessions *layout.Manager
	decks    service.DeckService
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(
	sessions *layout.Manager,
	decks service.DeckService,
	logger *slog.Logger,
) *SessionHandler {
	if sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("sessions cannot be nil for SessionHandler")
	}
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("decks cannot be nil for SessionHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		sessions: sessions,
		decks:    decks,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// dispatch sends cmd to the session named in the path and writes the view.
func (h *SessionHandler) dispatch(w http.ResponseWriter, r *http.Request, cmd layout.Command) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	v, err := h.sessions.Dispatch(r.Context(), id, cmd)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, v)
}

// CreateSession handles POST /api/sessions requests
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	v, err := h.sessions.Create(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, CreateSessionResponse{SessionID: v.SessionID, View: v})
}

// GetSession handles GET /api/sessions/{id} requests
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	v, err := h.sessions.View(id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, v)
}

// DeleteSession handles DELETE /api/sessions/{id} requests
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.sessions.Drop(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCard handles POST /api/sessions/{id}/selection requests
func (h *SessionHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req AddCardRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}
	h.dispatch(w, r, layout.AddCard{CardID: req.CardID})
}

// RemoveCard handles DELETE /api/sessions/{id}/selection/{cardID} requests
func (h *SessionHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, layout.RemoveCard{CardID: chi.URLParam(r, "cardID")})
}

// ClearSelection handles DELETE /api/sessions/{id}/selection requests
func (h *SessionHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, layout.ClearSelection{})
}

// AssignZone handles PUT /api/sessions/{id}/board/{zone} requests
func (h *SessionHandler) AssignZone(w http.ResponseWriter, r *http.Request) {
	zone, err := domain.ParseZone(chi.URLParam(r, "zone"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AssignZoneRequest
	if !decodeAndValidate(w, r, &req, logger.FromContextOrDefault(r.Context(), h.logger)) {
		return
	}
	h.dispatch(w, r, layout.AssignZone{Zone: zone, CardIDs: req.CardIDs})
}

// GetAdvice handles GET /api/sessions/{id}/advice requests. An incomplete
// board is not an error: the response carries the progress instead.
func (h *SessionHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var a advice.Advice
	err := h.sessions.Do(id, func(ws *layout.Workspace) error {
		var err error
		a, err = ws.Advice()
		return err
	})

	var incomplete *domain.IncompleteAssignmentError
	switch {
	case err == nil:
		shared.RespondWithJSON(w, r, http.StatusOK, AdviceResponse{
			Ready:       true,
			Advice:      &a,
			PlacedCount: domain.SelectionSize,
		})
	case errors.As(err, &incomplete):
		shared.RespondWithJSON(w, r, http.StatusOK, AdviceResponse{
			Progress:    incomplete.ProgressMessage(),
			PlacedCount: incomplete.Placed,
		})
	default:
		HandleAPIError(w, r, err, "Failed to evaluate layout")
	}
}

// StartMemorize handles POST /api/sessions/{id}/memorize/start requests
func (h *SessionHandler) StartMemorize(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, layout.StartMemorize{})
}

// StartTest handles POST /api/sessions/{id}/memorize/test requests
func (h *SessionHandler) StartTest(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, layout.StartTest{})
}

// CancelSession handles POST /api/sessions/{id}/memorize/cancel requests
func (h *SessionHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, layout.CancelSession{})
}

// SubmitRecall handles POST /api/sessions/{id}/memorize/submit requests
func (h *SessionHandler) SubmitRecall(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitRecallRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	v, err := h.sessions.Dispatch(r.Context(), id, layout.SubmitRecall{Recall: memorize.Recall(req.Recalled)})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to score recall")
		return
	}

	resp := SubmitRecallResponse{View: v}
	if v.LastScore != nil {
		resp.Score = *v.LastScore
	}

	if req.DeckName != "" {
		rec, err := h.decks.RecordScore(r.Context(), resp.Score.TotalCorrect, req.DeckName)
		if err != nil {
			log.Warn("failed to record score",
				slog.String("error", err.Error()),
				slog.String("session_id", id.String()))
			resp.RecordError = GetSafeErrorMessage(err)
		} else {
			resp.Recorded = rec
		}
	}

	log.Debug("recall scored",
		slog.String("session_id", id.String()),
		slog.Int("total_correct", resp.Score.TotalCorrect))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// SaveDeck handles POST /api/sessions/{id}/decks requests. The layout is
// copied under the session lock and saved after the lock is released.
func (h *SessionHandler) SaveDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SaveDeckRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	var (
		selected  []string
		placement domain.Placement
	)
	err := h.sessions.Do(id, func(ws *layout.Workspace) error {
		selected, placement = ws.Layout()
		return nil
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.decks.SaveDeck(r.Context(), req.DeckName, selected, placement)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save deck")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// LoadDeck handles POST /api/sessions/{id}/decks/{deckID}/load requests
func (h *SessionHandler) LoadDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id", log)
	if !ok {
		return
	}
	deckID, ok := handlePathUUID(w, r, "deckID", log)
	if !ok {
		return
	}

	// Fail fast on an unknown session before calling out to storage.
	if _, err := h.sessions.View(id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.decks.GetDeck(r.Context(), deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load deck")
		return
	}

	v, err := h.sessions.Dispatch(r.Context(), id, layout.LoadLayout{
		Selected:  deck.Selected,
		Placement: deck.Placement,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load deck")
		return
	}

	log.Info("deck loaded",
		slog.String("session_id", id.String()),
		slog.String("deck_id", deckID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, v)
}
