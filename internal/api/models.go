package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/domain/advice"
	"github.com/phrazzld/karuta-api/internal/domain/memorize"
	"github.com/phrazzld/karuta-api/internal/service/layout"
)

// CatalogResponse lists catalog cards.
type CatalogResponse struct {
	Cards []layout.CardView `json:"cards"`
	Count int               `json:"count"`
}

// CreateSessionResponse is returned when a workspace is created.
type CreateSessionResponse struct {
	SessionID uuid.UUID   `json:"session_id"`
	View      layout.View `json:"view"`
}

// AddCardRequest adds a card to the selection.
type AddCardRequest struct {
	CardID string `json:"card_id" validate:"required"`
}

// AssignZoneRequest replaces a zone. An empty list clears it.
type AssignZoneRequest struct {
	CardIDs []string `json:"card_ids" validate:"max=25,dive,required"`
}

// AdviceResponse carries either advice or the progress towards a complete
// board.
type AdviceResponse struct {
	Ready       bool           `json:"ready"`
	Advice      *advice.Advice `json:"advice,omitempty"`
	Progress    string         `json:"progress,omitempty"`
	PlacedCount int            `json:"placed_count"`
}

// SubmitRecallRequest is the player's recall of a layout.
type SubmitRecallRequest struct {
	Recalled map[domain.Zone][]string `json:"recalled" validate:"required"`
	DeckName string                   `json:"deck_name,omitempty" validate:"max=100"`
}

// SubmitRecallResponse is the score of a recall. When a deck name was given
// the score is also recorded; a failure to record does not fail the request.
type SubmitRecallResponse struct {
	Score       memorize.Score      `json:"score"`
	View        layout.View         `json:"view"`
	Recorded    *domain.ScoreRecord `json:"recorded,omitempty"`
	RecordError string              `json:"record_error,omitempty"`
}

// SaveDeckRequest names the current layout for saving.
type SaveDeckRequest struct {
	DeckName string `json:"deck_name" validate:"required,max=100"`
}

// DeckListResponse lists saved decks, newest first.
type DeckListResponse struct {
	Decks []*domain.Deck `json:"decks"`
}
