package layout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/phrazzld/karuta-api/internal/domain/advice"
	"github.com/phrazzld/karuta-api/internal/domain/memorize"
)

// PreviewLength is the number of runes of full text shown in card listings.
const PreviewLength = 6

// CardView is a card as shown in listings.
type CardView struct {
	ID             string       `json:"id"`
	DecisiveString string       `json:"decisive_string"`
	Preview        string       `json:"preview"`
	Class          int          `json:"decisiveness_class"`
	Zone           *domain.Zone `json:"zone,omitempty"`
}

// NewCardView builds the listing form of a card.
func NewCardView(card *domain.Card) CardView {
	return CardView{
		ID:             card.ID,
		DecisiveString: card.DecisiveString,
		Preview:        card.Preview(PreviewLength),
		Class:          int(card.Class),
	}
}

// ZoneView is one zone of the board with the cards it may still take.
type ZoneView struct {
	Zone      domain.Zone `json:"zone"`
	Cards     []string    `json:"cards"`
	Available []string    `json:"available"`
}

// View is everything a client needs to render a workspace. It is derived
// from the workspace after every command and never stored.
type View struct {
	SessionID     uuid.UUID       `json:"session_id"`
	Selection     []CardView      `json:"selection"`
	SelectedCount int             `json:"selected_count"`
	Capacity      int             `json:"capacity"`
	BoardReady    bool            `json:"board_ready"`
	Zones         []ZoneView      `json:"zones,omitempty"`
	PlacedCount   int             `json:"placed_count"`
	Complete      bool            `json:"complete"`
	Advice        *advice.Advice  `json:"advice,omitempty"`
	Progress      string          `json:"progress,omitempty"`
	Mode          memorize.Mode   `json:"mode"`
	LastScore     *memorize.Score `json:"last_score,omitempty"`
}

// selectionProgress is shown before the board exists.
func selectionProgress(n int) string {
	return fmt.Sprintf("Select all cards first (%d/%d selected)", n, domain.SelectionSize)
}

// view recomputes the derived state of w. Zones, availability and advice are
// withheld during a test so the layout cannot be read back.
func (w *Workspace) view() (View, error) {
	v := View{
		SessionID:     w.id,
		Selection:     make([]CardView, 0, w.selection.Len()),
		SelectedCount: w.selection.Len(),
		Capacity:      domain.SelectionSize,
		Mode:          w.session.Mode(),
		LastScore:     w.session.LastResult(),
	}
	hidden := v.Mode == memorize.ModeTesting

	board := w.selection.Board()
	for _, id := range w.selection.IDs() {
		card, ok := w.catalog.Get(id)
		if !ok {
			return View{}, fmt.Errorf("%w: %q", domain.ErrCardNotInCatalog, id)
		}
		cv := NewCardView(card)
		if board != nil && !hidden {
			if z, placed := board.ZoneOf(id); placed {
				cv.Zone = &z
			}
		}
		v.Selection = append(v.Selection, cv)
	}

	if board == nil {
		v.Progress = selectionProgress(v.SelectedCount)
		return v, nil
	}

	v.BoardReady = true
	v.PlacedCount = board.PlacedCount()
	v.Complete = board.IsComplete()
	if hidden {
		return v, nil
	}

	v.Zones = make([]ZoneView, 0, domain.ZoneCount)
	for _, z := range domain.AllZones {
		v.Zones = append(v.Zones, ZoneView{
			Zone:      z,
			Cards:     nonNil(board.Zone(z)),
			Available: nonNil(board.AvailableFor(z)),
		})
	}

	a, err := w.engine.Evaluate(board, w.catalog)
	var incomplete *domain.IncompleteAssignmentError
	switch {
	case err == nil:
		v.Advice = &a
	case errors.As(err, &incomplete):
		v.Progress = incomplete.ProgressMessage()
	default:
		return View{}, err
	}
	return v, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
