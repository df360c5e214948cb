package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDeckNameLength is the longest accepted deck name, in runes.
const MaxDeckNameLength = 100

// Common validation errors for saved decks and scores. Each wraps ErrValidation.
var (
	ErrEmptyDeckID       = fmt.Errorf("%w: deck ID cannot be empty", ErrValidation)
	ErrEmptyDeckName     = fmt.Errorf("%w: deck name cannot be empty", ErrValidation)
	ErrDeckNameTooLong   = fmt.Errorf("%w: deck name is too long", ErrValidation)
	ErrIncompleteDeck    = fmt.Errorf("%w: deck must hold a full selection", ErrValidation)
	ErrDeckPlacementSize = fmt.Errorf("%w: deck placement holds more cards than its selection", ErrValidation)
	ErrEmptyScoreID      = fmt.Errorf("%w: score ID cannot be empty", ErrValidation)
	ErrScoreOutOfRange   = fmt.Errorf("%w: score must be between 0 and 25", ErrValidation)
)

// Deck is a saved layout: a named selection together with its placement.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"deck_name"`
	Selected  []string  `json:"selected_fuda"`
	Placement Placement `json:"placement"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDeck captures a layout for saving. The selection and placement are
// copied, so later edits to the workspace do not change the deck.
func NewDeck(name string, selected []string, placement Placement) (*Deck, error) {
	deck := &Deck{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Selected:  append([]string(nil), selected...),
		Placement: placement.Clone(),
		CreatedAt: time.Now().UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data. Catalog membership is checked
// when the deck is loaded back into a workspace.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDeckID
	}
	if err := validateDeckName(d.Name); err != nil {
		return err
	}
	if len(d.Selected) != SelectionSize {
		return ErrIncompleteDeck
	}
	if d.Placement.Count() > len(d.Selected) {
		return ErrDeckPlacementSize
	}
	return nil
}

// ScoreRecord is one memorization test result.
type ScoreRecord struct {
	ID        uuid.UUID `json:"id"`
	DeckName  string    `json:"deck_name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// NewScoreRecord creates a score for saving. The deck name may be empty for
// tests of unsaved layouts.
func NewScoreRecord(score int, deckName string) (*ScoreRecord, error) {
	rec := &ScoreRecord{
		ID:        uuid.New(),
		DeckName:  strings.TrimSpace(deckName),
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the ScoreRecord has valid data.
func (s *ScoreRecord) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyScoreID
	}
	if s.Score < 0 || s.Score > SelectionSize {
		return ErrScoreOutOfRange
	}
	if utf8.RuneCountInString(s.DeckName) > MaxDeckNameLength {
		return ErrDeckNameTooLong
	}
	return nil
}

func validateDeckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyDeckName
	}
	if utf8.RuneCountInString(name) > MaxDeckNameLength {
		return ErrDeckNameTooLong
	}
	return nil
}
