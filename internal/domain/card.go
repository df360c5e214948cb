package domain

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrDecisiveStringEmpty is returned when a card has no decisive string.
	ErrDecisiveStringEmpty = errors.New("card decisive string cannot be empty")

	// ErrInvalidClass is returned when a decisiveness class is below 1.
	ErrInvalidClass = errors.New("card decisiveness class must be at least 1")
)

// DecisivenessClass is the number of characters that must be heard before a
// card is uniquely identified.
type DecisivenessClass int

// Well-known decisiveness classes.
const (
	ClassSingle DecisivenessClass = 1
	ClassDouble DecisivenessClass = 2
	// ClassLarge is the lowest class counted as a large ("mountain") card.
	ClassLarge DecisivenessClass = 6
)

// Card is one entry of the card catalog. Cards are immutable once loaded.
type Card struct {
	ID             string            `json:"id"`
	DecisiveString string            `json:"decisive_string"`
	FullText       string            `json:"full_text"`
	Class          DecisivenessClass `json:"decisiveness_class"`
}

// NewCard creates a Card, normalizing the decisive string to NFKC so that
// half-width and full-width kana group together.
// Returns an error if validation fails.
func NewCard(id, decisive, fullText string, class int) (*Card, error) {
	card := &Card{
		ID:             id,
		DecisiveString: norm.NFKC.String(decisive),
		FullText:       fullText,
		Class:          DecisivenessClass(class),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == "" {
		return ErrCardIDEmpty
	}

	if c.DecisiveString == "" {
		return ErrDecisiveStringEmpty
	}

	if c.Class < ClassSingle {
		return ErrInvalidClass
	}

	return nil
}

// SiblingKey returns the first character of the decisive string. Cards
// sharing a key compete for the same opening sound.
func (c *Card) SiblingKey() rune {
	r, _ := utf8.DecodeRuneInString(c.DecisiveString)
	return r
}

// IsSingle reports whether the card is decided by its first character.
func (c *Card) IsSingle() bool { return c.Class == ClassSingle }

// IsDouble reports whether the card is decided by its second character.
func (c *Card) IsDouble() bool { return c.Class == ClassDouble }

// IsLargeAt reports whether the card counts as large for the given threshold.
func (c *Card) IsLargeAt(min DecisivenessClass) bool { return c.Class >= min }

// Preview returns at most n runes of the full text followed by an ellipsis,
// as shown next to the decisive string in listings. A card without text has
// an empty preview.
func (c *Card) Preview(n int) string {
	if c.FullText == "" {
		return ""
	}
	if utf8.RuneCountInString(c.FullText) <= n {
		return c.FullText + "..."
	}
	runes := []rune(c.FullText)
	return string(runes[:n]) + "..."
}
