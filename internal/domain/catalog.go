package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ClassFilter narrows a catalog listing by decisiveness class.
type ClassFilter string

// Supported class filters.
const (
	FilterAll    ClassFilter = "all"
	FilterSingle ClassFilter = "single"
	FilterDouble ClassFilter = "double"
	FilterLarge  ClassFilter = "large"
)

// ParseClassFilter parses a filter name. The empty string means FilterAll.
func ParseClassFilter(s string) (ClassFilter, error) {
	switch f := ClassFilter(strings.ToLower(s)); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterSingle, FilterDouble, FilterLarge:
		return f, nil
	default:
		return "", NewValidationError("class", fmt.Sprintf("has unknown value %q", s), ErrValidation)
	}
}

// KanaRow groups cards by the row of the syllabary their decisive string
// starts with.
type KanaRow string

// Kana rows, as grouped for browsing.
const (
	RowAny  KanaRow = ""
	RowA    KanaRow = "a"
	RowKaSa KanaRow = "ka-sa"
	RowTaNa KanaRow = "ta-na"
	RowHaMa KanaRow = "ha-ma"
	RowYaWa KanaRow = "ya-ra-wa"
)

var kanaRowInitials = map[KanaRow]string{
	RowA:    "あいうえお",
	RowKaSa: "かきくけこさしすせそ",
	RowTaNa: "たちつてとなにぬねの",
	RowHaMa: "はひふへほまみむめも",
	RowYaWa: "やゆよらりるれろわ",
}

// ParseKanaRow parses a kana row name. The empty string matches every row.
func ParseKanaRow(s string) (KanaRow, error) {
	row := KanaRow(strings.ToLower(s))
	if row == RowAny {
		return RowAny, nil
	}
	if _, ok := kanaRowInitials[row]; !ok {
		return "", NewValidationError("row", fmt.Sprintf("has unknown value %q", s), ErrValidation)
	}
	return row, nil
}

// Catalog is the immutable set of known cards, ordered by decisive string.
type Catalog struct {
	cards []*Card
	byID  map[string]*Card
}

// NewCatalog builds a catalog from validated cards. Card IDs must be unique.
func NewCatalog(cards []*Card) (*Catalog, error) {
	c := &Catalog{
		cards: make([]*Card, 0, len(cards)),
		byID:  make(map[string]*Card, len(cards)),
	}

	for i, card := range cards {
		if card == nil {
			return nil, fmt.Errorf("%w: card %d is nil", ErrValidation, i)
		}
		if err := card.Validate(); err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", ErrValidation, i, err)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate card ID %q", ErrValidation, card.ID)
		}
		c.byID[card.ID] = card
		c.cards = append(c.cards, card)
	}

	sort.SliceStable(c.cards, func(i, j int) bool {
		return c.cards[i].DecisiveString < c.cards[j].DecisiveString
	})

	return c, nil
}

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int { return len(c.cards) }

// Get returns the card with the given ID.
func (c *Catalog) Get(id string) (*Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Contains reports whether the ID exists in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Cards returns all cards in catalog order.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Filter lists the cards matching both the class filter and the kana row,
// in catalog order. It never mutates the catalog.
func (c *Catalog) Filter(class ClassFilter, row KanaRow) []*Card {
	initials := kanaRowInitials[row]

	var out []*Card
	for _, card := range c.cards {
		if row != RowAny && !strings.ContainsRune(initials, card.SiblingKey()) {
			continue
		}
		if !class.matches(card) {
			continue
		}
		out = append(out, card)
	}
	return out
}

func (f ClassFilter) matches(card *Card) bool {
	switch f {
	case FilterSingle:
		return card.IsSingle()
	case FilterDouble:
		return card.IsDouble()
	case FilterLarge:
		return card.IsLargeAt(ClassLarge)
	default:
		return true
	}
}
