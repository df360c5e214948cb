package domain

import "fmt"

// SelectionSize is the number of cards a player arranges on the board.
const SelectionSize = 25

// SelectionSet is the player's chosen cards. Members are unique, exist in the
// catalog, and never exceed SelectionSize.
type SelectionSet struct {
	catalog *Catalog
	ids     []string
	members map[string]struct{}

	// board is the assignment built on this selection, if any.
	board *BoardAssignment
}

// NewSelectionSet creates an empty selection over the given catalog.
func NewSelectionSet(catalog *Catalog) *SelectionSet {
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil")
	}
	return &SelectionSet{
		catalog: catalog,
		members: make(map[string]struct{}, SelectionSize),
	}
}

// Catalog returns the catalog the selection draws from.
func (s *SelectionSet) Catalog() *Catalog { return s.catalog }

// Add inserts a card. Adding a member again is a no-op.
// Returns ErrCardNotInCatalog for unknown IDs and ErrCapacityExceeded when
// the selection is already full; the selection is unchanged in both cases.
func (s *SelectionSet) Add(id string) error {
	if !s.catalog.Contains(id) {
		return fmt.Errorf("%w: %q", ErrCardNotInCatalog, id)
	}
	if s.Contains(id) {
		return nil
	}
	if len(s.ids) >= SelectionSize {
		return fmt.Errorf("%w: %d cards already selected", ErrCapacityExceeded, SelectionSize)
	}

	s.ids = append(s.ids, id)
	s.members[id] = struct{}{}
	return nil
}

// Remove deletes a card and removes it from every zone of the attached board.
// Removing a non-member is a no-op. Reports whether anything was removed.
func (s *SelectionSet) Remove(id string) bool {
	if !s.Contains(id) {
		return false
	}

	delete(s.members, id)
	for i, member := range s.ids {
		if member == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}

	if s.board != nil {
		s.board.unplace(id)
	}
	return true
}

// Clear empties the selection and detaches any board built on it. The
// detached board is emptied as well so stale placements cannot survive.
func (s *SelectionSet) Clear() {
	s.ids = nil
	s.members = make(map[string]struct{}, SelectionSize)
	if s.board != nil {
		s.board.reset()
		s.board = nil
	}
}

// Contains reports whether the card is selected.
func (s *SelectionSet) Contains(id string) bool {
	_, ok := s.members[id]
	return ok
}

// Len returns the number of selected cards.
func (s *SelectionSet) Len() int { return len(s.ids) }

// IsFull reports whether the selection has reached SelectionSize.
func (s *SelectionSet) IsFull() bool { return len(s.ids) == SelectionSize }

// IDs returns the selected card IDs in insertion order.
func (s *SelectionSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Board returns the board attached to the selection, or nil.
func (s *SelectionSet) Board() *BoardAssignment { return s.board }
