package domain

import (
	"encoding/json"
	"fmt"
)

// Placement is an ordered card sequence per zone. Order is only meaningful
// for edge checks and display; membership is what counts for correctness.
type Placement [ZoneCount][]string

// Clone returns a deep copy of the placement.
func (p Placement) Clone() Placement {
	var out Placement
	for _, z := range AllZones {
		if p[z] != nil {
			out[z] = append([]string(nil), p[z]...)
		}
	}
	return out
}

// Count returns the number of placed card entries across all zones.
func (p Placement) Count() int {
	n := 0
	for _, ids := range p {
		n += len(ids)
	}
	return n
}

// Map converts the placement into a zone-keyed map, with an empty slice for
// every zone so that encoders emit all six keys.
func (p Placement) Map() map[Zone][]string {
	out := make(map[Zone][]string, ZoneCount)
	for _, z := range AllZones {
		out[z] = append([]string{}, p[z]...)
	}
	return out
}

// PlacementFromMap builds a placement from a zone-keyed map. Missing zones
// are left empty.
func PlacementFromMap(m map[Zone][]string) Placement {
	var p Placement
	for z, ids := range m {
		if z.Valid() {
			p[z] = append([]string(nil), ids...)
		}
	}
	return p
}

// MarshalJSON encodes the placement as an object keyed by zone name.
func (p Placement) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

// UnmarshalJSON decodes an object keyed by zone name. Unknown zone names are
// rejected.
func (p *Placement) UnmarshalJSON(data []byte) error {
	var m map[Zone][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*p = PlacementFromMap(m)
	return nil
}

// BoardAssignment maps the cards of a selection into the six zones. A card
// appears in at most one zone, and at most once within it.
type BoardAssignment struct {
	selection *SelectionSet
	zones     Placement
	zoneOf    map[string]Zone
}

// NewBoardAssignment creates an empty board attached to the selection.
// Removing cards from the selection afterwards removes them from the board.
func NewBoardAssignment(selection *SelectionSet) *BoardAssignment {
	if selection == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("selection cannot be nil")
	}
	b := &BoardAssignment{
		selection: selection,
		zoneOf:    make(map[string]Zone, SelectionSize),
	}
	selection.board = b
	return b
}

// AvailableFor returns the selected cards not placed in any zone other than
// z, in selection order. Cards already in z stay available to it.
func (b *BoardAssignment) AvailableFor(z Zone) []string {
	var out []string
	for _, id := range b.selection.ids {
		if placed, ok := b.zoneOf[id]; ok && placed != z {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Assign replaces the contents of z with ids, in the given order.
// Every ID must be available to z and appear only once; otherwise
// ErrInvalidCard is returned and the zone is left unchanged.
func (b *BoardAssignment) Assign(z Zone, ids []string) error {
	if !z.Valid() {
		return NewValidationError("zone", fmt.Sprintf("has invalid value %d", int(z)), ErrValidation)
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !b.selection.Contains(id) {
			return fmt.Errorf("%w: %q is not selected", ErrInvalidCard, id)
		}
		if placed, ok := b.zoneOf[id]; ok && placed != z {
			return fmt.Errorf("%w: %q is already placed in %s", ErrInvalidCard, id, placed)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q is listed twice for %s", ErrInvalidCard, id, z)
		}
		seen[id] = struct{}{}
	}

	for _, id := range b.zones[z] {
		delete(b.zoneOf, id)
	}
	b.zones[z] = append([]string(nil), ids...)
	for _, id := range ids {
		b.zoneOf[id] = z
	}
	return nil
}

// Zone returns a copy of the ordered card sequence of z.
func (b *BoardAssignment) Zone(z Zone) []string {
	if !z.Valid() {
		return nil
	}
	return append([]string(nil), b.zones[z]...)
}

// ZoneOf returns the zone a card is placed in.
func (b *BoardAssignment) ZoneOf(id string) (Zone, bool) {
	z, ok := b.zoneOf[id]
	return z, ok
}

// PlacedCount returns the number of distinct placed cards.
func (b *BoardAssignment) PlacedCount() int {
	return len(b.zoneOf)
}

// IsComplete reports whether every selected card is placed exactly once and
// the selection is full.
func (b *BoardAssignment) IsComplete() bool {
	if !b.selection.IsFull() {
		return false
	}
	if len(b.zoneOf) != SelectionSize || b.zones.Count() != SelectionSize {
		return false
	}
	for _, id := range b.selection.ids {
		if _, ok := b.zoneOf[id]; !ok {
			return false
		}
	}
	return true
}

// Snapshot returns a deep copy of the current placement.
func (b *BoardAssignment) Snapshot() Placement {
	return b.zones.Clone()
}

// Selection returns the selection the board is built on.
func (b *BoardAssignment) Selection() *SelectionSet { return b.selection }

// Progress returns the deferral error for an incomplete board, or nil.
func (b *BoardAssignment) Progress() error {
	if b.IsComplete() {
		return nil
	}
	return &IncompleteAssignmentError{Placed: b.PlacedCount(), Required: SelectionSize}
}

func (b *BoardAssignment) unplace(id string) {
	z, ok := b.zoneOf[id]
	if !ok {
		return
	}
	delete(b.zoneOf, id)
	ids := b.zones[z]
	for i, member := range ids {
		if member == id {
			b.zones[z] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

func (b *BoardAssignment) reset() {
	b.zones = Placement{}
	b.zoneOf = make(map[string]Zone, SelectionSize)
}
