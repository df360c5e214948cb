package domain

import "fmt"

// RestoreLayout rebuilds a selection and, when the selection is full, its
// board from saved data. Nothing is returned on error, so callers can keep
// their current state untouched.
func RestoreLayout(
	catalog *Catalog,
	selected []string,
	placement Placement,
) (*SelectionSet, *BoardAssignment, error) {
	selection := NewSelectionSet(catalog)
	for _, id := range selected {
		if err := selection.Add(id); err != nil {
			return nil, nil, fmt.Errorf("restore selection: %w", err)
		}
	}

	if !selection.IsFull() {
		if placement.Count() > 0 {
			return nil, nil, fmt.Errorf("restore placement: %w: %d cards placed on a partial selection",
				ErrBoardNotReady, placement.Count())
		}
		return selection, nil, nil
	}

	board := NewBoardAssignment(selection)
	for _, z := range AllZones {
		if err := board.Assign(z, placement[z]); err != nil {
			return nil, nil, fmt.Errorf("restore placement: %w", err)
		}
	}
	return selection, board, nil
}
