package domain

// PlacementGrid counts card occurrences across saved layouts. Rows are tiers
// (top, mid, low) and columns are sides (left, right).
type PlacementGrid [3][2]int

// Add counts one occurrence in zone z.
func (g *PlacementGrid) Add(z Zone) {
	if z.Valid() {
		g[z.Tier()][z.Side()]++
	}
}

// At returns the count for a zone.
func (g PlacementGrid) At(z Zone) int {
	if !z.Valid() {
		return 0
	}
	return g[z.Tier()][z.Side()]
}

// Total returns the sum of all cells.
func (g PlacementGrid) Total() int {
	n := 0
	for _, row := range g {
		n += row[0] + row[1]
	}
	return n
}

// BuildPlacementGrid aggregates placements into a grid. With an empty cardID
// every placed card is counted; otherwise only occurrences of that card.
func BuildPlacementGrid(placements []Placement, cardID string) PlacementGrid {
	var grid PlacementGrid
	for _, p := range placements {
		for _, z := range AllZones {
			for _, id := range p[z] {
				if cardID == "" || id == cardID {
					grid.Add(z)
				}
			}
		}
	}
	return grid
}
