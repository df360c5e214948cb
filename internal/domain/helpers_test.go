package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// testCatalog builds a catalog of n cards with IDs c1..cn. Decisive strings
// start with distinct characters unless overridden, and every card is class 3.
func testCatalog(t *testing.T, n int, overrides ...*Card) *Catalog {
	t.Helper()

	byID := make(map[string]*Card, len(overrides))
	for _, c := range overrides {
		byID[c.ID] = c
	}

	cards := make([]*Card, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("c%d", i)
		if c, ok := byID[id]; ok {
			cards = append(cards, c)
			continue
		}
		// U+4E00 onward gives n distinct first characters.
		first := string(rune(0x4E00 + i))
		cards = append(cards, &Card{ID: id, DecisiveString: first + "x", FullText: "text " + id, Class: 3})
	}

	catalog, err := NewCatalog(cards)
	require.NoError(t, err)
	return catalog
}

// fullSelection selects c1..c25 from the catalog.
func fullSelection(t *testing.T, catalog *Catalog) *SelectionSet {
	t.Helper()

	s := NewSelectionSet(catalog)
	for i := 1; i <= SelectionSize; i++ {
		require.NoError(t, s.Add(fmt.Sprintf("c%d", i)))
	}
	return s
}

// spread places the full selection across zones: 5/4/4 on the left and
// 4/4/4 on the right, in ID order.
func spread(t *testing.T, b *BoardAssignment) {
	t.Helper()

	sizes := [ZoneCount]int{5, 4, 4, 4, 4, 4}
	ids := b.Selection().IDs()
	next := 0
	for _, z := range AllZones {
		require.NoError(t, b.Assign(z, ids[next:next+sizes[z]]))
		next += sizes[z]
	}
}

// assertUnique fails if any card appears in more than one zone.
func assertUnique(t *testing.T, b *BoardAssignment) {
	t.Helper()

	seen := map[string]Zone{}
	for _, z := range AllZones {
		for _, id := range b.Zone(z) {
			if prev, ok := seen[id]; ok {
				t.Fatalf("card %s appears in %s and %s", id, prev, z)
			}
			seen[id] = z
		}
	}
}
