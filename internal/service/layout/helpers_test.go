package layout

import (
	"context"
	"fmt"
	"testing"

	"github.com/phrazzld/karuta-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// testCatalog returns c1..c30. c1 is a single-character card, c2 and c3 are
// siblings starting with か, c4 is a large card; the rest are class 3 cards
// with distinct first characters.
func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()

	cards := []*domain.Card{
		{ID: "c1", DecisiveString: "む", FullText: "むらさめの つゆもまだひぬ", Class: 1},
		{ID: "c2", DecisiveString: "かく", FullText: "かくとだに", Class: 2},
		{ID: "c3", DecisiveString: "かぜを", FullText: "かぜをいたみ", Class: 3},
		{ID: "c4", DecisiveString: "あさぼらけあ", FullText: "あさぼらけ ありあけのつきと", Class: 6},
	}
	for i := 5; i <= 30; i++ {
		cards = append(cards, &domain.Card{
			ID:             fmt.Sprintf("c%d", i),
			DecisiveString: string(rune(0x4E00+i)) + "x",
			Class:          3,
		})
	}
	catalog, err := domain.NewCatalog(cards)
	require.NoError(t, err)
	return catalog
}

func ids(from, to int) []string {
	var out []string
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("c%d", i))
	}
	return out
}

// balanced places c1..c25 so that no advice rule fires: c1 in left-low, the
// siblings on opposite sides in low rows, c4 first in right-low.
func balanced() domain.Placement {
	var p domain.Placement
	p[domain.LeftTop] = ids(5, 8)
	p[domain.LeftMid] = ids(9, 12)
	p[domain.LeftLow] = append([]string{"c1", "c2"}, ids(13, 15)...)
	p[domain.RightTop] = ids(16, 19)
	p[domain.RightMid] = ids(20, 22)
	p[domain.RightLow] = append([]string{"c4", "c3"}, ids(23, 25)...)
	return p
}

func dispatch(t *testing.T, ws *Workspace, cmd Command) View {
	t.Helper()

	v, err := ws.Dispatch(context.Background(), cmd)
	require.NoError(t, err, cmd.Name())
	return v
}

// selectAll adds c1..c25.
func selectAll(t *testing.T, ws *Workspace) View {
	t.Helper()

	var v View
	for _, id := range ids(1, 25) {
		v = dispatch(t, ws, AddCard{CardID: id})
	}
	return v
}

// place assigns every zone of p in canonical order.
func place(t *testing.T, ws *Workspace, p domain.Placement) View {
	t.Helper()

	var v View
	for _, z := range domain.AllZones {
		v = dispatch(t, ws, AssignZone{Zone: z, CardIDs: p[z]})
	}
	return v
}

func recallOf(p domain.Placement) map[domain.Zone][]string {
	return p.Map()
}
