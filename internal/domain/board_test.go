package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardAssignment_AvailableFor(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t, 30)
	s := fullSelection(t, catalog)
	b := NewBoardAssignment(s)

	require.NoError(t, b.Assign(LeftTop, []string{"c1", "c2"}))

	leftTop := b.AvailableFor(LeftTop)
	assert.Contains(t, leftTop, "c1", "cards already in the zone stay selectable for it")
	assert.Len(t, leftTop, SelectionSize)

	rightLow := b.AvailableFor(RightLow)
	assert.NotContains(t, rightLow, "c1")
	assert.NotContains(t, rightLow, "c2")
	assert.Len(t, rightLow, SelectionSize-2)
}

func TestBoardAssignment_Assign(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t, 30)

	tests := []struct {
		name    string
		setup   func(t *testing.T, b *BoardAssignment)
		zone    Zone
		ids     []string
		wantErr error
		want    []string
	}{
		{
			name: "replaces zone wholesale",
			setup: func(t *testing.T, b *BoardAssignment) {
				require.NoError(t, b.Assign(LeftMid, []string{"c1", "c2"}))
			},
			zone: LeftMid,
			ids:  []string{"c2", "c3"},
			want: []string{"c2", "c3"},
		},
		{
			name: "card placed in another zone is rejected",
			setup: func(t *testing.T, b *BoardAssignment) {
				require.NoError(t, b.Assign(RightTop, []string{"c4"}))
				require.NoError(t, b.Assign(LeftMid, []string{"c1"}))
			},
			zone:    LeftMid,
			ids:     []string{"c1", "c4"},
			wantErr: ErrInvalidCard,
			want:    []string{"c1"},
		},
		{
			name:    "unselected card is rejected",
			zone:    LeftLow,
			ids:     []string{"c26"},
			wantErr: ErrInvalidCard,
			want:    nil,
		},
		{
			name:    "duplicate within the list is rejected",
			zone:    LeftLow,
			ids:     []string{"c5", "c5"},
			wantErr: ErrInvalidCard,
			want:    nil,
		},
		{
			name: "empty list clears the zone",
			setup: func(t *testing.T, b *BoardAssignment) {
				require.NoError(t, b.Assign(RightLow, []string{"c7"}))
			},
			zone: RightLow,
			ids:  nil,
			want: nil,
		},
		{
			name:    "invalid zone is rejected",
			zone:    Zone(9),
			ids:     []string{"c1"},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoardAssignment(fullSelection(t, catalog))
			if tt.setup != nil {
				tt.setup(t, b)
			}

			err := b.Assign(tt.zone, tt.ids)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, b.Zone(tt.zone))
			assertUnique(t, b)
		})
	}
}

func TestBoardAssignment_UniquenessUnderRandomAssigns(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t, 30)
	b := NewBoardAssignment(fullSelection(t, catalog))
	ids := b.Selection().IDs()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		z := AllZones[rng.Intn(ZoneCount)]
		var pick []string
		for _, id := range ids {
			if rng.Intn(4) == 0 {
				pick = append(pick, id)
			}
		}
		before := b.Zone(z)
		if err := b.Assign(z, pick); err != nil {
			assert.ErrorIs(t, err, ErrInvalidCard)
			assert.Equal(t, before, b.Zone(z), "rejected assign must not change the zone")
		}
		assertUnique(t, b)
	}
}

func TestBoardAssignment_IsComplete(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t, 30)

	t.Run("empty board", func(t *testing.T) {
		b := NewBoardAssignment(fullSelection(t, catalog))
		assert.False(t, b.IsComplete())
		assert.Equal(t, 0, b.PlacedCount())

		var incomplete *IncompleteAssignmentError
		require.ErrorAs(t, b.Progress(), &incomplete)
		assert.Equal(t, 0, incomplete.Placed)
		assert.ErrorIs(t, b.Progress(), ErrIncompleteAssignment)
	})

	t.Run("all placed", func(t *testing.T) {
		b := NewBoardAssignment(fullSelection(t, catalog))
		spread(t, b)
		assert.True(t, b.IsComplete())
		assert.Equal(t, SelectionSize, b.PlacedCount())
		assert.NoError(t, b.Progress())
	})

	t.Run("one missing", func(t *testing.T) {
		b := NewBoardAssignment(fullSelection(t, catalog))
		spread(t, b)
		require.NoError(t, b.Assign(LeftTop, b.Zone(LeftTop)[1:]))
		assert.False(t, b.IsComplete())
		assert.Equal(t, SelectionSize-1, b.PlacedCount())
	})

	t.Run("partial selection", func(t *testing.T) {
		s := fullSelection(t, catalog)
		b := NewBoardAssignment(s)
		spread(t, b)
		s.Remove("c25")
		assert.False(t, b.IsComplete())
	})
}

func TestBoardAssignment_SnapshotIsIndependent(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t, 30)
	b := NewBoardAssignment(fullSelection(t, catalog))
	spread(t, b)

	snap := b.Snapshot()
	require.NoError(t, b.Assign(LeftTop, nil))

	assert.Len(t, snap[LeftTop], 5)
	assert.Equal(t, SelectionSize, snap.Count())
}

func TestRestoreLayout(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t, 30)
	src := NewBoardAssignment(fullSelection(t, catalog))
	spread(t, src)

	sel, board, err := RestoreLayout(catalog, src.Selection().IDs(), src.Snapshot())
	require.NoError(t, err)
	require.NotNil(t, board)
	assert.Equal(t, src.Selection().IDs(), sel.IDs())
	assert.True(t, board.IsComplete())
	assert.Equal(t, src.Snapshot(), board.Snapshot())

	t.Run("partial selection without placement", func(t *testing.T) {
		sel, board, err := RestoreLayout(catalog, []string{"c1", "c2"}, Placement{})
		require.NoError(t, err)
		assert.Nil(t, board)
		assert.Equal(t, 2, sel.Len())
	})

	t.Run("placement references unselected card", func(t *testing.T) {
		p := src.Snapshot()
		p[LeftTop] = append(p[LeftTop], "c29")
		_, _, err := RestoreLayout(catalog, src.Selection().IDs(), p)
		assert.ErrorIs(t, err, ErrInvalidCard)
	})

	t.Run("unknown card", func(t *testing.T) {
		_, _, err := RestoreLayout(catalog, []string{"zz"}, Placement{})
		assert.ErrorIs(t, err, ErrCardNotInCatalog)
	})
}
