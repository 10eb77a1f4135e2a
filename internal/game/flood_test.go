package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloodZeroRegion(t *testing.T) {
	t.Parallel()

	for seed := range uint64(30) {
		r := rand.New(rand.NewPCG(seed, 7))
		g, err := New(12, 10, 12, r)
		require.NoError(t, err)
		require.NoError(t, g.Reveal(6, 5))

		// every revealed zero cell must have all its non-mine neighbours
		// revealed too: no hidden cell stays reachable inside the region
		for i, v := range g.View {
			if v != 0 {
				continue
			}
			for _, j := range g.neighbors(i) {
				assert.False(t, g.Mines[j], "mine borders a zero cell")
				assert.True(t, g.View[j].Open(),
					"seed %d: hidden neighbour %d of zero cell %d", seed, j, i)
			}
		}

		// the region's border is numbered: a revealed cell that still has
		// a hidden neighbour is never a zero cell
		for i, v := range g.View {
			if !v.Open() {
				continue
			}
			for _, j := range g.neighbors(i) {
				if g.View[j] == Hidden {
					assert.NotEqual(t, CellValue(0), v,
						"seed %d: zero cell %d borders hidden %d", seed, i, j)
				}
			}
		}
	}
}

func TestFloodSingleVisit(t *testing.T) {
	// a mine-free ring around the whole board forces the deepest cascade;
	// one reveal must open everything and win
	g := build(t, 9, 9, 40) // single mine at 4:4
	require.NoError(t, g.Reveal(0, 0))
	assert.Equal(t, Won, g.Status)
	for i, v := range g.View {
		if i == 40 {
			assert.Equal(t, Flag, v)
		} else {
			assert.True(t, v.Open())
		}
	}
}
