package game

import (
	"bytes"
	"encoding/gob"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// build assembles a game with a fixed mine layout, bypassing random
// placement.
func build(t *testing.T, rows, cols int, mines ...int) *Game {
	t.Helper()
	g, err := New(rows, cols, len(mines), testRand())
	require.NoError(t, err)
	g.Mines = make([]bool, rows*cols)
	g.Counts = make([]int8, rows*cols)
	for _, i := range mines {
		g.Mines[i] = true
		for _, n := range g.neighbors(i) {
			g.Counts[n]++
		}
	}
	return g
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name              string
		rows, cols, mines int
	}{
		{"1x1 no room for a mine", 1, 1, 0},
		{"zero rows", 0, 5, 1},
		{"zero cols", 5, 0, 1},
		{"negative dimensions", -3, 4, 1},
		{"zero mines", 4, 4, 0},
		{"negative mines", 4, 4, -1},
		{"mines fill the board", 4, 4, 16},
		{"more mines than cells", 4, 4, 17},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := New(test.rows, test.cols, test.mines, testRand())
			assert.Nil(t, g)
			var ice InvalidConfigError
			assert.ErrorAs(t, err, &ice)
		})
	}
}

func TestPlacement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		rows, cols, mines int
	}{
		{"9x9(10)", 9, 9, 10},
		{"16x16(40)", 16, 16, 40},
		{"16x30(99)", 16, 30, 99},
		{"12x10(30)", 12, 10, 30},
		{"2x2(3)", 2, 2, 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			for seed := range uint64(20) {
				r := rand.New(rand.NewPCG(seed, 2))
				g, err := New(test.rows, test.cols, test.mines, r)
				require.NoError(t, err)

				assert.Nil(t, g.Mines, "placement must wait for the first reveal")

				start := r.IntN(test.rows * test.cols)
				require.NoError(t, g.Reveal(start/test.cols, start%test.cols))

				assert.False(t, g.Mines[start], "first revealed cell holds a mine")

				placed := 0
				for _, m := range g.Mines {
					if m {
						placed++
					}
				}
				assert.Equal(t, test.mines, placed)

				// brute-force cross-check of the cached neighbour counts
				for row := range g.Rows {
					for col := range g.Cols {
						want := int8(0)
						for dr := -1; dr <= 1; dr++ {
							for dc := -1; dc <= 1; dc++ {
								if dr == 0 && dc == 0 {
									continue
								}
								if g.Contains(row+dr, col+dc) &&
									g.Mines[(row+dr)*g.Cols+col+dc] {
									want++
								}
							}
						}
						assert.Equal(t, want, g.Counts[row*g.Cols+col],
							"count mismatch at %d:%d", row, col)
					}
				}
			}
		})
	}
}

func TestFirstRevealNeverLoses(t *testing.T) {
	// 2x2 with 1 mine: after excluding the first-clicked cell the rest of
	// the board takes the mine, so any opening move is safe.
	for seed := range uint64(50) {
		g, err := New(2, 2, 1, rand.New(rand.NewPCG(seed, 0)))
		require.NoError(t, err)
		require.NoError(t, g.Reveal(0, 0))
		assert.NotEqual(t, Lost, g.Status)
	}
}

func TestRevealPreconditions(t *testing.T) {
	g := build(t, 2, 3, 0) // mine at 0:0

	var iae InvalidActionError
	assert.ErrorAs(t, g.Reveal(-1, 0), &iae)
	assert.ErrorAs(t, g.Reveal(0, 3), &iae)

	require.NoError(t, g.Reveal(1, 2))
	assert.ErrorAs(t, g.Reveal(1, 2), &iae, "re-reveal must be rejected")

	require.NoError(t, g.Flag(0, 0))
	assert.ErrorAs(t, g.Reveal(0, 0), &iae, "flagged cell must not reveal")
	assert.Equal(t, Flag, g.CellView(0, 0))
}

func TestLoss(t *testing.T) {
	g := build(t, 2, 2, 0, 3) // mines at opposite corners
	require.NoError(t, g.Reveal(1, 1))

	assert.Equal(t, Lost, g.Status)
	assert.Equal(t, Explosion, g.CellView(1, 1))
	assert.Equal(t, Mine, g.CellView(0, 0), "other mines are exposed on loss")
	assert.Equal(t, CellValue(2), g.CellView(0, 1), "safe cells are exposed on loss")

	var iae InvalidActionError
	assert.ErrorAs(t, g.Reveal(0, 1), &iae)
	assert.ErrorAs(t, g.Flag(0, 1), &iae)
	assert.ErrorAs(t, g.Unflag(0, 1), &iae)
	assert.ErrorAs(t, g.Chord(0, 1), &iae)
	assert.Equal(t, Lost, g.Status)
}

func TestWin(t *testing.T) {
	g := build(t, 2, 2, 0)
	require.NoError(t, g.Reveal(0, 1))
	require.NoError(t, g.Reveal(1, 0))
	assert.Equal(t, InProgress, g.Status)

	require.NoError(t, g.Reveal(1, 1))
	assert.Equal(t, Won, g.Status)
	assert.Equal(t, Flag, g.CellView(0, 0), "leftover mine is shown flagged")

	var iae InvalidActionError
	assert.ErrorAs(t, g.Reveal(0, 0), &iae)
}

func TestFlagIdempotence(t *testing.T) {
	g := build(t, 2, 2, 0)

	require.NoError(t, g.Flag(1, 1))
	var iae InvalidActionError
	assert.ErrorAs(t, g.Flag(1, 1), &iae, "second flag must not toggle")
	assert.Equal(t, Flag, g.CellView(1, 1))

	require.NoError(t, g.Unflag(1, 1))
	assert.Equal(t, Hidden, g.CellView(1, 1))
	assert.ErrorAs(t, g.Unflag(1, 1), &iae)

	require.NoError(t, g.Flag(1, 1))
	assert.Equal(t, Flag, g.CellView(1, 1))

	require.NoError(t, g.Reveal(0, 1))
	assert.ErrorAs(t, g.Flag(0, 1), &iae, "revealed cell must not flag")
	assert.ErrorAs(t, g.Unflag(0, 1), &iae)
}

func TestChord(t *testing.T) {
	t.Run("satisfied cell opens its neighbours", func(t *testing.T) {
		// 1 2 2
		// 1 o o   mines at 1:1 and 1:2
		g := build(t, 2, 3, 4, 5)
		require.NoError(t, g.Reveal(0, 0))
		require.NoError(t, g.Flag(1, 1))
		require.NoError(t, g.Flag(1, 2))

		var iae InvalidActionError
		assert.ErrorAs(t, g.Chord(1, 1), &iae, "chord needs a numbered cell")

		require.NoError(t, g.Chord(0, 0))
		assert.Equal(t, CellValue(2), g.CellView(0, 1))
		assert.Equal(t, CellValue(1), g.CellView(1, 0))
		assert.Equal(t, InProgress, g.Status, "0:2 is still hidden")

		require.NoError(t, g.Reveal(0, 2))
		assert.Equal(t, Won, g.Status)
	})

	t.Run("unsatisfied cell is a no-op", func(t *testing.T) {
		g := build(t, 2, 3, 4, 5)
		require.NoError(t, g.Reveal(0, 0))
		require.NoError(t, g.Chord(0, 0))
		assert.Equal(t, Hidden, g.CellView(0, 1))
	})

	t.Run("wrong flag loses", func(t *testing.T) {
		// 1 1 1
		// 1 o 1   single mine in the centre of a 3x3
		g := build(t, 3, 3, 4)
		require.NoError(t, g.Reveal(0, 0))
		require.NoError(t, g.Flag(0, 1))
		require.NoError(t, g.Chord(0, 0))
		assert.Equal(t, Lost, g.Status)
		assert.Equal(t, Explosion, g.CellView(1, 1))
	})
}

func TestGobRoundTrip(t *testing.T) {
	g := build(t, 3, 3, 4)
	require.NoError(t, g.Reveal(0, 0))
	require.NoError(t, g.Flag(1, 1))

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(g))

	var restored Game
	require.NoError(t, gob.NewDecoder(&buf).Decode(&restored))

	assert.Equal(t, g.Rows, restored.Rows)
	assert.Equal(t, g.Cols, restored.Cols)
	assert.Equal(t, g.MineCount, restored.MineCount)
	assert.Equal(t, g.Status, restored.Status)
	assert.Equal(t, g.View, restored.View)
	assert.Equal(t, g.Mines, restored.Mines)

	// the restored game must still be playable
	require.NoError(t, restored.Unflag(1, 1))
	require.NoError(t, restored.Reveal(2, 2))
}
