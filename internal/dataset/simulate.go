package dataset

import (
	"math/rand/v2"

	"github.com/mlsweep/minedata/internal/game"
)

// PartiallyOpen plays random safe reveals until the open ratio reaches the
// target or the game settles. It never flags and goes through the public
// Reveal path, so the first-click placement rule matches interactive play.
func PartiallyOpen(g *game.Game, openRatio float64, r *rand.Rand) {
	for g.Status == game.InProgress && g.OpenRatio() < openRatio {
		row, col := r.IntN(g.Rows), r.IntN(g.Cols)
		if g.CellView(row, col) != game.Hidden {
			continue
		}
		if g.Mines != nil && g.Mines[row*g.Cols+col] {
			continue
		}
		// cannot fail: the cell is hidden and known safe
		_ = g.Reveal(row, col)
	}
}
