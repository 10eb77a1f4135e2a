package game

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
)

type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Game is a single Minesweeper round: a Rows x Cols grid with MineCount
// mines. Fields are exported so the whole state survives a gob round trip;
// callers other than the serializer should treat them as read-only and go
// through Reveal/Flag/Unflag/Chord.
//
// Mine placement is deferred until the first Reveal and excludes the
// first-revealed cell, so the first click never loses. The same rule drives
// dataset simulation, keeping the training distribution consistent with play.
type Game struct {
	Rows, Cols, MineCount int

	Status Status

	// Mines is nil until the first reveal places the layout.
	Mines []bool
	// Counts caches each cell's surrounding mine count once mines are placed.
	Counts []int8
	// View is the player-visible grid, row-major.
	View []CellValue

	rnd *rand.Rand
}

// New validates the board parameters and returns a fresh game. Passing a nil
// rand source seeds an internal one; tests inject a seeded rand for
// reproducible layouts.
func New(rows, cols, mineCount int, r *rand.Rand) (*Game, error) {
	if rows <= 0 || cols <= 0 {
		return nil, InvalidConfigError{
			fmt.Sprintf("board dimensions must be positive, got %dx%d", rows, cols),
		}
	}
	if mineCount <= 0 || mineCount >= rows*cols {
		return nil, InvalidConfigError{
			fmt.Sprintf("mine count must be within (0, %d), got %d", rows*cols, mineCount),
		}
	}
	view := make([]CellValue, rows*cols)
	for i := range view {
		view[i] = Hidden
	}
	return &Game{
		Rows:      rows,
		Cols:      cols,
		MineCount: mineCount,
		View:      view,
		rnd:       r,
	}, nil
}

func (g *Game) rand() *rand.Rand {
	if g.rnd == nil {
		// A game restored from gob loses its rand source; recreate one.
		g.rnd = rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return g.rnd
}

// Contains reports whether (row, col) is a valid cell coordinate.
func (g *Game) Contains(row, col int) bool {
	return 0 <= row && row < g.Rows && 0 <= col && col < g.Cols
}

// CellView returns the player-visible value at (row, col), which must be a
// valid coordinate.
func (g *Game) CellView(row, col int) CellValue {
	return g.View[row*g.Cols+col]
}

// OpenRatio returns the fraction of cells that are neither hidden nor
// flagged.
func (g *Game) OpenRatio() float64 {
	return 1 - float64(g.countCovered())/float64(g.Rows*g.Cols)
}

func (g *Game) countCovered() int {
	covered := 0
	for _, v := range g.View {
		if v == Hidden || v == Flag {
			covered++
		}
	}
	return covered
}

// placeMines draws MineCount distinct cells uniformly from all cells except
// the excluded one and caches the neighbour counts.
func (g *Game) placeMines(exclude int) {
	size := g.Rows * g.Cols
	candidates := make([]int, 0, size-1)
	for i := range size {
		if i != exclude {
			candidates = append(candidates, i)
		}
	}

	g.Mines = make([]bool, size)
	g.Counts = make([]int8, size)

	k := len(candidates)
	for range g.MineCount {
		j := g.rand().IntN(k)
		i := candidates[j]
		k--
		candidates[j] = candidates[k]

		g.Mines[i] = true
		for _, n := range g.neighbors(i) {
			g.Counts[n]++
		}
	}
}

func (g *Game) neighbors(i int) []int {
	row, col := i/g.Cols, i%g.Cols
	out := make([]int, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			rr, cc := row+dr, col+dc
			if g.Contains(rr, cc) {
				out = append(out, rr*g.Cols+cc)
			}
		}
	}
	return out
}

// Reveal opens a hidden cell. Opening a mine loses the game and exposes the
// whole field; opening a zero-count cell cascades through its connected
// zero region. Flagged cells must be unflagged first.
func (g *Game) Reveal(row, col int) error {
	if !g.Contains(row, col) {
		return InvalidActionError{
			fmt.Sprintf("cell %d:%d is out of bounds", row, col),
		}
	}
	if g.Status != InProgress {
		return InvalidActionError{"game is over"}
	}
	i := row*g.Cols + col
	switch g.View[i] {
	case Hidden:
	case Flag:
		return InvalidActionError{"cell is flagged"}
	default:
		return InvalidActionError{"cell is already revealed"}
	}

	if g.Mines == nil {
		g.placeMines(i)
	}
	if g.Mines[i] {
		g.explode(i)
		return nil
	}
	g.floodReveal(i)
	g.checkWin()
	return nil
}

// explode ends the game. The whole field becomes visible, with the fatal
// cell marked distinctly.
func (g *Game) explode(i int) {
	for j := range g.View {
		if g.Mines[j] {
			g.View[j] = Mine
		} else {
			g.View[j] = CellValue(g.Counts[j])
		}
	}
	g.View[i] = Explosion
	g.Status = Lost
}

// checkWin settles the game once only mines remain covered; leftover hidden
// cells are shown as flags, matching the classic end-of-game display.
func (g *Game) checkWin() {
	if g.countCovered() != g.MineCount {
		return
	}
	for i, v := range g.View {
		if v == Hidden {
			g.View[i] = Flag
		}
	}
	g.Status = Won
}

// Flag marks a hidden cell. Flagging an already-flagged or revealed cell is
// rejected; flags never affect win or loss.
func (g *Game) Flag(row, col int) error {
	if !g.Contains(row, col) {
		return InvalidActionError{
			fmt.Sprintf("cell %d:%d is out of bounds", row, col),
		}
	}
	if g.Status != InProgress {
		return InvalidActionError{"game is over"}
	}
	i := row*g.Cols + col
	switch g.View[i] {
	case Hidden:
		g.View[i] = Flag
		return nil
	case Flag:
		return InvalidActionError{"cell is already flagged"}
	default:
		return InvalidActionError{"cannot flag a revealed cell"}
	}
}

// Unflag removes a flag, returning the cell to hidden.
func (g *Game) Unflag(row, col int) error {
	if !g.Contains(row, col) {
		return InvalidActionError{
			fmt.Sprintf("cell %d:%d is out of bounds", row, col),
		}
	}
	if g.Status != InProgress {
		return InvalidActionError{"game is over"}
	}
	i := row*g.Cols + col
	switch g.View[i] {
	case Flag:
		g.View[i] = Hidden
		return nil
	case Hidden:
		return InvalidActionError{"cell is not flagged"}
	default:
		return InvalidActionError{"cannot unflag a revealed cell"}
	}
}

// Chord batch-reveals the hidden neighbours of a revealed numbered cell
// whose flag count matches its number. An unsatisfied cell is a no-op; a
// wrongly placed flag can make a chord hit a mine.
func (g *Game) Chord(row, col int) error {
	if !g.Contains(row, col) {
		return InvalidActionError{
			fmt.Sprintf("cell %d:%d is out of bounds", row, col),
		}
	}
	if g.Status != InProgress {
		return InvalidActionError{"game is over"}
	}
	i := row*g.Cols + col
	v := g.View[i]
	if v < 1 || v > 8 {
		return InvalidActionError{"chord requires a revealed numbered cell"}
	}

	flagged := 0
	hidden := make([]int, 0, 8)
	for _, j := range g.neighbors(i) {
		switch g.View[j] {
		case Flag:
			flagged++
		case Hidden:
			hidden = append(hidden, j)
		}
	}
	if flagged != int(v) {
		return nil
	}

	for _, j := range hidden {
		if g.View[j] != Hidden {
			// opened by an earlier cascade in this chord
			continue
		}
		if g.Mines[j] {
			g.explode(j)
			return nil
		}
		g.floodReveal(j)
	}
	g.checkWin()
	return nil
}
