package game

import "github.com/gammazero/deque"

// floodReveal opens the cell at start and, if it has no surrounding mines,
// cascades through the connected zero region plus its numbered border.
// Cells are marked visible when enqueued, so each cell enters the worklist
// at most once and the loop terminates on any finite board.
func (g *Game) floodReveal(start int) {
	g.View[start] = CellValue(g.Counts[start])
	if g.Counts[start] != 0 {
		return
	}

	var q deque.Deque[int]
	q.PushBack(start)
	for q.Len() > 0 {
		i := q.PopFront()
		for _, j := range g.neighbors(i) {
			// No neighbour of a zero-count cell is a mine; flagged cells
			// are left alone.
			if g.View[j] != Hidden {
				continue
			}
			g.View[j] = CellValue(g.Counts[j])
			if g.Counts[j] == 0 {
				q.PushBack(j)
			}
		}
	}
}
