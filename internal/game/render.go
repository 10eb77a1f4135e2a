package game

import (
	"fmt"
	"strings"
)

// RenderView formats a row-major grid of cell values as text, one board row
// per line.
func RenderView(view []CellValue, cols int) string {
	var b strings.Builder
	for y := range len(view) / cols {
		for x := range cols {
			i := y*cols + x
			if i >= len(view) {
				break
			}
			if x > 0 {
				fmt.Fprint(&b, " ")
			}
			fmt.Fprint(&b, view[i].String())
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func (g *Game) String() string {
	return RenderView(g.View, g.Cols)
}
