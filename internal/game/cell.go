package game

import "strconv"

// CellValue is the player-visible value of a single cell.
//
//   - 0 to 8 mean the cell is open and safe, carrying its surrounding
//     mine count.
//   - Mine means a mine shown during the end-of-game reveal.
//   - Hidden means the cell has not been opened.
//   - Flag means the player has flagged the cell.
//   - Explosion means the mine the player stepped on.
type CellValue int8

const (
	Mine      CellValue = 9
	Hidden    CellValue = 10
	Flag      CellValue = 11
	Explosion CellValue = 12
)

func (v CellValue) String() string {
	switch {
	case v == 0:
		return "."
	case 0 < v && v <= 8:
		return strconv.Itoa(int(v))
	case v == Mine:
		return "*"
	case v == Hidden:
		return "#"
	case v == Flag:
		return "F"
	case v == Explosion:
		return "X"
	default:
		return "!"
	}
}

// Open reports whether the value belongs to a revealed safe cell.
func (v CellValue) Open() bool {
	return 0 <= v && v <= 8
}
