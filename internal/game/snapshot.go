package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// Snapshot is an immutable copy of a game at one point in time. It carries
// both the player-visible grid and the real mine layout, which is what the
// dataset extractor labels against.
type Snapshot struct {
	Rows, Cols, MineCount int
	Status                Status
	View                  []CellValue
	Mines                 []bool
}

// Snapshot returns a read-only copy of the full grid. Mines is nil if the
// first reveal has not happened yet.
func (g *Game) Snapshot() *Snapshot {
	s := &Snapshot{
		Rows:      g.Rows,
		Cols:      g.Cols,
		MineCount: g.MineCount,
		Status:    g.Status,
		View:      make([]CellValue, len(g.View)),
	}
	copy(s.View, g.View)
	if g.Mines != nil {
		s.Mines = make([]bool, len(g.Mines))
		copy(s.Mines, g.Mines)
	}
	return s
}

// At returns the player-visible value at (row, col).
func (s *Snapshot) At(row, col int) CellValue {
	return s.View[row*s.Cols+col]
}

// MineAt reports whether (row, col) holds a mine. Always false before the
// layout is placed.
func (s *Snapshot) MineAt(row, col int) bool {
	if s.Mines == nil {
		return false
	}
	return s.Mines[row*s.Cols+col]
}

func (s *Snapshot) String() string {
	return RenderView(s.View, s.Cols)
}

type snapshotDoc struct {
	Rows      int    `yaml:"rows"`
	Cols      int    `yaml:"cols"`
	MineCount int    `yaml:"mine_count"`
	Status    string `yaml:"status"`
	Board     string `yaml:"board,flow"`
}

// Encode serializes the snapshot to YAML. Each cell becomes one character:
//
//	digit  open safe cell
//	#      hidden safe cell
//	f      flagged safe cell
//	o      hidden mine
//	F      flagged mine
//	O      mine shown by the end-of-game reveal
//	*      the exploded mine
func (s *Snapshot) Encode() (string, error) {
	var b strings.Builder
	for i, v := range s.View {
		if i > 0 && i%s.Cols == 0 {
			b.WriteByte('\n')
		}
		b.WriteByte(s.serializeCell(i, v))
	}
	out, err := yaml.Marshal(snapshotDoc{
		Rows:      s.Rows,
		Cols:      s.Cols,
		MineCount: s.MineCount,
		Status:    s.Status.String(),
		Board:     b.String(),
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Snapshot) serializeCell(i int, v CellValue) byte {
	mine := s.Mines != nil && s.Mines[i]
	switch {
	case v == Explosion:
		return '*'
	case v == Mine:
		return 'O'
	case v == Flag && mine:
		return 'F'
	case v == Flag:
		return 'f'
	case v == Hidden && mine:
		return 'o'
	case v == Hidden:
		return '#'
	default:
		return '0' + byte(v)
	}
}

// DecodeSnapshot restores a snapshot previously produced by Encode.
func DecodeSnapshot(in string) (*Snapshot, error) {
	var doc snapshotDoc
	if err := yaml.Unmarshal([]byte(in), &doc); err != nil {
		return nil, err
	}

	s := &Snapshot{
		Rows:      doc.Rows,
		Cols:      doc.Cols,
		MineCount: doc.MineCount,
		View:      make([]CellValue, doc.Rows*doc.Cols),
		Mines:     make([]bool, doc.Rows*doc.Cols),
	}
	switch doc.Status {
	case InProgress.String():
		s.Status = InProgress
	case Won.String():
		s.Status = Won
	case Lost.String():
		s.Status = Lost
	default:
		return nil, fmt.Errorf("unknown status %q", doc.Status)
	}

	board := strings.ReplaceAll(doc.Board, "\n", "")
	if len(board) != doc.Rows*doc.Cols {
		return nil, fmt.Errorf(
			"board is %d cells, want %d", len(board), doc.Rows*doc.Cols,
		)
	}
	for i := range board {
		switch c := board[i]; c {
		case '*':
			s.View[i], s.Mines[i] = Explosion, true
		case 'O':
			s.View[i], s.Mines[i] = Mine, true
		case 'F':
			s.View[i], s.Mines[i] = Flag, true
		case 'f':
			s.View[i] = Flag
		case 'o':
			s.View[i], s.Mines[i] = Hidden, true
		case '#':
			s.View[i] = Hidden
		default:
			if c < '0' || c > '8' {
				return nil, fmt.Errorf("bad board character %q at %d", c, i)
			}
			s.View[i] = CellValue(c - '0')
		}
	}
	return s, nil
}
