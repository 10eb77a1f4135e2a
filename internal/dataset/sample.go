// Package dataset turns game snapshots into supervised training examples
// and manages chunked dataset files on disk.
package dataset

import "github.com/mlsweep/minedata/internal/game"

// Sentinel values are a contract with the training loss function and must
// be preserved bit-exact: consumers hard-code them.
const (
	// HiddenInput marks a cell whose value is not visible to the player.
	HiddenInput int8 = 10
	// IgnoreLabel marks an already-open cell, excluded from the loss.
	IgnoreLabel int8 = -100
)

// Sample is one training example: the player-visible board and the mine
// labels, both row-major Rows x Cols.
//
// Input holds 0..8 for open safe cells and HiddenInput everywhere else.
// Labels holds 1 for mines and 0 for safe cells, except open safe cells
// which get IgnoreLabel. Consequently Input[r][c] == HiddenInput exactly
// when Labels[r][c] is 0 or 1.
type Sample struct {
	Input  [][]int8 `json:"input"`
	Labels [][]int8 `json:"labels"`
}

// Extract projects a snapshot into a sample. It may be called at any point
// of a game's life; the primary use is mid-game partial-information states.
// Flagged cells count as hidden: their input is the sentinel and their
// label is the real mine bit.
func Extract(s *game.Snapshot) Sample {
	input := make([][]int8, s.Rows)
	labels := make([][]int8, s.Rows)
	for r := range s.Rows {
		input[r] = make([]int8, s.Cols)
		labels[r] = make([]int8, s.Cols)
		for c := range s.Cols {
			if v := s.At(r, c); v.Open() {
				input[r][c] = int8(v)
				labels[r][c] = IgnoreLabel
				continue
			}
			input[r][c] = HiddenInput
			if s.MineAt(r, c) {
				labels[r][c] = 1
			}
		}
	}
	return Sample{Input: input, Labels: labels}
}
