package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlsweep/minedata/internal/dataset"
	"github.com/mlsweep/minedata/internal/game"
)

var inspectOpts = struct {
	sample int
	stats  bool
}{}

var inspectCmd = &cobra.Command{
	Use:   "inspect <dir>",
	Short: "Print manifest, samples and statistics of a generated dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := dataset.Open(args[0])
		if err != nil {
			return fmt.Errorf("unable to open dataset: %w", err)
		}

		m := r.Manifest()
		fmt.Printf("board:            %dx%d (cols x rows)\n", m.Cols, m.Rows)
		fmt.Printf("samples per file: %d\n", m.SamplesPerFile)
		fmt.Printf("files:            %d\n", m.NumFiles)
		fmt.Printf("total samples:    %d\n", r.Len())
		fmt.Printf("seed:             %d\n", m.Seed)

		if inspectOpts.sample >= 0 {
			s, err := r.At(inspectOpts.sample)
			if err != nil {
				return err
			}
			fmt.Printf("\nsample %d\n%s\n", inspectOpts.sample, formatSample(s))
		}

		if inspectOpts.stats {
			var hidden, mines, total int
			for _, s := range r.All() {
				for _, row := range s.Input {
					for _, v := range row {
						total++
						if v == dataset.HiddenInput {
							hidden++
						}
					}
				}
				for _, row := range s.Labels {
					for _, l := range row {
						if l == 1 {
							mines++
						}
					}
				}
			}
			if err := r.Err(); err != nil {
				return err
			}
			fmt.Printf("\nhidden cells: %d/%d (%.1f%%)\n", hidden, total, 100*float64(hidden)/float64(total))
			fmt.Printf("mines among hidden: %d/%d (%.1f%%)\n", mines, hidden, 100*float64(mines)/float64(hidden))
		}

		return nil
	},
}

// formatSample renders the input with the usual board glyphs and the
// labels as a grid of m (mine), s (safe) and . (revealed, no label).
func formatSample(s dataset.Sample) string {
	var view []game.CellValue
	cols := 0
	for _, row := range s.Input {
		cols = len(row)
		for _, v := range row {
			view = append(view, game.CellValue(v))
		}
	}

	var b strings.Builder
	b.WriteString("input:\n")
	b.WriteString(game.RenderView(view, cols))
	b.WriteString("labels:\n")
	for _, row := range s.Labels {
		glyphs := make([]string, len(row))
		for i, l := range row {
			switch l {
			case 1:
				glyphs[i] = "m"
			case 0:
				glyphs[i] = "s"
			default:
				glyphs[i] = "."
			}
		}
		b.WriteString(strings.Join(glyphs, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectOpts.sample, "sample", "s", -1, "Print the sample at this index")
	inspectCmd.Flags().BoolVar(&inspectOpts.stats, "stats", false, "Scan the whole dataset and print cell statistics")

	rootCmd.AddCommand(inspectCmd)
}
