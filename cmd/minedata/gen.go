package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mlsweep/minedata/internal/dataset"
)

var genOpts = struct {
	rows, cols     int
	samplesPerFile int
	numFiles       int
	workers        int
	seed           uint64
	outDir         string
	overwrite      bool
}{}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a dataset of partially played boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		if genOpts.workers <= 0 {
			genOpts.workers = runtime.NumCPU()
		}

		gen := dataset.Generator{
			Params: dataset.Params{
				Rows:           genOpts.rows,
				Cols:           genOpts.cols,
				SamplesPerFile: genOpts.samplesPerFile,
			},
			Seed:      genOpts.seed,
			Dir:       genOpts.outDir,
			Overwrite: genOpts.overwrite,
		}

		log.WithFields(logrus.Fields{
			"rows":             genOpts.rows,
			"cols":             genOpts.cols,
			"samples_per_file": genOpts.samplesPerFile,
			"num_files":        genOpts.numFiles,
			"workers":          genOpts.workers,
			"seed":             genOpts.seed,
			"dir":              genOpts.outDir,
		}).Info("generating dataset")

		start := time.Now()
		if err := gen.GenerateDataset(cmd.Context(), genOpts.numFiles, genOpts.workers); err != nil {
			return fmt.Errorf("dataset generation failed: %w", err)
		}

		log.Infof("generated %d samples in %s",
			genOpts.numFiles*genOpts.samplesPerFile, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	genCmd.Flags().IntVar(&genOpts.rows, "rows", 16, "Height of each game board, in cells")
	genCmd.Flags().IntVar(&genOpts.cols, "cols", 16, "Width of each game board, in cells")
	genCmd.Flags().IntVar(&genOpts.samplesPerFile, "samples-per-file", 4096, "Number of samples stored per chunk file")
	genCmd.Flags().IntVarP(&genOpts.numFiles, "files", "n", 10, "Number of chunk files to generate")
	genCmd.Flags().IntVarP(&genOpts.workers, "workers", "j", 0, "Number of concurrent workers (0 = all CPUs)")
	genCmd.Flags().Uint64Var(&genOpts.seed, "seed", 1337, "Base seed for reproducible generation")
	genCmd.Flags().StringVarP(&genOpts.outDir, "out", "o", "dataset", "Output directory")
	genCmd.Flags().BoolVar(&genOpts.overwrite, "overwrite", false, "Regenerate chunk files that already exist")

	rootCmd.AddCommand(genCmd)
}
