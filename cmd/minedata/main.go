package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mlsweep/minedata/internal/dataset"
)

var log = logrus.New()

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "minedata",
	Short: "Generate and inspect minesweeper board datasets",
	Long: `minedata produces datasets of partially played minesweeper boards
for training mine-prediction models.

Generate 100 files of 4096 samples each on a 16x16 board
	minedata gen -o ./data --rows 16 --cols 16 --files 100

Inspect a generated dataset
	minedata inspect ./data --sample 0
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case verbosity >= 2:
			log.SetLevel(logrus.TraceLevel)
		case verbosity == 1:
			log.SetLevel(logrus.DebugLevel)
		default:
			log.SetLevel(logrus.InfoLevel)
		}
		dataset.Log = log
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
