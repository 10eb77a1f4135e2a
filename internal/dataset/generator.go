package dataset

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mlsweep/minedata/internal/game"
)

var Log = logrus.New()

// Generator produces chunked dataset files. Every sample is seeded by its
// global index, so regenerating a dataset with the same Seed reproduces it
// file by file regardless of worker count.
type Generator struct {
	Params
	Seed uint64
	Dir  string
	// Overwrite regenerates chunk files that already exist instead of
	// skipping them.
	Overwrite bool
}

// mineBounds returns the inclusive mine-count range samples draw from:
// 5% of the board up to half the board.
func (gen Generator) mineBounds() (lo, hi int) {
	size := gen.Rows * gen.Cols
	lo = max(1, size*5/100)
	hi = max(lo, size/2)
	return lo, hi
}

func (gen Generator) makeSample(idx int) (Sample, error) {
	r := rand.New(rand.NewPCG(gen.Seed, uint64(idx)))

	lo, hi := gen.mineBounds()
	mineCount := lo + r.IntN(hi-lo+1)
	g, err := game.New(gen.Rows, gen.Cols, mineCount, r)
	if err != nil {
		return Sample{}, err
	}

	openRatio := 0.1 + 0.3*r.Float64()
	PartiallyOpen(g, openRatio, r)

	if Log.IsLevelEnabled(logrus.TraceLevel) {
		Log.Tracef("sample %d (%d mines):\n%s", idx, mineCount, g)
	}
	return Extract(g.Snapshot()), nil
}

// GenerateFile writes one chunk. Existing files are skipped unless
// Overwrite is set, so an interrupted run can resume.
func (gen Generator) GenerateFile(fileIdx int) error {
	path := filepath.Join(gen.Dir, gen.chunkName(fileIdx))
	if !gen.Overwrite {
		if _, err := os.Stat(path); err == nil {
			Log.Infof("skipping %s", path)
			return nil
		}
	}

	start := time.Now()
	c := Chunk{
		Start:   fileIdx * gen.SamplesPerFile,
		Samples: make([]Sample, 0, gen.SamplesPerFile),
	}
	for sampleId := range gen.SamplesPerFile {
		s, err := gen.makeSample(c.Start + sampleId)
		if err != nil {
			return fmt.Errorf("sample %d: %w", c.Start+sampleId, err)
		}
		c.Samples = append(c.Samples, s)
	}

	if err := writeChunk(path, c); err != nil {
		return err
	}
	Log.Infof("generated %s in %s", path, time.Since(start).Round(time.Millisecond))
	return nil
}

// GenerateDataset writes numFiles chunks across at most workers goroutines
// and finishes with the manifest. Games are independent, so workers share
// nothing.
func (gen Generator) GenerateDataset(ctx context.Context, numFiles, workers int) error {
	if numFiles <= 0 {
		return fmt.Errorf("numFiles must be positive, got %d", numFiles)
	}
	if err := os.MkdirAll(gen.Dir, 0755); err != nil {
		return fmt.Errorf("unable to create dataset dir: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for fileIdx := range numFiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return gen.GenerateFile(fileIdx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return WriteManifest(gen.Dir, Manifest{
		Rows:           gen.Rows,
		Cols:           gen.Cols,
		SamplesPerFile: gen.SamplesPerFile,
		NumFiles:       numFiles,
		Seed:           gen.Seed,
	})
}
