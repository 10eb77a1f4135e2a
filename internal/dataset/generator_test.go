package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetLevel(logrus.WarnLevel)
	os.Exit(m.Run())
}

func testGenerator(dir string) Generator {
	return Generator{
		Params: Params{Rows: 6, Cols: 5, SamplesPerFile: 4},
		Seed:   42,
		Dir:    dir,
	}
}

func TestGenerateAndRead(t *testing.T) {
	dir := t.TempDir()
	gen := testGenerator(dir)
	require.NoError(t, gen.GenerateDataset(context.Background(), 3, 2))

	r, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 12, r.Len())
	assert.Equal(t, 6, r.Manifest().Rows)
	assert.Equal(t, 5, r.Manifest().Cols)

	seen := 0
	for idx, s := range r.All() {
		assert.Equal(t, seen, idx)
		require.Len(t, s.Input, 6)
		require.Len(t, s.Input[0], 5)
		checkContract(t, s)
		seen++
	}
	require.NoError(t, r.Err())
	assert.Equal(t, 12, seen)

	_, err = r.At(12)
	assert.Error(t, err)
	_, err = r.At(-1)
	assert.Error(t, err)
}

func TestGenerateIsReproducible(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping dataset generation in short mode")
	}

	dirA, dirB := t.TempDir(), t.TempDir()

	genA := testGenerator(dirA)
	require.NoError(t, genA.GenerateDataset(context.Background(), 2, 1))

	// different worker count, same seed
	genB := testGenerator(dirB)
	require.NoError(t, genB.GenerateDataset(context.Background(), 2, 4))

	ra, err := Open(dirA)
	require.NoError(t, err)
	rb, err := Open(dirB)
	require.NoError(t, err)

	require.Equal(t, ra.Len(), rb.Len())
	for idx := range ra.Len() {
		sa, err := ra.At(idx)
		require.NoError(t, err)
		sb, err := rb.At(idx)
		require.NoError(t, err)
		assert.Equal(t, sa, sb, "sample %d differs", idx)
	}
}

func TestGenerateFileSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	gen := testGenerator(dir)
	require.NoError(t, gen.GenerateFile(0))

	path := filepath.Join(dir, gen.chunkName(0))
	require.NoError(t, os.WriteFile(path, []byte("sentinel"), 0644))

	require.NoError(t, gen.GenerateFile(0))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sentinel", string(b), "existing chunk must be kept")

	gen.Overwrite = true
	require.NoError(t, gen.GenerateFile(0))
	c, err := readChunk(path)
	require.NoError(t, err)
	assert.Len(t, c.Samples, 4)
}

func TestOpenRequiresManifest(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.Error(t, err)
}

func TestGenerateDatasetRejectsBadCounts(t *testing.T) {
	gen := testGenerator(t.TempDir())
	assert.Error(t, gen.GenerateDataset(context.Background(), 0, 1))
}
