package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotIsACopy(t *testing.T) {
	g := build(t, 2, 2, 0)
	require.NoError(t, g.Reveal(0, 1))

	s := g.Snapshot()
	require.NoError(t, g.Flag(1, 1))

	assert.Equal(t, Hidden, s.At(1, 1), "snapshot changed after a later move")
	assert.Equal(t, Flag, g.CellView(1, 1))
	assert.True(t, s.MineAt(0, 0))
	assert.False(t, s.MineAt(0, 1))
}

func TestSnapshotBeforePlacement(t *testing.T) {
	g, err := New(3, 3, 2, testRand())
	require.NoError(t, err)

	s := g.Snapshot()
	assert.Nil(t, s.Mines)
	assert.False(t, s.MineAt(1, 1))
	assert.Equal(t, Hidden, s.At(2, 2))
}

func TestSnapshotEncodeRoundTrip(t *testing.T) {
	g := build(t, 3, 3, 4)
	require.NoError(t, g.Reveal(0, 0))
	require.NoError(t, g.Flag(1, 1))
	require.NoError(t, g.Flag(2, 2))

	s := g.Snapshot()
	encoded, err := s.Encode()
	require.NoError(t, err)

	restored, err := DecodeSnapshot(encoded)
	require.NoError(t, err)
	assert.Equal(t, s.Rows, restored.Rows)
	assert.Equal(t, s.Cols, restored.Cols)
	assert.Equal(t, s.MineCount, restored.MineCount)
	assert.Equal(t, s.Status, restored.Status)
	assert.Equal(t, s.View, restored.View)
	assert.Equal(t, s.Mines, restored.Mines)
}

func TestSnapshotEncodeLost(t *testing.T) {
	g := build(t, 2, 2, 0, 3)
	require.NoError(t, g.Reveal(1, 1))
	require.Equal(t, Lost, g.Status)

	encoded, err := g.Snapshot().Encode()
	require.NoError(t, err)

	restored, err := DecodeSnapshot(encoded)
	require.NoError(t, err)
	assert.Equal(t, Lost, restored.Status)
	assert.Equal(t, Explosion, restored.At(1, 1))
	assert.Equal(t, Mine, restored.At(0, 0))
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := DecodeSnapshot("rows: 2\ncols: 2\nstatus: nonsense\nboard: \"####\"")
	assert.Error(t, err)

	_, err = DecodeSnapshot("rows: 2\ncols: 2\nstatus: in progress\nboard: \"##\"")
	assert.Error(t, err)
}

func TestRenderView(t *testing.T) {
	g := build(t, 2, 2, 0)
	require.NoError(t, g.Reveal(1, 1))
	require.NoError(t, g.Flag(0, 0))

	lines := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "F #", lines[0])
	assert.Equal(t, "# 1", lines[1])
}
