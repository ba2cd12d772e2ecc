package editor

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/ballistic/internal/core/mask"
	"chosenoffset.com/ballistic/internal/world/level"
)

type openCatalog struct{}

func (openCatalog) Mask(int) mask.Mask { return nil }

func (openCatalog) Cost(int) int { return 0 }

type palette int

func (p palette) Len() int { return int(p) }

func newEditor(t *testing.T, levels ...*level.Level) *Editor {
	t.Helper()
	index := NewLevel
	if len(levels) > 0 {
		index = 0
	}
	e, err := New(zerolog.Nop(), openCatalog{}, palette(40), levels, index)
	require.NoError(t, err)
	return e
}

func grid(t *testing.T, rows [][]int) *level.Level {
	t.Helper()
	l, err := level.New(openCatalog{}, rows)
	require.NoError(t, err)
	return l
}

func TestNewRequiresPalette(t *testing.T) {
	_, err := New(zerolog.Nop(), openCatalog{}, palette(0), nil, NewLevel)
	assert.Error(t, err)
}

func TestBlankLevel(t *testing.T) {
	e := newEditor(t)
	assert.Equal(t, NewLevel, e.LevelIndex())
	assert.Equal(t, 16, e.Level().Width())
	assert.Equal(t, 64, e.Level().Height())
}

func TestSelectLevel(t *testing.T) {
	a := grid(t, [][]int{{1}})
	b := grid(t, [][]int{{2}})
	e := newEditor(t, a, b)
	assert.Same(t, a, e.Level())

	require.NoError(t, e.CycleLevel(1))
	assert.Same(t, b, e.Level())

	require.NoError(t, e.CycleLevel(1))
	assert.Equal(t, NewLevel, e.LevelIndex())

	require.NoError(t, e.CycleLevel(1))
	assert.Same(t, a, e.Level())

	require.NoError(t, e.CycleLevel(-1))
	assert.Equal(t, NewLevel, e.LevelIndex())

	assert.Error(t, e.SelectLevel(5))
}

func TestPaletteSelection(t *testing.T) {
	e := newEditor(t)
	assert.Equal(t, 0, e.Selected())

	assert.False(t, e.MoveSelection(-1, 0))
	assert.True(t, e.MoveSelection(1, 0))
	assert.True(t, e.MoveSelection(0, 1))
	assert.Equal(t, 5, e.Selected())

	assert.True(t, e.SelectTile(39))
	assert.False(t, e.MoveSelection(0, 1))
	assert.False(t, e.SelectTile(40))
	assert.Equal(t, 39, e.Selected())
}

func TestPick(t *testing.T) {
	l := grid(t, [][]int{{0, 12}, {0, 0}})
	e := newEditor(t, l)

	assert.False(t, e.Pick(), "no cursor yet")
	e.Hover(1, 0)
	require.True(t, e.Pick())
	assert.Equal(t, 12, e.Selected())

	e.Hover(9, 9)
	assert.False(t, e.Pick())
	assert.Equal(t, 12, e.Selected())
}

func TestPaintAndUndo(t *testing.T) {
	l := grid(t, [][]int{{0, 0}, {0, 0}})
	e := newEditor(t, l)
	e.SelectTile(7)

	assert.False(t, e.Paint(true), "no cursor yet")

	e.Hover(1, 0)
	require.True(t, e.Paint(true))
	e.Hover(1, 1)
	require.True(t, e.Paint(false))
	assert.Equal(t, [][]int{{0, 7}, {0, 7}}, l.Rows())

	require.True(t, e.Undo())
	assert.Equal(t, [][]int{{0, 0}, {0, 0}}, l.Rows())
	assert.False(t, e.Undo())

	e.Hover(5, 5)
	assert.False(t, e.Paint(true))

	e.Leave()
	_, hovering := e.Cursor()
	assert.False(t, hovering)
}

func TestFillAndClone(t *testing.T) {
	l := grid(t, [][]int{
		{0, 1, 0},
		{0, 1, 0},
	})
	e := newEditor(t, l)
	e.SelectTile(2)

	assert.False(t, e.Fill())
	e.Hover(0, 0)
	require.True(t, e.Fill())
	assert.Equal(t, [][]int{{2, 1, 0}, {2, 1, 0}}, l.Rows())

	require.True(t, e.CloneColumn(1))
	assert.Equal(t, [][]int{{2, 2, 0}, {2, 2, 0}}, l.Rows())

	e.Hover(0, 0)
	require.True(t, e.CloneRow(-1))
	assert.Equal(t, 3, l.Height())

	require.True(t, e.Undo())
	assert.Equal(t, 2, l.Height())
}

func TestScrollBy(t *testing.T) {
	e := newEditor(t)
	e.ScrollBy(-3, 16)
	assert.Equal(t, 0, e.Scroll())
	e.ScrollBy(10, 16)
	assert.Equal(t, 10, e.Scroll())
	e.ScrollBy(100, 16)
	assert.Equal(t, 48, e.Scroll())
}

func TestExportImport(t *testing.T) {
	src := grid(t, [][]int{{1, 2, 3}, {4, 5, 6}})
	dst := grid(t, [][]int{{0}})

	var buf bytes.Buffer
	require.NoError(t, newEditor(t, src).Export(&buf))

	e := newEditor(t, dst)
	require.NoError(t, e.Import(bytes.NewReader(buf.Bytes())))
	assert.Equal(t, src.Rows(), dst.Rows())

	require.True(t, e.Undo())
	assert.Equal(t, [][]int{{0}}, dst.Rows())

	assert.Error(t, e.Import(bytes.NewReader([]byte("not a png"))))
}

func TestExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.png")
	src := grid(t, [][]int{{9, 8}, {7, 6}})
	require.NoError(t, newEditor(t, src).ExportFile(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	e := newEditor(t)
	require.NoError(t, e.ImportFile(path))
	assert.Equal(t, src.Rows(), e.Level().Rows())

	assert.Error(t, e.ImportFile(filepath.Join(t.TempDir(), "missing.png")))
}

func TestImportDropped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, grid(t, [][]int{{3, 4}}).EncodePNG(&buf))

	e := newEditor(t)
	err := e.ImportDropped(fstest.MapFS{"notes.txt": {Data: []byte("hi")}})
	assert.Error(t, err)

	require.NoError(t, e.ImportDropped(fstest.MapFS{"level.png": {Data: buf.Bytes()}}))
	assert.Equal(t, [][]int{{3, 4}}, e.Level().Rows())
}
