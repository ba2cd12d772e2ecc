// Package level holds the wrapping tile grid that vehicles drive over.
package level

import (
	"errors"
	"math"

	"chosenoffset.com/ballistic/internal/core/geom"
	"chosenoffset.com/ballistic/internal/core/mask"
)

// TileSize is the edge length of a square tile in pixels.
const TileSize = 32

var (
	// ErrEmptyGrid is returned for a grid without rows or columns.
	ErrEmptyGrid = errors.New("tile grid is empty")
	// ErrRaggedGrid is returned when rows differ in length.
	ErrRaggedGrid = errors.New("tile grid rows differ in length")
)

// TileCatalog supplies the obstacle mask and lane cost of each tile type.
type TileCatalog interface {
	Mask(tile int) mask.Mask
	Cost(tile int) int
}

// Maskable is anything with a position and an optional obstacle mask.
type Maskable interface {
	Position() geom.Vec
	Mask() (mask.Mask, bool)
}

// Level is a rectangular grid of tile types with a single-slot undo buffer.
type Level struct {
	catalog TileCatalog
	grid    [][]int
	backup  [][]int
}

// New creates a level from a copy of rows.
func New(catalog TileCatalog, rows [][]int) (*Level, error) {
	if err := validate(rows); err != nil {
		return nil, err
	}
	return &Level{catalog: catalog, grid: copyGrid(rows)}, nil
}

// MustNew is like New but panics on an invalid grid.
func MustNew(catalog TileCatalog, rows [][]int) *Level {
	l, err := New(catalog, rows)
	if err != nil {
		panic(err)
	}
	return l
}

// Blank creates a width x height level filled with tile.
func Blank(catalog TileCatalog, width, height, tile int) (*Level, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	rows := make([][]int, height)
	for y := range rows {
		rows[y] = make([]int, width)
		for x := range rows[y] {
			rows[y][x] = tile
		}
	}
	return &Level{catalog: catalog, grid: rows}, nil
}

func validate(rows [][]int) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ErrEmptyGrid
	}
	for _, row := range rows[1:] {
		if len(row) != len(rows[0]) {
			return ErrRaggedGrid
		}
	}
	return nil
}

func copyGrid(rows [][]int) [][]int {
	out := make([][]int, len(rows))
	for y, row := range rows {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// Catalog returns the tile catalog the level resolves masks against.
func (l *Level) Catalog() TileCatalog {
	return l.catalog
}

// Width returns the number of columns.
func (l *Level) Width() int {
	return len(l.grid[0])
}

// Height returns the number of rows.
func (l *Level) Height() int {
	return len(l.grid)
}

// Rows returns a deep copy of the grid.
func (l *Level) Rows() [][]int {
	return copyGrid(l.grid)
}

// Replace swaps in a new grid, keeping the catalog. The undo buffer is saved first.
func (l *Level) Replace(rows [][]int) error {
	if err := validate(rows); err != nil {
		return err
	}
	l.Snapshot()
	l.grid = copyGrid(rows)
	return nil
}

func (l *Level) inBounds(x, y int) bool {
	return y >= 0 && y < len(l.grid) && x >= 0 && x < len(l.grid[y])
}

// TileAt returns the tile at (x, y), or def (0 if omitted) when out of range.
func (l *Level) TileAt(x, y int, def ...int) int {
	if l.inBounds(x, y) {
		return l.grid[y][x]
	}
	if len(def) > 0 {
		return def[0]
	}
	return 0
}

// SetTile writes tile at (x, y). Out of range writes are ignored.
func (l *Level) SetTile(x, y, tile int) {
	if l.inBounds(x, y) {
		l.grid[y][x] = tile
	}
}

// Snapshot saves a copy of the grid, replacing any previous snapshot.
func (l *Level) Snapshot() {
	l.backup = copyGrid(l.grid)
}

// RestoreSnapshot reverts to the saved grid and clears it.
func (l *Level) RestoreSnapshot() bool {
	if l.backup == nil {
		return false
	}
	l.grid = l.backup
	l.backup = nil
	return true
}

// Collides reports whether any solid pixel of v's mask overlaps a solid terrain pixel.
// Only the first three rows, the middle row and the last two rows of the mask are
// sampled. The grid wraps in both directions.
func (l *Level) Collides(v Maskable) bool {
	m, ok := v.Mask()
	if !ok || m.Height() == 0 {
		return false
	}
	pos := v.Position()
	sx := int(math.Round(pos.X))
	sy := int(math.Round(pos.Y))
	if sx < 0 || sy < 0 {
		return false
	}

	h := m.Height()
	rows := []int{sy, sy + 1, sy + 2, sy + h/2, sy + h - 2, sy + h - 1}
	ex := sx + m.Width()
	for _, y := range rows {
		my := y - sy
		if my < 0 || my >= h {
			continue
		}
		ty := (y / TileSize) % l.Height()
		last := -1
		var ground mask.Mask
		for x := sx; x < ex; x++ {
			tx := (x / TileSize) % l.Width()
			if tx != last {
				ground = l.catalog.Mask(l.grid[ty][tx])
				last = tx
			}
			if ground.Solid(y%TileSize, x%TileSize) && m.Solid(my, x-sx) {
				return true
			}
		}
	}
	return false
}

// Cost returns the lane cost of the tile at (x, y). Callers handle out of range.
func (l *Level) Cost(x, y int) int {
	return l.catalog.Cost(l.TileAt(x, y))
}

// Fill replaces the 4-connected region of equal tiles containing (x, y) with tile.
// It returns false and leaves the grid untouched when the tile is already there.
func (l *Level) Fill(x, y, tile int) bool {
	old := l.TileAt(x, y)
	if old == tile {
		return false
	}
	l.Snapshot()
	stack := []geom.Coord{{X: x, Y: y}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		l.SetTile(current.X, current.Y, tile)

		neighbors := []geom.Coord{
			{X: current.X - 1, Y: current.Y},
			{X: current.X + 1, Y: current.Y},
			{X: current.X, Y: current.Y - 1},
			{X: current.X, Y: current.Y + 1},
		}
		for _, n := range neighbors {
			if l.TileAt(n.X, n.Y, -1) == old {
				stack = append(stack, n)
			}
		}
	}
	return true
}

// CloneRow copies row src to dst. A dst of -1 inserts at the top and a dst equal to
// the height appends at the bottom.
func (l *Level) CloneRow(src, dst int) bool {
	if src < 0 || src >= l.Height() {
		return false
	}
	l.Snapshot()
	row := append([]int(nil), l.grid[src]...)
	switch {
	case dst == -1:
		l.grid = append([][]int{row}, l.grid...)
	case dst == l.Height():
		l.grid = append(l.grid, row)
	case dst >= 0 && dst < l.Height():
		l.grid[dst] = row
	}
	return true
}

// CloneColumn copies column src to dst. A dst of -1 inserts at the left and a dst
// equal to the width appends at the right.
func (l *Level) CloneColumn(src, dst int) bool {
	if src < 0 || src >= l.Width() {
		return false
	}
	l.Snapshot()
	width := l.Width()
	for y, row := range l.grid {
		v := row[src]
		switch {
		case dst == -1:
			l.grid[y] = append([]int{v}, row...)
		case dst == width:
			l.grid[y] = append(row, v)
		case dst >= 0 && dst < width:
			row[dst] = v
		}
	}
	return true
}
