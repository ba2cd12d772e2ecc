// Package editor holds the state of the level editor: the level being edited, the
// selected tile, the cursor and the scroll position. Input mapping and drawing
// live with the screens.
package editor

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"chosenoffset.com/ballistic/internal/core/geom"
	"chosenoffset.com/ballistic/internal/world/level"
)

const (
	// PaletteColumns is the number of tiles per palette row.
	PaletteColumns = 4

	// NewLevel is the level index of an unsaved blank level.
	NewLevel = -1

	blankWidth  = 16
	blankHeight = 64
)

// Palette is the set of paintable tiles.
type Palette interface {
	Len() int
}

// Editor edits one level at a time out of the loaded set.
type Editor struct {
	log     zerolog.Logger
	catalog level.TileCatalog
	palette Palette

	levels []*level.Level
	index  int
	level  *level.Level

	selected int
	cursor   geom.Coord
	hovering bool
	scroll   int
}

// New opens the editor on levels[index]. An index of NewLevel starts a blank level.
func New(log zerolog.Logger, catalog level.TileCatalog, palette Palette, levels []*level.Level, index int) (*Editor, error) {
	if palette.Len() == 0 {
		return nil, fmt.Errorf("editor requires a non-empty tile palette")
	}
	e := &Editor{
		log:     log,
		catalog: catalog,
		palette: palette,
		levels:  levels,
	}
	if err := e.SelectLevel(index); err != nil {
		return nil, err
	}
	return e, nil
}

// Level returns the level being edited.
func (e *Editor) Level() *level.Level {
	return e.level
}

// LevelIndex returns the index of the level being edited, or NewLevel.
func (e *Editor) LevelIndex() int {
	return e.index
}

// Levels returns the number of loaded levels.
func (e *Editor) Levels() int {
	return len(e.levels)
}

// SelectLevel switches to levels[index], or to a fresh blank level for NewLevel.
func (e *Editor) SelectLevel(index int) error {
	if index == NewLevel {
		l, err := level.Blank(e.catalog, blankWidth, blankHeight, 0)
		if err != nil {
			return fmt.Errorf("failed to create blank level: %w", err)
		}
		e.level = l
	} else {
		if index < 0 || index >= len(e.levels) {
			return fmt.Errorf("level %d out of range [0,%d)", index, len(e.levels))
		}
		e.level = e.levels[index]
	}
	e.index = index
	e.scroll = 0
	e.log.Debug().Int("level", index).Msg("Editing level")
	return nil
}

// CycleLevel moves delta entries through the blank level and the loaded levels, wrapping.
func (e *Editor) CycleLevel(delta int) error {
	n := len(e.levels) + 1
	slot := ((e.index+1+delta)%n + n) % n
	return e.SelectLevel(slot - 1)
}

// Selected returns the tile painted by Paint and Fill.
func (e *Editor) Selected() int {
	return e.selected
}

// SelectTile picks a palette tile. Out of range picks are ignored.
func (e *Editor) SelectTile(tile int) bool {
	if tile < 0 || tile >= e.palette.Len() {
		return false
	}
	e.selected = tile
	return true
}

// MoveSelection moves through the palette grid by dx columns and dy rows.
func (e *Editor) MoveSelection(dx, dy int) bool {
	return e.SelectTile(e.selected + dx + dy*PaletteColumns)
}

// Hover places the cursor on tile (x, y) of the level.
func (e *Editor) Hover(x, y int) {
	e.cursor = geom.Coord{X: x, Y: y}
	e.hovering = true
}

// Leave removes the cursor from the level.
func (e *Editor) Leave() {
	e.hovering = false
}

// Cursor returns the hovered tile and whether the cursor is over the level.
func (e *Editor) Cursor() (geom.Coord, bool) {
	return e.cursor, e.hovering
}

// Paint writes the selected tile under the cursor. A new stroke saves an undo point;
// continuing a drag does not.
func (e *Editor) Paint(newStroke bool) bool {
	if !e.hovering {
		return false
	}
	if e.level.TileAt(e.cursor.X, e.cursor.Y, -1) == -1 {
		return false
	}
	if newStroke {
		e.level.Snapshot()
	}
	e.level.SetTile(e.cursor.X, e.cursor.Y, e.selected)
	return true
}

// Pick selects the tile under the cursor.
func (e *Editor) Pick() bool {
	if !e.hovering {
		return false
	}
	return e.SelectTile(e.level.TileAt(e.cursor.X, e.cursor.Y, -1))
}

// Fill flood fills the region under the cursor with the selected tile.
func (e *Editor) Fill() bool {
	if !e.hovering {
		return false
	}
	return e.level.Fill(e.cursor.X, e.cursor.Y, e.selected)
}

// CloneRow copies the hovered row one step up (dy < 0) or down (dy > 0).
func (e *Editor) CloneRow(dy int) bool {
	if !e.hovering {
		return false
	}
	return e.level.CloneRow(e.cursor.Y, e.cursor.Y+dy)
}

// CloneColumn copies the hovered column one step left (dx < 0) or right (dx > 0).
func (e *Editor) CloneColumn(dx int) bool {
	if !e.hovering {
		return false
	}
	return e.level.CloneColumn(e.cursor.X, e.cursor.X+dx)
}

// Undo reverts the last edit.
func (e *Editor) Undo() bool {
	return e.level.RestoreSnapshot()
}

// Scroll returns the first visible level row.
func (e *Editor) Scroll() int {
	return e.scroll
}

// ScrollBy moves the view by rows, keeping visible rows inside the level.
func (e *Editor) ScrollBy(rows, visible int) {
	maxScroll := max(e.level.Height()-visible, 0)
	e.scroll = min(max(e.scroll+rows, 0), maxScroll)
}

// Export writes the level as a PNG raster.
func (e *Editor) Export(w io.Writer) error {
	return e.level.EncodePNG(w)
}

// ExportFile writes the level to path.
func (e *Editor) ExportFile(path string) error {
	var buf bytes.Buffer
	if err := e.Export(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}
	e.log.Info().
		Str("path", path).
		Int("width", e.level.Width()).
		Int("height", e.level.Height()).
		Msg("Exported level")
	return nil
}

// Import replaces the grid with a PNG raster. The previous grid can be restored with Undo.
func (e *Editor) Import(r io.Reader) error {
	decoded, err := level.DecodePNG(e.catalog, r)
	if err != nil {
		return err
	}
	if err := e.level.Replace(decoded.Rows()); err != nil {
		return fmt.Errorf("failed to import level: %w", err)
	}
	e.scroll = 0
	return nil
}

// ImportFile imports the PNG raster at path.
func (e *Editor) ImportFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open level file: %w", err)
	}
	defer f.Close()
	if err := e.Import(f); err != nil {
		return err
	}
	e.log.Info().Str("path", path).Msg("Imported level")
	return nil
}

// ImportDropped imports the first PNG found in files dropped on the window.
func (e *Editor) ImportDropped(files fs.FS) error {
	matches, err := fs.Glob(files, "*.png")
	if err != nil {
		return fmt.Errorf("failed to list dropped files: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no png among dropped files")
	}
	f, err := files.Open(matches[0])
	if err != nil {
		return fmt.Errorf("failed to open dropped file: %w", err)
	}
	defer f.Close()
	if err := e.Import(f); err != nil {
		return err
	}
	e.log.Info().Str("file", matches[0]).Msg("Imported dropped level")
	return nil
}
