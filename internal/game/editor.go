package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog"

	"chosenoffset.com/ballistic/internal/editor"
	"chosenoffset.com/ballistic/internal/render"
	"chosenoffset.com/ballistic/internal/world/level"
)

// Editor screen layout
const (
	paletteX    = 8
	paletteY    = 8
	paletteCell = 34

	selectedY    = 360
	selectedSize = 64

	levelViewX = 152
	levelViewY = 8
	levelCell  = 16

	sideX = 416

	helpY    = 432
	helpLine = 12
)

var (
	highlight   = color.RGBA{255, 0, 0, 255}
	cursorColor = color.RGBA{0, 0, 0, 255}
	panelColor  = color.RGBA{24, 24, 32, 255}
	textColor   = color.RGBA{220, 220, 220, 255}
)

var editorHelp = []string{
	"arrows: pick tile",
	"right click: copy tile",
	"ctrl+arrows: clone",
	"ctrl+space: fill",
	"ctrl+z: undo",
	"ctrl+s/o: save/load",
	"tab: level  enter: play",
}

// EditorAction is what the manager should do after an editor update.
type EditorAction int

const (
	EditorStay EditorAction = iota
	EditorPlay
	EditorQuit
)

// EditorScreen maps mouse and keyboard input onto the level editor and draws it.
type EditorScreen struct {
	Editor   *editor.Editor
	InputMgr render.InputManager
	Renderer render.Renderer
	Scene    *Scene

	log        zerolog.Logger
	exportPath string
	viewRows   int
	status     string

	preview      *image.NRGBA
	previewDirty bool
}

// NewEditorScreen wraps ed. Export and import use exportPath.
func NewEditorScreen(log zerolog.Logger, ed *editor.Editor, input render.InputManager, r render.Renderer,
	scene *Scene, exportPath string, screenHeight int) *EditorScreen {
	return &EditorScreen{
		Editor:       ed,
		InputMgr:     input,
		Renderer:     r,
		Scene:        scene,
		log:          log,
		exportPath:   exportPath,
		viewRows:     (screenHeight - 2*levelViewY) / levelCell,
		previewDirty: true,
	}
}

// Status returns the last message shown to the user.
func (s *EditorScreen) Status() string {
	return s.status
}

// Update handles one tick of input.
func (s *EditorScreen) Update() EditorAction {
	in := s.InputMgr
	if in.IsKeyJustPressed(render.KeyEscape) {
		return EditorQuit
	}
	if in.IsKeyJustPressed(render.KeyEnter) {
		return EditorPlay
	}

	s.updateMouse()

	if files := in.DroppedFiles(); files != nil {
		s.report(s.Editor.ImportDropped(files), "imported dropped file")
	}

	if in.IsKeyPressed(render.KeyControl) {
		s.updateCommands()
	} else {
		s.updateNavigation()
	}
	return EditorStay
}

func (s *EditorScreen) updateMouse() {
	in := s.InputMgr
	mx, my := in.GetCursorPosition()
	clicked := in.IsMouseButtonJustPressed(render.MouseButtonLeft)

	if tile, ok := paletteAt(mx, my); ok {
		s.Editor.Leave()
		if clicked {
			s.Editor.SelectTile(tile)
		}
		return
	}

	l := s.Editor.Level()
	tx := (mx - levelViewX) / levelCell
	ty := (my-levelViewY)/levelCell + s.Editor.Scroll()
	if mx < levelViewX || my < levelViewY || tx >= l.Width() || ty >= l.Height() || ty-s.Editor.Scroll() >= s.viewRows {
		s.Editor.Leave()
		return
	}
	s.Editor.Hover(tx, ty)
	if in.IsMouseButtonJustPressed(render.MouseButtonRight) {
		s.Editor.Pick()
	}
	if in.IsMouseButtonPressed(render.MouseButtonLeft) {
		s.changed(s.Editor.Paint(clicked))
	}
}

// paletteAt returns the palette tile under the pointer.
func paletteAt(mx, my int) (int, bool) {
	if mx < paletteX || my < paletteY {
		return 0, false
	}
	col := (mx - paletteX) / paletteCell
	row := (my - paletteY) / paletteCell
	if col >= editor.PaletteColumns || my >= selectedY {
		return 0, false
	}
	return row*editor.PaletteColumns + col, true
}

func (s *EditorScreen) updateCommands() {
	in := s.InputMgr
	switch {
	case in.IsKeyJustPressed(render.KeyUp):
		s.changed(s.Editor.CloneRow(-1))
	case in.IsKeyJustPressed(render.KeyDown):
		s.changed(s.Editor.CloneRow(1))
	case in.IsKeyJustPressed(render.KeyLeft):
		s.changed(s.Editor.CloneColumn(-1))
	case in.IsKeyJustPressed(render.KeyRight):
		s.changed(s.Editor.CloneColumn(1))
	case in.IsKeyJustPressed(render.KeySpace):
		s.changed(s.Editor.Fill())
	case in.IsKeyJustPressed(render.KeyZ):
		s.changed(s.Editor.Undo())
	case in.IsKeyJustPressed(render.KeyS):
		s.report(s.Editor.ExportFile(s.exportPath), "saved "+s.exportPath)
	case in.IsKeyJustPressed(render.KeyO):
		s.report(s.Editor.ImportFile(s.exportPath), "loaded "+s.exportPath)
	}
}

func (s *EditorScreen) updateNavigation() {
	in := s.InputMgr
	switch {
	case in.IsKeyJustPressed(render.KeyUp):
		s.Editor.MoveSelection(0, -1)
	case in.IsKeyJustPressed(render.KeyDown):
		s.Editor.MoveSelection(0, 1)
	case in.IsKeyJustPressed(render.KeyLeft):
		s.Editor.MoveSelection(-1, 0)
	case in.IsKeyJustPressed(render.KeyRight):
		s.Editor.MoveSelection(1, 0)
	case in.IsKeyJustPressed(render.KeyPageUp):
		s.Editor.ScrollBy(-s.viewRows/2, s.viewRows)
	case in.IsKeyJustPressed(render.KeyPageDown):
		s.Editor.ScrollBy(s.viewRows/2, s.viewRows)
	case in.IsKeyJustPressed(render.KeyTab):
		delta := 1
		if in.IsKeyPressed(render.KeyShift) {
			delta = -1
		}
		s.report(s.Editor.CycleLevel(delta), "")
		s.previewDirty = true
	}
}

func (s *EditorScreen) changed(ok bool) {
	if ok {
		s.previewDirty = true
	}
}

func (s *EditorScreen) report(err error, done string) {
	if err != nil {
		s.status = "error, see log"
		s.log.Error().Err(err).Msg("Editor command failed")
		return
	}
	s.status = done
	s.previewDirty = true
}

// Draw renders the palette, the level being edited and its minimap.
func (s *EditorScreen) Draw(screen render.Image) {
	screen.Fill(panelColor)
	s.drawPalette(screen)
	s.drawLevel(screen)
	s.drawSide(screen)
}

func (s *EditorScreen) drawPalette(screen render.Image) {
	tiles := s.Scene.pack.Tiles
	geoM := render.NewGeoM()
	for i := 0; i < tiles.Len(); i++ {
		x := paletteX + (i%editor.PaletteColumns)*paletteCell
		y := paletteY + (i/editor.PaletteColumns)*paletteCell
		if img := s.Scene.Images().Get(tiles.Image(i)); img != nil {
			geoM.Reset()
			geoM.Translate(float64(x), float64(y))
			screen.DrawImage(img, &render.DrawImageOptions{GeoM: geoM})
		}
		if i == s.Editor.Selected() {
			s.Renderer.StrokeRect(screen, float32(x), float32(y), level.TileSize, level.TileSize, 1, highlight)
		}
	}

	if img := s.Scene.Images().Get(tiles.Image(s.Editor.Selected())); img != nil {
		scale := float64(selectedSize) / level.TileSize
		geoM.Reset()
		geoM.Scale(scale, scale)
		geoM.Translate(paletteX, selectedY)
		screen.DrawImage(img, &render.DrawImageOptions{GeoM: geoM})
	}

	for i, line := range editorHelp {
		s.Renderer.DrawText(screen, line, paletteX, helpY+i*helpLine, textColor, 1)
	}
}

func (s *EditorScreen) drawLevel(screen render.Image) {
	l := s.Editor.Level()
	first := s.Editor.Scroll()
	s.Scene.DrawTiles(screen, l, levelViewX, levelViewY, levelCell, first, s.viewRows)

	cursor, ok := s.Editor.Cursor()
	if !ok {
		return
	}
	x := float32(levelViewX + cursor.X*levelCell)
	y := float32(levelViewY + (cursor.Y-first)*levelCell)
	s.Renderer.StrokeRect(screen, x, y, levelCell, levelCell, 1, cursorColor)
	s.Renderer.FillRect(screen, levelViewX, y+levelCell/2, x-levelViewX, 1, cursorColor)
	s.Renderer.FillRect(screen, x+levelCell/2, levelViewY, 1, y-levelViewY, cursorColor)
}

func (s *EditorScreen) drawSide(screen render.Image) {
	name := "level new"
	if i := s.Editor.LevelIndex(); i != editor.NewLevel {
		name = fmt.Sprintf("level %d/%d", i+1, s.Editor.Levels())
	}
	s.Renderer.DrawText(screen, name, sideX, levelViewY, textColor, 1)
	if s.status != "" {
		s.Renderer.DrawText(screen, s.status, sideX, levelViewY+helpLine, textColor, 1)
	}

	images := s.Scene.Images()
	if s.previewDirty || s.preview == nil {
		if s.preview != nil {
			images.Forget(s.preview)
		}
		s.preview = s.Editor.Level().Preview()
		s.previewDirty = false
	}
	if img := images.Get(s.preview); img != nil {
		geoM := render.NewGeoM()
		geoM.Scale(2, 2)
		geoM.Translate(sideX, levelViewY+3*helpLine)
		screen.DrawImage(img, &render.DrawImageOptions{GeoM: geoM})
	}
}
