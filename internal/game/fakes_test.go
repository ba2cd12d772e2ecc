package game

import (
	"image"
	"image/color"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chosenoffset.com/ballistic/internal/assets"
	"chosenoffset.com/ballistic/internal/render"
	"chosenoffset.com/ballistic/internal/world/level"
)

func init() {
	render.NewGeoM = func() render.GeoM { return &fakeGeoM{} }
}

type fakeGeoM struct {
	tx, ty, sx, sy float64
}

func (g *fakeGeoM) Translate(tx, ty float64) { g.tx += tx; g.ty += ty }
func (g *fakeGeoM) Scale(sx, sy float64)     { g.sx, g.sy = sx, sy }
func (g *fakeGeoM) Reset()                   { *g = fakeGeoM{} }

type fakeImage struct {
	bounds image.Rectangle
	draws  int
}

func (f *fakeImage) Bounds() image.Rectangle { return f.bounds }
func (f *fakeImage) Size() (int, int)        { return f.bounds.Dx(), f.bounds.Dy() }
func (f *fakeImage) Fill(color.Color)        {}
func (f *fakeImage) Dispose()                {}

func (f *fakeImage) DrawImage(render.Image, *render.DrawImageOptions) {
	f.draws++
}

type fakeRenderer struct {
	texts []string
}

func (r *fakeRenderer) NewImage(w, h int) render.Image {
	return &fakeImage{bounds: image.Rect(0, 0, w, h)}
}

func (r *fakeRenderer) NewImageFromImage(src image.Image) render.Image {
	return &fakeImage{bounds: src.Bounds()}
}

func (r *fakeRenderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {}

func (r *fakeRenderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
}

func (r *fakeRenderer) DrawText(_ render.Image, text string, _, _ int, _ color.Color, _ float64) {
	r.texts = append(r.texts, text)
}

func (r *fakeRenderer) MeasureText(text string, scale float64) (int, int) {
	return int(float64(len(text)*6) * scale), int(16 * scale)
}

func (r *fakeRenderer) drew(text string) bool {
	for _, t := range r.texts {
		if t == text {
			return true
		}
	}
	return false
}

// fakeInput holds keys down until released. Just pressed and just released keys
// last for one tick.
type fakeInput struct {
	held         map[render.Key]bool
	justPressed  map[render.Key]bool
	justReleased map[render.Key]bool
	x, y         int
	mouseDown    bool
	mouseClicked bool
	rightClicked bool
	dropped      fs.FS
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		held:         make(map[render.Key]bool),
		justPressed:  make(map[render.Key]bool),
		justReleased: make(map[render.Key]bool),
	}
}

func (f *fakeInput) press(keys ...render.Key) {
	for _, k := range keys {
		f.held[k] = true
		f.justPressed[k] = true
	}
}

func (f *fakeInput) release(keys ...render.Key) {
	for _, k := range keys {
		delete(f.held, k)
		f.justReleased[k] = true
	}
}

// tick ends the current frame.
func (f *fakeInput) tick() {
	clear(f.justPressed)
	clear(f.justReleased)
	f.mouseClicked = false
	f.rightClicked = false
	f.dropped = nil
}

func (f *fakeInput) IsKeyPressed(k render.Key) bool      { return f.held[k] }
func (f *fakeInput) IsKeyJustPressed(k render.Key) bool  { return f.justPressed[k] }
func (f *fakeInput) IsKeyJustReleased(k render.Key) bool { return f.justReleased[k] }
func (f *fakeInput) AnyKeyPressed() bool                 { return len(f.held) > 0 }
func (f *fakeInput) GetCursorPosition() (int, int)       { return f.x, f.y }

func (f *fakeInput) IsMouseButtonPressed(b render.MouseButton) bool {
	return b == render.MouseButtonLeft && f.mouseDown
}

func (f *fakeInput) IsMouseButtonJustPressed(b render.MouseButton) bool {
	switch b {
	case render.MouseButtonLeft:
		return f.mouseClicked
	case render.MouseButtonRight:
		return f.rightClicked
	}
	return false
}

func (f *fakeInput) DroppedFiles() fs.FS { return f.dropped }

// fakeTime is a manually advanced clock.
type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time { return f.now }

func (f *fakeTime) advance(d time.Duration) { f.now = f.now.Add(d) }

// testPack loads the embedded assets and swaps the levels for open roads so
// play is not cut short by terrain.
func testPack(t *testing.T) *assets.Pack {
	t.Helper()
	pack, err := assets.Load(assets.Embedded())
	require.NoError(t, err)

	roads := make([]*level.Level, 2)
	for i := range roads {
		roads[i], err = level.Blank(pack.Tiles, 16, 40, 0)
		require.NoError(t, err)
	}
	pack.Levels = roads
	return pack
}
