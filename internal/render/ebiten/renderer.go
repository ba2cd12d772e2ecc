// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/ballistic/internal/render"
)

func init() {
	render.NewGeoM = func() render.GeoM {
		return &GeoM{}
	}
}

// Renderer draws shapes with the vector package and text with the bitmap font.
type Renderer struct {
	face *text.GoXFace
}

// NewRenderer creates a new Ebiten-based renderer.
func NewRenderer() render.Renderer {
	return &Renderer{face: text.NewGoXFace(bitmapfont.Face)}
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{img: ebiten.NewImage(width, height)}
}

// NewImageFromImage uploads a decoded image to the GPU.
func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	return &Image{img: ebiten.NewImageFromImage(src)}
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(unwrap(dst), x, y, width, height, clr, false)
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(unwrap(dst), x, y, width, height, strokeWidth, clr, false)
}

func (r *Renderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	op := &text.DrawOptions{}
	op.LineSpacing = r.lineHeight()
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(unwrap(dst), str, r.face, op)
}

func (r *Renderer) MeasureText(str string, scale float64) (width, height int) {
	w, h := text.Measure(str, r.face, r.lineHeight())
	return int(w * scale), int(h * scale)
}

func (r *Renderer) lineHeight() float64 {
	m := r.face.Metrics()
	return m.HLineGap + m.HAscent + m.HDescent
}

// Image wraps an ebiten.Image.
type Image struct {
	img *ebiten.Image
}

func unwrap(img render.Image) *ebiten.Image {
	return img.(*Image).img
}

func (i *Image) Bounds() image.Rectangle {
	return i.img.Bounds()
}

func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

func (i *Image) Fill(clr color.Color) {
	i.img.Fill(clr)
}

func (i *Image) Dispose() {
	if i.img != nil {
		i.img.Deallocate()
	}
}

// DrawImage draws src with its transform, fade and sampling filter.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	op := &ebiten.DrawImageOptions{}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			op.GeoM = g.m
		}
		if opts.Transparency > 0 {
			op.ColorScale.ScaleAlpha(max(0, 1-opts.Transparency))
		}
		if opts.Filter == render.FilterLinear {
			op.Filter = ebiten.FilterLinear
		}
	}
	i.img.DrawImage(unwrap(src), op)
}

// GeoM wraps ebiten's affine matrix.
type GeoM struct {
	m ebiten.GeoM
}

func (g *GeoM) Translate(tx, ty float64) {
	g.m.Translate(tx, ty)
}

func (g *GeoM) Scale(sx, sy float64) {
	g.m.Scale(sx, sy)
}

func (g *GeoM) Reset() {
	g.m.Reset()
}
