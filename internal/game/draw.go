package game

import (
	"image/color"
	"math"

	"chosenoffset.com/ballistic/internal/assets"
	"chosenoffset.com/ballistic/internal/core/geom"
	"chosenoffset.com/ballistic/internal/render"
	"chosenoffset.com/ballistic/internal/sim/vehicle"
	"chosenoffset.com/ballistic/internal/world/level"
)

var shadowColor = color.RGBA{52, 52, 52, 255}

// Scene draws levels and vehicles shared by the title, play and editor screens.
type Scene struct {
	renderer render.Renderer
	images   *render.ImageCache
	pack     *assets.Pack
}

// NewScene creates a scene drawing pack's images through r.
func NewScene(r render.Renderer, pack *assets.Pack) *Scene {
	return &Scene{
		renderer: r,
		images:   render.NewImageCache(r),
		pack:     pack,
	}
}

// Images returns the cache of uploaded images.
func (s *Scene) Images() *render.ImageCache {
	return s.images
}

// DrawLevel fills the screen with the part of l seen by a camera at cam. The level
// repeats in both directions.
func (s *Scene) DrawLevel(screen render.Image, l *level.Level, cam geom.Vec) {
	w, h := screen.Size()
	offsetX := -math.Mod(cam.X, level.TileSize)
	offsetY := -math.Mod(cam.Y, level.TileSize)
	sx := int(math.Floor(cam.X / level.TileSize))
	sy := int(math.Floor(cam.Y / level.TileSize))
	cols := 1 + int(math.Ceil(float64(w)/level.TileSize))
	rows := 1 + int(math.Ceil(float64(h)/level.TileSize))

	geoM := render.NewGeoM()
	for y := 0; y < rows; y++ {
		ty := wrap(sy+y, l.Height())
		for x := 0; x < cols; x++ {
			tx := wrap(sx+x, l.Width())
			img := s.images.Get(s.pack.TileImage(l.TileAt(tx, ty)))
			if img == nil {
				continue
			}
			geoM.Reset()
			geoM.Translate(float64(x*level.TileSize)+offsetX, float64(y*level.TileSize)+offsetY)
			screen.DrawImage(img, &render.DrawImageOptions{GeoM: geoM})
		}
	}
}

// DrawTiles draws l with every tile scaled to size pixels, starting at row first.
func (s *Scene) DrawTiles(screen render.Image, l *level.Level, originX, originY float64, size float64, first, rows int) {
	scale := size / level.TileSize
	geoM := render.NewGeoM()
	for y := first; y < min(first+rows, l.Height()); y++ {
		for x := 0; x < l.Width(); x++ {
			img := s.images.Get(s.pack.TileImage(l.TileAt(x, y)))
			if img == nil {
				continue
			}
			geoM.Reset()
			geoM.Scale(scale, scale)
			geoM.Translate(originX+float64(x)*size, originY+float64(y-first)*size)
			screen.DrawImage(img, &render.DrawImageOptions{GeoM: geoM, Filter: render.FilterLinear})
		}
	}
}

// DrawVehicle draws v relative to a camera at cam: its jump shadow, the sprite
// fading while it burns, and the explosion on top.
func (s *Scene) DrawVehicle(screen render.Image, v *vehicle.Vehicle, cam geom.Vec) {
	pos := v.Position()
	o := v.DrawOffset()
	x := math.Round(pos.X - cam.X - o)
	y := math.Round(pos.Y - cam.Y - o)

	if size := v.ShadowSize(); size > 0 {
		alpha := math.Max(0, math.Min(1, 1.1-v.Scale()))
		shadow := shadowColor
		shadow.A = uint8(alpha * 255)
		s.renderer.FillRect(screen, float32(x+2+size+3), float32(y+2), float32(size-6), float32(size), premultiply(shadow))
	}

	geoM := render.NewGeoM()
	opts := &render.DrawImageOptions{GeoM: geoM, Filter: render.FilterLinear}
	exploding := v.State() != vehicle.Driving
	if exploding {
		opts.Transparency = float32(math.Max(0, v.ExplosionComplete()-0.25))
	}
	if img := s.images.Get(v.Image()); img != nil {
		geoM.Scale(v.Scale(), v.Scale())
		geoM.Translate(x, y)
		screen.DrawImage(img, opts)
	}
	if exploding {
		if img := s.images.Get(v.ExplosionImage()); img != nil {
			geoM.Reset()
			geoM.Scale(2, 2)
			geoM.Translate(x-6, y-6)
			screen.DrawImage(img, &render.DrawImageOptions{GeoM: geoM})
		}
	}
}

// premultiply converts a straight alpha color for the vector backend.
func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 255),
		G: uint8(uint16(c.G) * a / 255),
		B: uint8(uint16(c.B) * a / 255),
		A: c.A,
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
