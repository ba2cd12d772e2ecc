package sim

import (
	"math"

	"chosenoffset.com/ballistic/internal/core/geom"
)

// Camera is the top left corner of the visible part of the level.
type Camera struct {
	pos        geom.Vec
	halfWidth  float64
	halfHeight float64
	maxX       float64
}

// NewCamera places a width x height view at (x, y) over a level levelWidth pixels wide.
func NewCamera(x, y, width, height, levelWidth float64) *Camera {
	return &Camera{
		pos:        geom.Vec{X: x, Y: y},
		halfWidth:  width / 2,
		halfHeight: height / 2,
		maxX:       levelWidth - width,
	}
}

// Position returns the camera's top left corner in world pixels.
func (c *Camera) Position() geom.Vec {
	return c.pos
}

// MoveTo sets the camera position without clamping.
func (c *Camera) MoveTo(pos geom.Vec) {
	c.pos = pos
}

// Follow centers the view on target. X stays inside the level and Y never
// goes above the top row.
func (c *Camera) Follow(target geom.Vec) {
	c.pos.X = math.Min(math.Max(target.X-c.halfWidth, 0), c.maxX)
	c.pos.Y = math.Max(target.Y-c.halfHeight, 0)
}
