// Package geom holds the small value types shared by the simulation.
package geom

import "math"

// Vec is a 2D vector in world pixels.
type Vec struct {
	X, Y float64
}

// Coord represents a tile coordinate
type Coord struct {
	X, Y int
}

// Add adds o to v in place and returns v for chaining.
func (v *Vec) Add(o Vec) *Vec {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Scale multiplies v by f in place and returns v for chaining.
func (v *Vec) Scale(f float64) *Vec {
	v.X *= f
	v.Y *= f
	return v
}

// Normalize scales v to unit length. The zero vector is left unchanged.
func (v *Vec) Normalize() *Vec {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Plus returns v+o without modifying v.
func (v Vec) Plus(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Times returns v scaled by f without modifying v.
func (v Vec) Times(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

// Len returns the length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}
