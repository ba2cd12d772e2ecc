package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVecInPlace(t *testing.T) {
	v := Vec{X: 0, Y: -1}
	v.Add(Vec{X: 0, Y: -1}).Scale(0.5)
	assert.Equal(t, Vec{X: 0, Y: -1}, v)

	v = Vec{X: 3, Y: 4}
	v.Normalize()
	assert.InDelta(t, 0.6, v.X, 1e-9)
	assert.InDelta(t, 0.8, v.Y, 1e-9)
	assert.InDelta(t, 1.0, v.Len(), 1e-9)
}

func TestVecNormalizeZero(t *testing.T) {
	v := Vec{}
	v.Normalize()
	assert.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y))
	assert.Equal(t, Vec{}, v)
}

func TestVecValueHelpersDoNotAlias(t *testing.T) {
	v := Vec{X: 1, Y: 2}
	w := v.Plus(Vec{X: 1, Y: 1}).Times(2)
	assert.Equal(t, Vec{X: 1, Y: 2}, v)
	assert.Equal(t, Vec{X: 4, Y: 6}, w)
}
