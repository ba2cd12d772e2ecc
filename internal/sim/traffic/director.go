// Package traffic steers non-player vehicles towards the cheapest lane ahead.
package traffic

import (
	"math"

	"chosenoffset.com/ballistic/internal/core/geom"
	"chosenoffset.com/ballistic/internal/world/level"
)

const (
	// offGrid is the cost of a lane outside the level.
	offGrid = level.TileSize * level.TileSize
	// sentinel is larger than any real lane cost.
	sentinel = 65336
)

// Lane is a steering decision.
type Lane int

const (
	Left Lane = iota
	Straight
	Right
)

func (l Lane) String() string {
	switch l {
	case Left:
		return "left"
	case Straight:
		return "straight"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Grid is the terrain the director reads lane costs from.
type Grid interface {
	Width() int
	Cost(x, y int) int
}

// Driver is a vehicle the director can steer.
type Driver interface {
	ID() int
	Position() geom.Vec
	Left()
	Right()
	Accelerate()
	Steer()
}

// Director picks lanes for traffic.
type Director struct {
	grid Grid
}

// NewDirector creates a director reading costs from grid.
func NewDirector(grid Grid) *Director {
	return &Director{grid: grid}
}

// Costs returns the left, center and right costs of the row ahead of pos, and
// false when that row lies above the grid.
func (d *Director) Costs(pos geom.Vec) ([3]int, bool) {
	var costs [3]int
	row := int(math.Floor(pos.Y/level.TileSize)) - 1
	if row < 0 {
		return costs, false
	}
	col := int(math.Floor(pos.X / level.TileSize))
	for i := range costs {
		x := col + i - 1
		if x < 0 || x >= d.grid.Width() {
			costs[i] = offGrid
			continue
		}
		costs[i] = d.grid.Cost(x, row)
		if i == 1 {
			// prefer staying in lane
			costs[i]--
		}
	}
	return costs, true
}

// Choose picks the cheapest lane. Ties go to the leftmost lane. When the center is
// free road it veers towards the more obstructed side.
func Choose(costs [3]int) Lane {
	lane := Straight
	best := sentinel
	for i, c := range costs {
		if c < best {
			lane = Lane(i)
			best = c
		}
	}
	if lane == Straight && costs[Straight] < 0 {
		if costs[Right] > costs[Left] {
			return Right
		}
		return Left
	}
	return lane
}

// Decide returns the lane for a vehicle at pos. Above the grid it is Straight.
func (d *Director) Decide(pos geom.Vec) Lane {
	costs, ok := d.Costs(pos)
	if !ok {
		return Straight
	}
	return Choose(costs)
}

// Drive applies the lane decision to v.
func (d *Director) Drive(v Driver) Lane {
	costs, ok := d.Costs(v.Position())
	if !ok {
		v.Steer()
		return Straight
	}
	lane := Choose(costs)
	switch lane {
	case Left:
		v.Left()
	case Right:
		v.Right()
	default:
		if v.ID()%8 > 3 {
			v.Accelerate()
		}
		v.Steer()
	}
	return lane
}
