// Package collision finds touching vehicles and resolves their impacts.
package collision

import (
	"math"
	"sort"

	"chosenoffset.com/ballistic/internal/sim/vehicle"
)

// Candidates returns the vehicles that can collide this frame: all traffic plus the
// player unless airborne, minus anything already exploding.
func Candidates(traffic []*vehicle.Vehicle, player *vehicle.Vehicle) []*vehicle.Vehicle {
	all := make([]*vehicle.Vehicle, 0, len(traffic)+1)
	all = append(all, traffic...)
	if player != nil && !player.Airborne() {
		all = append(all, player)
	}
	out := all[:0]
	for _, v := range all {
		if v.State() == vehicle.Driving {
			out = append(out, v)
		}
	}
	return out
}

// Pairs sorts candidates by x and sweeps them for overlapping footprints. The
// result maps the lower ID of each overlapping pair to the other vehicle. A
// vehicle touching several others keeps only the last pairing found.
func Pairs(candidates []*vehicle.Vehicle) map[int]*vehicle.Vehicle {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Position().X < candidates[j].Position().X
	})

	pairs := make(map[int]*vehicle.Vehicle)
	lastRightEdge := math.Inf(-1)
	for i, c := range candidates {
		pos := c.Position()
		if i > 0 && pos.X < lastRightEdge {
			for j := i - 1; j >= 0; j-- {
				o := candidates[j]
				oPos := o.Position()
				if pos.X-oPos.X >= vehicle.Width {
					break
				}
				if math.Abs(oPos.Y-pos.Y) < vehicle.Width {
					if c.ID() < o.ID() {
						pairs[c.ID()] = o
					} else {
						pairs[o.ID()] = c
					}
				}
			}
		}
		lastRightEdge = math.Floor(pos.X) + vehicle.Width
	}
	return pairs
}

// Resolve detects and resolves this frame's collisions and returns the number of
// pairs found. A player that just landed on another car destroys it unharmed.
func Resolve(traffic []*vehicle.Vehicle, player *vehicle.Vehicle) int {
	if len(traffic) == 0 {
		return 0
	}
	candidates := Candidates(traffic, player)
	pairs := Pairs(candidates)
	if len(pairs) == 0 {
		return 0
	}

	landed := player != nil && player.JustLanded()
	for _, c := range candidates {
		other, ok := pairs[c.ID()]
		if !ok {
			continue
		}
		switch {
		case landed && other == player:
			player.Destroy(c)
		case landed && c == player:
			player.Destroy(other)
		default:
			other.Collide(c)
		}
	}
	return len(pairs)
}
