// Package vehicle implements traffic cars and the player's car.
//
// Both share one Vehicle type. The player is a Vehicle carrying a non-nil jump
// state, and the handful of behaviors that differ branch on it.
package vehicle

import (
	"image"
	"math"

	"chosenoffset.com/ballistic/internal/core/geom"
	"chosenoffset.com/ballistic/internal/core/mask"
	"chosenoffset.com/ballistic/internal/core/sprite"
)

const (
	// MaxHealth is the health every vehicle starts with.
	MaxHealth = 16
	// MinSpeed is the lowest speed braking can reach.
	MinSpeed = 1.1
	// Width is the footprint of a car in pixels, used by the broad phase.
	Width = 16

	accelerateStep = 0.5
	brakeStep      = 0.75
	lateralStep    = 3
	bleedThreshold = 3
	bleedStep      = 0.25
)

var forward = geom.Vec{X: 0, Y: -1}

// State is the lifecycle stage of a vehicle.
type State int

const (
	Driving State = iota
	Exploding
	Wrecked
)

func (s State) String() string {
	switch s {
	case Driving:
		return "driving"
	case Exploding:
		return "exploding"
	case Wrecked:
		return "wrecked"
	default:
		return "unknown"
	}
}

// IDAllocator hands out vehicle IDs. IDs are never reused.
type IDAllocator struct {
	next int
}

// Next returns a fresh ID.
func (a *IDAllocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Params describes a vehicle to construct.
type Params struct {
	ID        int
	Name      string
	Animation *sprite.Animation
	Explosion *sprite.Animation
	Position  geom.Vec
	Weight    int
	Speed     float64
	MaxSpeed  float64
	Frame     int
}

// Vehicle is a car on the road.
type Vehicle struct {
	id       int
	name     string
	pos      geom.Vec
	dir      geom.Vec
	speed    float64
	maxSpeed float64
	weight   int
	health   int
	frame    int
	scale    float64
	state    State

	anim      sprite.Cursor
	explosion sprite.Cursor

	player *playerState
}

// New creates a traffic vehicle. It panics when either animation has no frames.
func New(p Params) *Vehicle {
	if p.Animation == nil || p.Animation.Len() == 0 {
		panic("vehicle: animation has no frames")
	}
	if p.Explosion == nil || p.Explosion.Len() == 0 {
		panic("vehicle: explosion has no frames")
	}
	return &Vehicle{
		id:        p.ID,
		name:      p.Name,
		pos:       p.Position,
		dir:       forward,
		speed:     p.Speed,
		maxSpeed:  p.MaxSpeed,
		weight:    p.Weight,
		health:    MaxHealth,
		frame:     p.Frame,
		scale:     1,
		state:     Driving,
		anim:      sprite.NewCursor(p.Animation),
		explosion: sprite.NewCursor(p.Explosion),
	}
}

func (v *Vehicle) ID() int {
	return v.id
}

func (v *Vehicle) Name() string {
	return v.name
}

func (v *Vehicle) Position() geom.Vec {
	return v.pos
}

func (v *Vehicle) Heading() geom.Vec {
	return v.dir
}

func (v *Vehicle) Speed() float64 {
	return v.speed
}

func (v *Vehicle) MaxSpeed() float64 {
	return v.maxSpeed
}

func (v *Vehicle) Weight() int {
	return v.weight
}

func (v *Vehicle) Health() int {
	return v.health
}

func (v *Vehicle) Frame() int {
	return v.frame
}

func (v *Vehicle) Scale() float64 {
	return v.scale
}

func (v *Vehicle) State() State {
	return v.state
}

func (v *Vehicle) IsPlayer() bool {
	return v.player != nil
}

func (v *Vehicle) Image() image.Image {
	return v.anim.Image()
}

func (v *Vehicle) ExplosionImage() image.Image {
	return v.explosion.Image()
}

// ExplosionComplete returns the explosion playback progress in [0,1].
func (v *Vehicle) ExplosionComplete() float64 {
	return v.explosion.Complete()
}

// Value is the score awarded for destroying this vehicle.
func (v *Vehicle) Value() int {
	return v.weight * 100
}

// Crashes reports whether the vehicle is exploding.
func (v *Vehicle) Crashes() bool {
	return v.state == Exploding
}

// MoveTo places the vehicle at pos.
func (v *Vehicle) MoveTo(pos geom.Vec) {
	v.pos = pos
}

// Nudge moves the vehicle by (dx, dy).
func (v *Vehicle) Nudge(dx, dy float64) {
	v.pos.X += dx
	v.pos.Y += dy
}

// Mask returns the obstacle mask of the current frame. Exploding, wrecked and
// airborne vehicles have none.
func (v *Vehicle) Mask() (mask.Mask, bool) {
	if v.state != Driving || v.Airborne() {
		return nil, false
	}
	return v.anim.Mask(), true
}

// Explode starts the explosion. Calling it again has no effect.
func (v *Vehicle) Explode() {
	if v.state == Driving {
		v.state = Exploding
	}
}

// Collide pushes both vehicles away from the midpoint between them. Each push is
// scaled by the pusher's speed and weight. Both lose one health point.
func (v *Vehicle) Collide(other *Vehicle) {
	middle := math.Min(other.pos.X, v.pos.X) + 0.5*math.Abs(other.pos.X-v.pos.X)
	factor := 2 * sign(v.pos.X-middle)
	forceMe := math.Max(0.5, v.speed/4)
	forceOther := math.Max(0.5, other.speed/4)

	push := geom.Vec{X: -factor * forceMe, Y: -0.15 - forceMe}
	other.dir.Add(push.Times(float64(v.weight) / 4))
	push = geom.Vec{X: factor * forceOther, Y: -0.15 - forceOther}
	v.dir.Add(push.Times(float64(other.weight) / 4))

	v.hit()
	other.hit()
}

func (v *Vehicle) hit() {
	v.health--
	if v.health == 0 {
		v.Explode()
	}
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// Left moves the vehicle one lateral step left.
func (v *Vehicle) Left() {
	v.pos.X -= v.lateral()
}

// Right moves the vehicle one lateral step right.
func (v *Vehicle) Right() {
	v.pos.X += v.lateral()
}

func (v *Vehicle) lateral() float64 {
	if v.player == nil {
		return lateralStep
	}
	return v.player.lateral(v.speed)
}

// Accelerate raises the speed by the default step, up to the maximum.
func (v *Vehicle) Accelerate() {
	step := accelerateStep
	if v.player != nil {
		step = v.player.accelerateStep()
	}
	v.AccelerateBy(step)
}

// AccelerateBy raises the speed by step, up to the maximum.
func (v *Vehicle) AccelerateBy(step float64) {
	if v.speed < v.maxSpeed {
		v.speed = math.Min(v.speed+step, v.maxSpeed)
	}
}

// Brake lowers the speed by the default step, down to MinSpeed.
func (v *Vehicle) Brake() {
	step := brakeStep
	if v.player != nil {
		step = v.player.brakeStep()
	}
	v.BrakeBy(step)
}

// BrakeBy lowers the speed by step, down to MinSpeed.
func (v *Vehicle) BrakeBy(step float64) {
	v.speed = math.Max(v.speed-step, MinSpeed)
}

// Stop parks the vehicle.
func (v *Vehicle) Stop() {
	v.speed = 0
}

// Normalize draws the vehicle at the reduced scale of the player sprite.
func (v *Vehicle) Normalize() {
	v.scale = playerScale
}

// Steer wanders left and right in a pattern derived from the ID and frame counter.
func (v *Vehicle) Steer() {
	c := v.id + v.frame
	if c%64 > 31 {
		if math.Sin(float64(c)*math.Pi/float64(32+v.id%128)) < 0 {
			v.Left()
		} else {
			v.Right()
		}
	}
	if c%128 > 96 {
		v.Accelerate()
	}
}

// Step advances physics and animation by one frame. It returns true exactly once,
// on the frame the explosion finishes.
func (v *Vehicle) Step() bool {
	v.frame++
	v.dir.Add(forward).Scale(0.5)
	v.pos.Add(v.dir.Times(v.speed))
	v.anim.Step()

	done := false
	switch v.state {
	case Exploding:
		if v.explosion.Step() {
			v.state = Wrecked
			done = true
		} else if v.health > 0 {
			v.health /= 2
		}
	case Driving:
		if v.speed > bleedThreshold && !v.Airborne() {
			v.speed -= bleedStep
		}
	}

	if v.player != nil {
		v.player.step(v)
	}
	return done
}
