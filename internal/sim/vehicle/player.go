package vehicle

import (
	"math"
)

const (
	// MaxEnergy is the saturation point of the jump charge.
	MaxEnergy = 96

	playerScale    = 0.25
	regenInterval  = 20
	minPlayerSpeed = 1.75
)

type playerState struct {
	energy    int
	countdown int
	// duration is the length of the current jump; -1 marks the frame after landing.
	duration int
	score    int
	width    int
}

// NewPlayer creates the player's vehicle carrying score over from a previous level.
func NewPlayer(p Params, score int) *Vehicle {
	v := New(p)
	v.scale = playerScale
	v.player = &playerState{score: score, width: p.Animation.Width()}
	return v
}

func (p *playerState) lateral(speed float64) float64 {
	if speed <= minPlayerSpeed {
		return 0
	}
	if p.countdown > 0 {
		return 1
	}
	return math.Max(1.5, speed/2)
}

func (p *playerState) accelerateStep() float64 {
	if p.countdown > 0 {
		return 0.2
	}
	return accelerateStep
}

func (p *playerState) brakeStep() float64 {
	if p.countdown > 0 {
		return 0.35
	}
	return brakeStep
}

func (p *playerState) step(v *Vehicle) {
	if p.countdown > 0 {
		amplitude := 0.75 * float64(p.duration) / MaxEnergy
		v.scale = playerScale + amplitude*math.Sin(float64(p.countdown)*math.Pi/float64(p.duration))
		p.countdown--
		if p.countdown == 0 {
			v.scale = playerScale
			p.duration = -1
		}
	} else {
		p.duration = 0
		p.score += int(math.Floor(v.speed))
	}
	if v.health < MaxHealth && v.frame%regenInterval == 0 {
		v.health++
	}
}

// Airborne reports whether the player is mid-jump. Traffic is never airborne.
func (v *Vehicle) Airborne() bool {
	return v.player != nil && v.player.countdown > 0
}

// JustLanded reports whether the player touched down on the last step.
func (v *Vehicle) JustLanded() bool {
	return v.player != nil && v.player.duration == -1
}

// Energy returns the stored jump charge.
func (v *Vehicle) Energy() int {
	if v.player == nil {
		return 0
	}
	return v.player.energy
}

// Score returns the player's score.
func (v *Vehicle) Score() int {
	if v.player == nil {
		return 0
	}
	return v.player.score
}

// ChargeJump adds jump energy, quickly at first and slower towards MaxEnergy.
func (v *Vehicle) ChargeJump() {
	p := v.player
	if p == nil {
		return
	}
	if p.energy >= MaxEnergy {
		p.energy = MaxEnergy
		return
	}
	p.energy += max(1, (MaxEnergy-p.energy)/8)
	p.energy = min(p.energy, MaxEnergy)
}

// Jump spends the stored energy on a jump. It does nothing without energy, while
// crashing or while already airborne.
func (v *Vehicle) Jump() {
	p := v.player
	if p == nil || p.energy == 0 || v.state != Driving || p.countdown > 0 {
		return
	}
	p.countdown = p.energy
	p.duration = p.energy
	p.energy = 0
}

// Destroy blows up other and awards its value. The player is unharmed.
func (v *Vehicle) Destroy(other *Vehicle) {
	if v.player != nil {
		v.player.score += other.Value()
	}
	other.Explode()
}

// DrawOffset is how far the sprite is shifted up and left so a jump grows around
// the car's center.
func (v *Vehicle) DrawOffset() float64 {
	if !v.Airborne() {
		return 0
	}
	return math.Round(float64(v.player.width)/2*v.scale) - 8
}

// ShadowSize is the edge length of the jump shadow, zero on the ground.
func (v *Vehicle) ShadowSize() float64 {
	if !v.Airborne() {
		return 0
	}
	return math.Round(1.6 * float64(v.player.width) * (v.scale - playerScale))
}
