package vehicle

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"chosenoffset.com/ballistic/internal/core/geom"
	"chosenoffset.com/ballistic/internal/core/sprite"
)

// PlayerName is the vehicle type driven by the player.
const PlayerName = "player"

// Type is one row of the vehicle table.
type Type struct {
	Name        string
	Weight      int
	Probability int
	MaxSpeed    float64
}

// Factory builds vehicles from the type table and shared animations.
type Factory struct {
	types      map[string]Type
	anims      map[string]*sprite.Animation
	explosion  *sprite.Animation
	ids        *IDAllocator
	rng        *rand.Rand
	startSpeed float64

	// random traffic is drawn from these names, weighted by probability
	pool  []string
	total int
}

// NewFactory validates the table against the available animations.
func NewFactory(types []Type, anims map[string]*sprite.Animation, explosion *sprite.Animation,
	ids *IDAllocator, rng *rand.Rand, startSpeed float64) (*Factory, error) {
	if explosion == nil {
		return nil, fmt.Errorf("explosion animation is required")
	}
	f := &Factory{
		types:      make(map[string]Type, len(types)),
		anims:      anims,
		explosion:  explosion,
		ids:        ids,
		rng:        rng,
		startSpeed: startSpeed,
	}
	for _, t := range types {
		if _, ok := anims[t.Name]; !ok {
			return nil, fmt.Errorf("vehicle type %s has no animation", t.Name)
		}
		if t.Probability < 0 {
			return nil, fmt.Errorf("vehicle type %s has negative probability", t.Name)
		}
		f.types[t.Name] = t
	}
	if _, ok := f.types[PlayerName]; !ok {
		return nil, fmt.Errorf("vehicle table has no %s entry", PlayerName)
	}
	for _, name := range f.sortedNames() {
		if p := f.types[name].Probability; p > 0 {
			f.pool = append(f.pool, name)
			f.total += p
		}
	}
	if f.total == 0 {
		return nil, fmt.Errorf("vehicle table has no spawnable traffic")
	}
	return f, nil
}

func (f *Factory) sortedNames() []string {
	names := make([]string, 0, len(f.types))
	for name := range f.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Names lists every type, lightest first. Ties are broken by name.
func (f *Factory) Names() []string {
	names := f.sortedNames()
	sort.SliceStable(names, func(i, j int) bool {
		return f.types[names[i]].Weight < f.types[names[j]].Weight
	})
	return names
}

// Car builds a traffic vehicle of the named type with a random speed and frame.
func (f *Factory) Car(pos geom.Vec, name string) (*Vehicle, error) {
	t, ok := f.types[name]
	if !ok {
		return nil, fmt.Errorf("unknown vehicle type: %s", name)
	}
	return New(Params{
		ID:        f.ids.Next(),
		Name:      name,
		Animation: f.anims[name],
		Explosion: f.explosion,
		Position:  pos,
		Weight:    t.Weight,
		Speed:     1 + t.MaxSpeed*f.rng.Float64(),
		MaxSpeed:  t.MaxSpeed,
		Frame:     f.randomFrame(),
	}), nil
}

// RandomCar builds a traffic vehicle of a type drawn by probability.
func (f *Factory) RandomCar(pos geom.Vec) *Vehicle {
	n := f.rng.IntN(f.total)
	name := f.pool[len(f.pool)-1]
	for _, candidate := range f.pool {
		n -= f.types[candidate].Probability
		if n < 0 {
			name = candidate
			break
		}
	}
	v, _ := f.Car(pos, name)
	return v
}

// Player builds the player's vehicle carrying score over.
func (f *Factory) Player(pos geom.Vec, score int) *Vehicle {
	t := f.types[PlayerName]
	return NewPlayer(Params{
		ID:        f.ids.Next(),
		Name:      PlayerName,
		Animation: f.anims[PlayerName],
		Explosion: f.explosion,
		Position:  pos,
		Weight:    t.Weight,
		Speed:     f.startSpeed,
		MaxSpeed:  t.MaxSpeed,
		Frame:     f.randomFrame(),
	}, score)
}

func (f *Factory) randomFrame() int {
	return int(math.Round(f.rng.Float64() * 100))
}
