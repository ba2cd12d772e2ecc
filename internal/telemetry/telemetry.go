// Package telemetry exposes the game's OpenTelemetry counters.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "chosenoffset.com/ballistic/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Counters are the per-frame simulation counters. They are no-ops unless a meter
// provider is installed globally.
type Counters struct {
	frames     metric.Int64Counter
	collisions metric.Int64Counter
	explosions metric.Int64Counter
	spawns     metric.Int64Counter
}

// NewCounters registers the counters with the global meter provider
func NewCounters() (*Counters, error) {
	m := meter()
	c := &Counters{}

	var err error
	c.frames, err = m.Int64Counter(
		"ballistic.frames",
		metric.WithDescription("Simulation steps executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	c.collisions, err = m.Int64Counter(
		"ballistic.collisions",
		metric.WithDescription("Vehicle pairs resolved by the collision sweep"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}

	c.explosions, err = m.Int64Counter(
		"ballistic.explosions",
		metric.WithDescription("Vehicles that started exploding"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating explosions counter: %w", err)
	}

	c.spawns, err = m.Int64Counter(
		"ballistic.spawns",
		metric.WithDescription("Traffic vehicles placed on the road"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating spawns counter: %w", err)
	}

	return c, nil
}

// Frame counts one simulation step
func (c *Counters) Frame(ctx context.Context, stage int) {
	c.frames.Add(ctx, 1, metric.WithAttributes(attribute.Int("stage", stage)))
}

// Collisions counts resolved pairs
func (c *Counters) Collisions(ctx context.Context, n int) {
	if n > 0 {
		c.collisions.Add(ctx, int64(n))
	}
}

// Explosion counts a vehicle blowing up
func (c *Counters) Explosion(ctx context.Context, cause string) {
	c.explosions.Add(ctx, 1, metric.WithAttributes(attribute.String("cause", cause)))
}

// Spawn counts placed traffic by vehicle type
func (c *Counters) Spawn(ctx context.Context, name string) {
	c.spawns.Add(ctx, 1, metric.WithAttributes(attribute.String("vehicle", name)))
}
