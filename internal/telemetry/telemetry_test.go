package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersWithoutProvider(t *testing.T) {
	c, err := NewCounters()
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		c.Frame(ctx, 1)
		c.Collisions(ctx, 3)
		c.Collisions(ctx, 0)
		c.Explosion(ctx, "terrain")
		c.Spawn(ctx, "taxi")
	})
}
