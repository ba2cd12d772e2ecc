package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	schema := Schema()
	assert.Equal(t, "Going Ballistic configuration", schema.Title)

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var doc struct {
		Defs map[string]struct {
			Properties           map[string]json.RawMessage `json:"properties"`
			Required             []string                   `json:"required"`
			AdditionalProperties *bool                      `json:"additionalProperties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	root, ok := doc.Defs["Config"]
	require.True(t, ok)
	for _, key := range []string{"window", "timing", "log", "world", "vehicles", "levels", "editor"} {
		assert.Contains(t, root.Properties, key)
	}
	assert.Empty(t, root.Required, "every key is optional")

	timing := doc.Defs["TimingConfig"]
	assert.Contains(t, timing.Properties, "tickMs")
	assert.Contains(t, timing.Properties, "maxElapsedMs")

	vehicle := doc.Defs["VehicleConfig"]
	assert.Contains(t, vehicle.Properties, "probability")
	require.NotNil(t, vehicle.AdditionalProperties)
	assert.False(t, *vehicle.AdditionalProperties)
}
