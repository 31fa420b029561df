package livetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjmurray/producer-pal-sub001/models"
)

func TestRoutingPropertiesRoundTrip(t *testing.T) {
	f := NewFake()
	f.AddTrack("Lead")
	bus := f.AddTrack("Bus")

	raw, err := f.Get(bus.ID, "available_output_routing_types")
	require.NoError(t, err)
	types, err := models.ParseRoutingTypes(raw.(string))
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Master", types[0].DisplayName)
	assert.Equal(t, "Lead", types[1].DisplayName)

	encoded, err := models.EncodeRoutingType(types[1])
	require.NoError(t, err)
	require.NoError(t, f.Set(bus.ID, "output_routing_type", encoded))

	current, err := f.Get(bus.ID, "output_routing_type")
	require.NoError(t, err)
	rt, err := models.ParseRoutingType(current.(string))
	require.NoError(t, err)
	assert.Equal(t, "Lead", rt.DisplayName)
	assert.Equal(t, types[1].Identifier, rt.Identifier)
}

func TestAvailableInputRoutingsIncludeNoInput(t *testing.T) {
	f := NewFake()
	track := f.AddTrack("Solo")

	raw, err := f.Get(track.ID, "available_input_routing_types")
	require.NoError(t, err)
	types, err := models.ParseRoutingTypes(raw.(string))
	require.NoError(t, err)

	names := make([]string, len(types))
	for i, rt := range types {
		names[i] = rt.DisplayName
	}
	assert.Contains(t, names, "No Input")
}
