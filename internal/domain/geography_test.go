package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinGeography(t *testing.T) {
	g := BuiltinGeography()

	require.Equal(t, 7, g.Len())
	assert.False(t, g.Empty())

	t.Run("known centroid", func(t *testing.T) {
		c, ok := g.Centroid("Maharashtra")
		require.True(t, ok)
		assert.InDelta(t, 19.7515, c.Lat, 1e-6)
		assert.InDelta(t, 75.7139, c.Lon, 1e-6)
	})

	t.Run("unknown state", func(t *testing.T) {
		_, ok := g.Centroid("Atlantis")
		assert.False(t, ok)
	})

	t.Run("no boundaries", func(t *testing.T) {
		for _, s := range g.States() {
			assert.Nil(t, s.Boundary)
		}
	})
}

func TestReferenceStates(t *testing.T) {
	states := ReferenceStates()

	require.Len(t, states, 7)
	assert.Contains(t, states, "Delhi")
	assert.Contains(t, states, "West Bengal")
	assert.Equal(t, "Maharashtra", states[0], "draw order starts with Maharashtra")
}

func TestNewGeography(t *testing.T) {
	t.Run("preserves draw order", func(t *testing.T) {
		g := NewGeography([]StateGeography{
			{State: "B", Centroid: Geo{Lat: 2}},
			{State: "A", Centroid: Geo{Lat: 1}},
		})

		states := g.States()
		require.Len(t, states, 2)
		assert.Equal(t, "B", states[0].State)
		assert.Equal(t, "A", states[1].State)
	})

	t.Run("later duplicate replaces earlier", func(t *testing.T) {
		g := NewGeography([]StateGeography{
			{State: "A", Centroid: Geo{Lat: 1}},
			{State: "A", Centroid: Geo{Lat: 9}},
		})

		require.Equal(t, 1, g.Len())
		c, ok := g.Centroid("A")
		require.True(t, ok)
		assert.Equal(t, 9.0, c.Lat)
	})

	t.Run("states slice is a copy", func(t *testing.T) {
		g := NewGeography([]StateGeography{{State: "A"}})
		states := g.States()
		states[0].State = "mangled"
		assert.Equal(t, "A", g.States()[0].State)
	})

	t.Run("empty", func(t *testing.T) {
		g := NewGeography(nil)
		assert.True(t, g.Empty())
		assert.Zero(t, g.Len())
	})
}
