package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = 20240426

func TestSynthesizer_Deterministic(t *testing.T) {
	states := []string{"Delhi", "Karnataka"}

	a, err := NewSynthesizer(testSeed).Grid(KindTemperature, states)
	require.NoError(t, err)
	b, err := NewSynthesizer(testSeed).Grid(KindTemperature, states)
	require.NoError(t, err)

	assert.Equal(t, a, b, "same seed must reproduce the grid exactly")

	c, err := NewSynthesizer(testSeed + 1).Grid(KindTemperature, states)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seeds must diverge")
}

func TestSynthesizer_TemperatureBounds(t *testing.T) {
	s := NewSynthesizer(testSeed)
	for i := 0; i < 500; i++ {
		v := s.Temperature(i % MonthsPerYear)
		assert.GreaterOrEqual(t, v, TempFloor)
		assert.LessOrEqual(t, v, TempCeil)
	}
}

func TestSynthesizer_RainfallBounds(t *testing.T) {
	s := NewSynthesizer(testSeed)
	for i := 0; i < 500; i++ {
		v := s.Rainfall(i % MonthsPerYear)
		assert.GreaterOrEqual(t, v, RainFloor)
		assert.LessOrEqual(t, v, RainCeil)
	}
}

func TestSynthesizer_Grid(t *testing.T) {
	states := ReferenceStates()

	obs, err := NewSynthesizer(testSeed).Grid(KindRainfall, states)
	require.NoError(t, err)
	require.Len(t, obs, len(states)*MonthsPerYear)

	// The generated observations must assemble into a valid grid, which
	// proves every (state, month) cell appears exactly once.
	d, err := NewDataset(KindRainfall, obs)
	require.NoError(t, err)
	assert.Equal(t, len(states)*MonthsPerYear, d.Len())
	assert.ElementsMatch(t, states, d.States())
}

func TestSynthesizer_Cell(t *testing.T) {
	s := NewSynthesizer(testSeed)

	t.Run("temperature", func(t *testing.T) {
		v, err := s.Cell(KindTemperature, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, TempFloor)
	})

	t.Run("rainfall", func(t *testing.T) {
		v, err := s.Cell(KindRainfall, 6)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, RainFloor)
	})

	t.Run("non-grid kind", func(t *testing.T) {
		_, err := s.Cell(KindWind, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a grid kind")
	})
}

func TestDateSeed(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 18, 30, 0, 0, time.UTC)))
	defer SetClock(nil)

	assert.Equal(t, int64(20240426), DateSeed())
}

func TestCurrentMonth(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.September, 3, 12, 0, 0, 0, time.UTC)))
	defer SetClock(nil)

	assert.Equal(t, "Sep", CurrentMonth())
}

func TestSetClock(t *testing.T) {
	t.Run("set custom clock", func(t *testing.T) {
		fixedTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(fixedTime))

		assert.Equal(t, fixedTime, Now())

		SetClock(nil) // reset
	})

	t.Run("reset to real clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		SetClock(nil)

		// Real clock should return current time (within a small window)
		assert.True(t, time.Since(Now()) < time.Second)
	})
}
