package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStateKA = "Karnataka"
	testStateMH = "Maharashtra"
)

func TestMonthIndex(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected int
		ok       bool
	}{
		{"canonical abbreviation", "Jan", 0, true},
		{"last month", "Dec", 11, true},
		{"full name", "January", 0, true},
		{"lowercase full name", "september", 8, true},
		{"uppercase abbreviation", "JUN", 5, true},
		{"surrounding whitespace", "  Mar ", 2, true},
		{"may abbreviation equals full name", "May", 4, true},
		{"truncated full name rejected", "Janu", 0, false},
		{"numeric label rejected", "1", 0, false},
		{"empty string", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := MonthIndex(tt.label)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, idx)
			}
		})
	}
}

func TestNormalizeMonth(t *testing.T) {
	t.Run("full name to abbreviation", func(t *testing.T) {
		label, ok := NormalizeMonth("october")
		require.True(t, ok)
		assert.Equal(t, "Oct", label)
	})

	t.Run("unknown label", func(t *testing.T) {
		_, ok := NormalizeMonth("Monsoon")
		assert.False(t, ok)
	})
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan", MonthLabel(0))
	assert.Equal(t, "Dec", MonthLabel(11))
	assert.Equal(t, "", MonthLabel(-1))
	assert.Equal(t, "", MonthLabel(12))
}

func TestMonths(t *testing.T) {
	months := Months()
	require.Len(t, months, MonthsPerYear)
	assert.Equal(t, "Jan", months[0])

	// Mutating the returned slice must not affect later calls.
	months[0] = "mangled"
	assert.Equal(t, "Jan", Months()[0])
}

func TestNewDataset(t *testing.T) {
	t.Run("complete grid", func(t *testing.T) {
		obs := fullGridObservations(t, []string{testStateMH, testStateKA}, 20)

		d, err := NewDataset(KindTemperature, obs)
		require.NoError(t, err)

		assert.Equal(t, KindTemperature, d.Kind())
		assert.Equal(t, 2*MonthsPerYear, d.Len())
		assert.Equal(t, []string{testStateKA, testStateMH}, d.States(), "states sort alphabetically")
	})

	t.Run("accepts full month names", func(t *testing.T) {
		var obs []Observation
		for _, m := range monthNames {
			obs = append(obs, Observation{State: testStateKA, Month: m, Value: 1})
		}

		d, err := NewDataset(KindRainfall, obs)
		require.NoError(t, err)
		assert.Equal(t, MonthsPerYear, d.Len())
	})

	t.Run("empty observations", func(t *testing.T) {
		d, err := NewDataset(KindTemperature, nil)
		require.NoError(t, err)
		assert.True(t, d.Empty())
		assert.Zero(t, d.Len())
	})

	t.Run("duplicate cell rejected", func(t *testing.T) {
		obs := fullGridObservations(t, []string{testStateMH}, 20)
		obs = append(obs, Observation{State: testStateMH, Month: "Jan", Value: 99})

		_, err := NewDataset(KindTemperature, obs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate cell")
	})

	t.Run("incomplete state rejected", func(t *testing.T) {
		obs := []Observation{
			{State: testStateMH, Month: "Jan", Value: 20},
			{State: testStateMH, Month: "Feb", Value: 21},
		}

		_, err := NewDataset(KindTemperature, obs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "covers 2 of 12 months")
	})

	t.Run("unknown month rejected", func(t *testing.T) {
		obs := []Observation{{State: testStateMH, Month: "Smarch", Value: 20}}

		_, err := NewDataset(KindTemperature, obs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown month")
	})
}

func TestDataset_Lookups(t *testing.T) {
	var obs []Observation
	for i, m := range monthLabels {
		obs = append(obs, Observation{State: testStateKA, Month: m, Value: float64(i + 1)})
	}
	d, err := NewDataset(KindRainfall, obs)
	require.NoError(t, err)

	t.Run("value hit", func(t *testing.T) {
		v, ok := d.Value(testStateKA, 3)
		require.True(t, ok)
		assert.Equal(t, 4.0, v)
	})

	t.Run("value miss", func(t *testing.T) {
		_, ok := d.Value(testStateMH, 0)
		assert.False(t, ok)
	})

	t.Run("row in calendar order", func(t *testing.T) {
		row, ok := d.Row(testStateKA)
		require.True(t, ok)
		require.Len(t, row, MonthsPerYear)
		assert.Equal(t, 1.0, row[0])
		assert.Equal(t, 12.0, row[11])
	})

	t.Run("row miss", func(t *testing.T) {
		_, ok := d.Row("Goa")
		assert.False(t, ok)
	})

	t.Run("mean", func(t *testing.T) {
		mean, ok := d.Mean(testStateKA)
		require.True(t, ok)
		assert.InDelta(t, 6.5, mean, 1e-9)
	})

	t.Run("range", func(t *testing.T) {
		lo, hi := d.Range()
		assert.Equal(t, 1.0, lo)
		assert.Equal(t, 12.0, hi)
	})

	t.Run("empty range", func(t *testing.T) {
		empty, err := NewDataset(KindRainfall, nil)
		require.NoError(t, err)
		lo, hi := empty.Range()
		assert.Zero(t, lo)
		assert.Zero(t, hi)
	})

	t.Run("has state", func(t *testing.T) {
		assert.True(t, d.HasState(testStateKA))
		assert.False(t, d.HasState("Goa"))
	})

	t.Run("states slice is a copy", func(t *testing.T) {
		states := d.States()
		states[0] = "mangled"
		assert.Equal(t, testStateKA, d.States()[0])
	})
}

// fullGridObservations builds a complete 12-month grid per state with a
// fixed value.
func fullGridObservations(t *testing.T, states []string, value float64) []Observation {
	t.Helper()
	var obs []Observation
	for _, state := range states {
		for _, m := range monthLabels {
			obs = append(obs, Observation{State: state, Month: m, Value: value})
		}
	}
	return obs
}
