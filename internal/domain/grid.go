package domain

import (
	"fmt"
	"sort"
	"strings"
)

// MonthsPerYear is the number of cells in one state's row of a resolved grid.
const MonthsPerYear = 12

var (
	// monthLabels are the canonical month abbreviations used across CSV
	// inputs, chart axes, and synthetic data, in calendar order.
	monthLabels = [MonthsPerYear]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}

	// monthNames are the full spellings accepted as input synonyms.
	monthNames = [MonthsPerYear]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

// Months returns the canonical month labels in calendar order.
func Months() []string {
	return append([]string(nil), monthLabels[:]...)
}

// MonthIndex maps a month label to its calendar position (0–11). It accepts
// canonical abbreviations ("Jan") and full names ("January"), ignoring case
// and surrounding whitespace. Returns false for anything else.
func MonthIndex(label string) (int, bool) {
	label = strings.TrimSpace(label)
	for i := range monthLabels {
		if strings.EqualFold(label, monthLabels[i]) || strings.EqualFold(label, monthNames[i]) {
			return i, true
		}
	}
	return 0, false
}

// NormalizeMonth converts any accepted month spelling to its canonical
// abbreviation, e.g. "january" → "Jan".
func NormalizeMonth(label string) (string, bool) {
	i, ok := MonthIndex(label)
	if !ok {
		return "", false
	}
	return monthLabels[i], true
}

// MonthLabel returns the canonical abbreviation for a calendar position.
// Out-of-range positions return an empty string.
func MonthLabel(i int) string {
	if i < 0 || i >= MonthsPerYear {
		return ""
	}
	return monthLabels[i]
}

// Observation is a single (state, month, value) reading from an input
// source. Month may use any accepted spelling; values are °C for
// temperature and mm for rainfall.
type Observation struct {
	State string
	Month string
	Value float64
}

// Dataset is an immutable (state, month) grid of values for one measure.
// Construction validates that every state covers all twelve months exactly
// once, so lookups over a built grid never hit holes.
type Dataset struct {
	kind   Kind
	states []string
	cells  map[gridCell]float64
}

type gridCell struct {
	state string
	month int
}

// NewDataset builds a validated grid from observations. It rejects unknown
// month labels, duplicate (state, month) cells, and states with missing
// months; a successfully built Dataset always holds len(states)×12 values.
func NewDataset(kind Kind, observations []Observation) (Dataset, error) {
	cells := make(map[gridCell]float64, len(observations))
	monthsPerState := make(map[string]int)

	for _, obs := range observations {
		idx, ok := MonthIndex(obs.Month)
		if !ok {
			return Dataset{}, fmt.Errorf("build %s grid: unknown month %q for state %q", kind, obs.Month, obs.State)
		}
		cell := gridCell{state: obs.State, month: idx}
		if _, dup := cells[cell]; dup {
			return Dataset{}, fmt.Errorf("build %s grid: duplicate cell %s/%s", kind, obs.State, monthLabels[idx])
		}
		cells[cell] = obs.Value
		monthsPerState[obs.State]++
	}

	states := make([]string, 0, len(monthsPerState))
	for state, n := range monthsPerState {
		if n != MonthsPerYear {
			return Dataset{}, fmt.Errorf("build %s grid: state %q covers %d of %d months", kind, state, n, MonthsPerYear)
		}
		states = append(states, state)
	}
	sort.Strings(states)

	return Dataset{kind: kind, states: states, cells: cells}, nil
}

// Kind identifies which measure the grid holds.
func (d Dataset) Kind() Kind { return d.kind }

// Empty reports whether the grid holds no states.
func (d Dataset) Empty() bool { return len(d.states) == 0 }

// Len returns the number of cells in the grid.
func (d Dataset) Len() int { return len(d.cells) }

// States returns the grid's states in sorted order. The slice is a copy.
func (d Dataset) States() []string {
	return append([]string(nil), d.states...)
}

// HasState reports whether the grid covers the given state.
func (d Dataset) HasState(state string) bool {
	_, ok := d.cells[gridCell{state: state}]
	return ok
}

// Value returns the cell for a state and calendar month position (0–11).
func (d Dataset) Value(state string, month int) (float64, bool) {
	v, ok := d.cells[gridCell{state: state, month: month}]
	return v, ok
}

// Row returns a state's twelve values in calendar order.
func (d Dataset) Row(state string) ([]float64, bool) {
	if !d.HasState(state) {
		return nil, false
	}
	row := make([]float64, MonthsPerYear)
	for i := range row {
		row[i] = d.cells[gridCell{state: state, month: i}]
	}
	return row, true
}

// Mean returns a state's annual mean value.
func (d Dataset) Mean(state string) (float64, bool) {
	row, ok := d.Row(state)
	if !ok {
		return 0, false
	}
	var sum float64
	for _, v := range row {
		sum += v
	}
	return sum / MonthsPerYear, true
}

// Range returns the smallest and largest cell values, or (0, 0) for an
// empty grid.
func (d Dataset) Range() (lo, hi float64) {
	first := true
	for _, v := range d.cells {
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
