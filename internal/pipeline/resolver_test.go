package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"testing"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
	"github.com/couchcryptid/weather-dashboard/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type stubStore struct {
	temps    []domain.Observation
	tempsErr error
	rain     []domain.Observation
	rainErr  error
	wind     []domain.WindVector
	windErr  error
	geo      domain.Geography
	geoErr   error

	gridLoads int
}

func (s *stubStore) LoadTemperatures() ([]domain.Observation, error) {
	s.gridLoads++
	return s.temps, s.tempsErr
}

func (s *stubStore) LoadRainfall() ([]domain.Observation, error) {
	s.gridLoads++
	return s.rain, s.rainErr
}

func (s *stubStore) LoadWind() ([]domain.WindVector, error) { return s.wind, s.windErr }

func (s *stubStore) LoadGeography() (domain.Geography, error) { return s.geo, s.geoErr }

type stubLive struct {
	readings []domain.LiveReading
	err      error
	calls    int
}

func (s *stubLive) FetchCurrent(context.Context) ([]domain.LiveReading, error) {
	s.calls++
	return s.readings, s.err
}

// --- tests ---

func TestResolver_ResolveGrid_CompleteFile(t *testing.T) {
	store := &stubStore{temps: gridObservations(domain.ReferenceStates(), 20)}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindTemperature)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFile, res.Source)
	assert.Empty(t, res.Reason)
	assert.Equal(t, 84, res.LoadedCells)
	assert.Zero(t, res.SyntheticCells)
	assert.Len(t, res.Dataset.States(), 7)

	// Delhi is the second seeded state: base 20 plus offset 100.
	v, ok := res.Dataset.Value("Delhi", 0)
	require.True(t, ok)
	assert.InDelta(t, 120.0, v, 1e-9)
}

func TestResolver_ResolveGrid_MissingFileSynthesizes(t *testing.T) {
	store := &stubStore{tempsErr: fmt.Errorf("open temperature_data.csv: %w", fs.ErrNotExist)}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindTemperature)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSynthetic, res.Source)
	assert.Equal(t, "data file missing", res.Reason)
	assert.Zero(t, res.LoadedCells)
	assert.Equal(t, 84, res.SyntheticCells)

	require.Len(t, res.Dataset.States(), 7)
	for _, state := range res.Dataset.States() {
		for m := 0; m < domain.MonthsPerYear; m++ {
			v, ok := res.Dataset.Value(state, m)
			require.True(t, ok, "state %s month %d", state, m)
			assert.GreaterOrEqual(t, v, domain.TempFloor)
			assert.LessOrEqual(t, v, domain.TempCeil)
		}
	}
}

func TestResolver_ResolveGrid_SchemaErrorSynthesizes(t *testing.T) {
	store := &stubStore{rainErr: &domain.SchemaError{
		File:   "rainfall_data.csv",
		Row:    3,
		Detail: `Rainfall "wet" is not numeric`,
	}}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindRainfall)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSynthetic, res.Source)
	assert.Contains(t, res.Reason, "rainfall_data.csv")

	lo, hi := res.Dataset.Range()
	assert.GreaterOrEqual(t, lo, domain.RainFloor)
	assert.LessOrEqual(t, hi, domain.RainCeil)
}

func TestResolver_ResolveGrid_EmptyFileSynthesizes(t *testing.T) {
	store := &stubStore{rain: []domain.Observation{}}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindRainfall)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSynthetic, res.Source)
	assert.Equal(t, "data file has no data rows", res.Reason)
	assert.Equal(t, 84, res.SyntheticCells)
}

func TestResolver_ResolveGrid_PartialFileMerged(t *testing.T) {
	store := &stubStore{rain: []domain.Observation{
		{State: "Karnataka", Month: "Jan", Value: 12.5},
		{State: "Karnataka", Month: "Jul", Value: 210},
	}}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindRainfall)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceMerged, res.Source)
	assert.Equal(t, "82 of 84 cells synthesized", res.Reason)
	assert.Equal(t, 2, res.LoadedCells)
	assert.Equal(t, 82, res.SyntheticCells)

	// Loaded cells survive the merge verbatim.
	v, ok := res.Dataset.Value("Karnataka", 6)
	require.True(t, ok)
	assert.InDelta(t, 210.0, v, 1e-9)

	// Cells the file never mentioned are filled in.
	v, ok = res.Dataset.Value("Delhi", 0)
	require.True(t, ok)
	assert.GreaterOrEqual(t, v, domain.RainFloor)
}

func TestResolver_ResolveGrid_KeepsUnknownStates(t *testing.T) {
	store := &stubStore{temps: gridObservations([]string{"Goa"}, 5)}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindTemperature)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceMerged, res.Source)
	assert.True(t, res.Dataset.HasState("Goa"))
	assert.Len(t, res.Dataset.States(), 8)
	assert.Equal(t, 12, res.LoadedCells)
	assert.Equal(t, 84, res.SyntheticCells)
}

func TestResolver_ResolveGrid_DuplicateRowsLastWins(t *testing.T) {
	store := &stubStore{temps: []domain.Observation{
		{State: "Delhi", Month: "Mar", Value: 21},
		{State: "Delhi", Month: "Mar", Value: 27.5},
	}}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindTemperature)
	require.NoError(t, err)

	v, ok := res.Dataset.Value("Delhi", 2)
	require.True(t, ok)
	assert.InDelta(t, 27.5, v, 1e-9)
}

func TestResolver_ResolveGrid_RejectsNonGridKinds(t *testing.T) {
	r := pipeline.NewResolver(&stubStore{}, nil, domain.NewSynthesizer(7), slog.Default())

	_, err := r.ResolveGrid(context.Background(), domain.KindGeography)
	assert.ErrorContains(t, err, "not resolved as a grid")
}

func TestResolver_SyntheticGridsDeterministicBySeed(t *testing.T) {
	run := func() domain.Dataset {
		store := &stubStore{tempsErr: fmt.Errorf("open temperature_data.csv: %w", fs.ErrNotExist)}
		r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(20240426), slog.Default())
		res, err := r.ResolveGrid(context.Background(), domain.KindTemperature)
		require.NoError(t, err)
		return res.Dataset
	}

	first, second := run(), run()
	require.Equal(t, first.States(), second.States())
	for _, state := range first.States() {
		a, _ := first.Row(state)
		b, _ := second.Row(state)
		assert.Equal(t, a, b, "state %s", state)
	}
}

func TestResolver_ResolveGrid_LiveReadingsMerged(t *testing.T) {
	live := &stubLive{readings: liveReadings("Apr")}
	store := &stubStore{}
	r := pipeline.NewResolver(store, live, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindTemperature)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceMerged, res.Source)
	assert.Equal(t, "live readings cover only the current month", res.Reason)
	assert.Equal(t, 7, res.LoadedCells)
	assert.Equal(t, 77, res.SyntheticCells)
	assert.Zero(t, store.gridLoads, "live path must not touch the data files")

	v, ok := res.Dataset.Value("Maharashtra", 3)
	require.True(t, ok)
	assert.InDelta(t, 30.0, v, 1e-9)
}

func TestResolver_LiveSweepSharedAcrossDatasets(t *testing.T) {
	live := &stubLive{readings: liveReadings("Apr")}
	r := pipeline.NewResolver(&stubStore{}, live, domain.NewSynthesizer(7), slog.Default())

	ctx := context.Background()
	_, err := r.ResolveGrid(ctx, domain.KindTemperature)
	require.NoError(t, err)
	_, err = r.ResolveGrid(ctx, domain.KindRainfall)
	require.NoError(t, err)
	wind, err := r.ResolveWind(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, live.calls)
	assert.Equal(t, domain.SourceLive, wind.Source)
	assert.Len(t, wind.Vectors, 7)
}

func TestResolver_LiveFailureFallsBackToFiles(t *testing.T) {
	live := &stubLive{err: errors.New("api unreachable")}
	store := &stubStore{temps: gridObservations(domain.ReferenceStates(), 20)}
	r := pipeline.NewResolver(store, live, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGrid(context.Background(), domain.KindTemperature)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFile, res.Source)
	assert.Equal(t, 1, live.calls)
}

func TestResolver_EmptyLiveSweepFallsBack(t *testing.T) {
	live := &stubLive{}
	store := &stubStore{tempsErr: fmt.Errorf("open temperature_data.csv: %w", fs.ErrNotExist)}
	r := pipeline.NewResolver(store, live, domain.NewSynthesizer(7), slog.Default())

	ctx := context.Background()
	res, err := r.ResolveGrid(ctx, domain.KindTemperature)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceSynthetic, res.Source)

	_, err = r.ResolveGrid(ctx, domain.KindRainfall)
	require.NoError(t, err)
	assert.Equal(t, 1, live.calls, "empty sweep must not be retried")
}

func TestResolver_ResolveGrid_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	live := &stubLive{err: context.Canceled}
	r := pipeline.NewResolver(&stubStore{}, live, domain.NewSynthesizer(7), slog.Default())

	_, err := r.ResolveGrid(ctx, domain.KindTemperature)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolver_ResolveGeography_File(t *testing.T) {
	geo := domain.NewGeography([]domain.StateGeography{
		{State: "Karnataka", Centroid: domain.Geo{Lat: 15.3, Lon: 75.7}},
	})
	r := pipeline.NewResolver(&stubStore{geo: geo}, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGeography(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFile, res.Source)
	assert.Equal(t, 1, res.Geography.Len())
}

func TestResolver_ResolveGeography_FallsBackToBuiltin(t *testing.T) {
	store := &stubStore{geoErr: fmt.Errorf("open india_states.geojson: %w", fs.ErrNotExist)}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	res, err := r.ResolveGeography(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceBuiltin, res.Source)
	assert.Equal(t, "data file missing", res.Reason)
	assert.Equal(t, len(domain.ReferenceStates()), res.Geography.Len())
}

func TestResolver_ResolveWind_FileVectors(t *testing.T) {
	store := &stubStore{wind: []domain.WindVector{
		{State: "Delhi", Geo: domain.Geo{Lat: 28.7, Lon: 77.1}, U: 3, V: -1},
	}}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	field, err := r.ResolveWind(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFile, field.Source)
	assert.Len(t, field.Vectors, 1)
}

func TestResolver_ResolveWind_MissingFileStaysEmpty(t *testing.T) {
	store := &stubStore{windErr: fmt.Errorf("open wind_data.csv: %w", fs.ErrNotExist)}
	r := pipeline.NewResolver(store, nil, domain.NewSynthesizer(7), slog.Default())

	field, err := r.ResolveWind(context.Background())
	require.NoError(t, err)
	assert.True(t, field.Empty())
}

// --- helpers ---

func gridObservations(states []string, base float64) []domain.Observation {
	obs := make([]domain.Observation, 0, len(states)*domain.MonthsPerYear)
	for si, state := range states {
		for m := 0; m < domain.MonthsPerYear; m++ {
			obs = append(obs, domain.Observation{
				State: state,
				Month: domain.MonthLabel(m),
				Value: base + float64(si*100+m),
			})
		}
	}
	return obs
}

func liveReadings(month string) []domain.LiveReading {
	states := domain.ReferenceStates()
	readings := make([]domain.LiveReading, 0, len(states))
	for i, state := range states {
		readings = append(readings, domain.LiveReading{
			State:    state,
			Month:    month,
			Geo:      domain.Geo{Lat: 20 + float64(i), Lon: 72 + float64(i)},
			TempC:    30 + float64(i),
			PrecipMm: float64(i),
			WindU:    5,
			WindV:    -3,
		})
	}
	return readings
}
