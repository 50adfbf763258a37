package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// FileStore loads datasets from the local data directory.
type FileStore interface {
	LoadTemperatures() ([]domain.Observation, error)
	LoadRainfall() ([]domain.Observation, error)
	LoadWind() ([]domain.WindVector, error)
	LoadGeography() (domain.Geography, error)
}

// LiveSource fetches current-conditions readings from a weather API.
type LiveSource interface {
	FetchCurrent(ctx context.Context) ([]domain.LiveReading, error)
}

// Resolver turns whatever inputs are available into complete datasets.
// Every grid it returns covers each (state, month) cell exactly once;
// cells no input provides are synthesized. A nil live source disables
// the live path entirely.
//
// Resolver is not safe for concurrent use. It memoizes one live sweep
// per build so temperature, rainfall, and wind share the same readings.
type Resolver struct {
	store  FileStore
	live   LiveSource
	synth  *domain.Synthesizer
	logger *slog.Logger

	liveTried    bool
	liveReadings []domain.LiveReading
}

// NewResolver creates a Resolver. live may be nil.
func NewResolver(store FileStore, live LiveSource, synth *domain.Synthesizer, logger *slog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		live:   live,
		synth:  synth,
		logger: logger,
	}
}

// ResolveGrid resolves one grid dataset. Live readings take precedence,
// then the data file; either way missing cells are synthesized. A file
// that is missing or malformed is rejected wholesale and replaced by a
// fully synthetic grid.
func (r *Resolver) ResolveGrid(ctx context.Context, kind domain.Kind) (domain.Resolution, error) {
	if kind != domain.KindTemperature && kind != domain.KindRainfall {
		return domain.Resolution{}, fmt.Errorf("kind %s is not resolved as a grid", kind)
	}

	readings, err := r.fetchLive(ctx)
	if err != nil {
		return domain.Resolution{}, err
	}
	if len(readings) > 0 {
		return r.liveGrid(kind, readings)
	}

	loaded, err := r.loadGrid(kind)
	if err != nil {
		r.logger.Warn("weather file unusable, synthesizing", "kind", kind, "error", err)
		return r.syntheticGrid(kind, loadFailureReason(err))
	}
	if len(loaded) == 0 {
		r.logger.Warn("weather file has no data rows, synthesizing", "kind", kind)
		return r.syntheticGrid(kind, "data file has no data rows")
	}
	return r.fileGrid(kind, loaded)
}

// ResolveGeography loads state geography, falling back to the built-in
// centroid table when the file is missing or unusable.
func (r *Resolver) ResolveGeography(_ context.Context) (domain.GeoResolution, error) {
	geo, err := r.store.LoadGeography()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Info("geography file missing, using built-in state table")
		} else {
			r.logger.Warn("geography file unusable, using built-in state table", "error", err)
		}
		return domain.GeoResolution{
			Geography: domain.BuiltinGeography(),
			Source:    domain.SourceBuiltin,
			Reason:    loadFailureReason(err),
		}, nil
	}
	return domain.GeoResolution{Geography: geo, Source: domain.SourceFile}, nil
}

// ResolveWind resolves the wind field. Wind is never synthesized: when
// neither live readings nor a wind file are available the field stays
// empty and the wind chart is simply not built.
func (r *Resolver) ResolveWind(ctx context.Context) (domain.WindField, error) {
	readings, err := r.fetchLive(ctx)
	if err != nil {
		return domain.WindField{}, err
	}
	if len(readings) > 0 {
		vectors := make([]domain.WindVector, 0, len(readings))
		for _, reading := range readings {
			vectors = append(vectors, domain.WindVector{
				State: reading.State,
				Geo:   reading.Geo,
				U:     reading.WindU,
				V:     reading.WindV,
			})
		}
		return domain.WindField{Vectors: vectors, Source: domain.SourceLive}, nil
	}

	vectors, err := r.store.LoadWind()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Info("wind data not available, skipping wind chart")
		} else {
			r.logger.Warn("wind file unusable, skipping wind chart", "error", err)
		}
		return domain.WindField{}, nil
	}
	if len(vectors) == 0 {
		return domain.WindField{}, nil
	}
	return domain.WindField{Vectors: vectors, Source: domain.SourceFile}, nil
}

// fetchLive performs at most one live sweep per build. Failures and
// empty sweeps demote the build to the file path; only a dead context
// aborts it.
func (r *Resolver) fetchLive(ctx context.Context) ([]domain.LiveReading, error) {
	if r.live == nil || r.liveTried {
		return r.liveReadings, nil
	}
	r.liveTried = true

	readings, err := r.live.FetchCurrent(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		r.logger.Warn("live weather unavailable, falling back to local data", "error", err)
		return nil, nil
	}
	if len(readings) == 0 {
		r.logger.Warn("live weather returned no readings, falling back to local data")
		return nil, nil
	}

	r.liveReadings = readings
	return readings, nil
}

func (r *Resolver) loadGrid(kind domain.Kind) ([]domain.Observation, error) {
	switch kind {
	case domain.KindTemperature:
		return r.store.LoadTemperatures()
	default:
		return r.store.LoadRainfall()
	}
}

func (r *Resolver) fileGrid(kind domain.Kind, loaded []domain.Observation) (domain.Resolution, error) {
	res, err := r.completeGrid(kind, loaded)
	if err != nil {
		return domain.Resolution{}, err
	}

	switch {
	case res.SyntheticCells == 0:
		res.Source = domain.SourceFile
	case res.LoadedCells == 0:
		res.Source = domain.SourceSynthetic
		res.Reason = "data file has no data rows"
	default:
		res.Source = domain.SourceMerged
		res.Reason = fmt.Sprintf("%d of %d cells synthesized", res.SyntheticCells, res.Dataset.Len())
		r.logger.Warn("partial weather file, synthesizing missing cells",
			"kind", kind,
			"loaded_cells", res.LoadedCells,
			"synthetic_cells", res.SyntheticCells,
		)
	}
	return res, nil
}

func (r *Resolver) liveGrid(kind domain.Kind, readings []domain.LiveReading) (domain.Resolution, error) {
	loaded := make([]domain.Observation, 0, len(readings))
	for _, reading := range readings {
		loaded = append(loaded, domain.Observation{
			State: reading.State,
			Month: reading.Month,
			Value: liveValue(kind, reading),
		})
	}

	res, err := r.completeGrid(kind, loaded)
	if err != nil {
		return domain.Resolution{}, err
	}
	if res.SyntheticCells == 0 {
		res.Source = domain.SourceLive
	} else {
		res.Source = domain.SourceMerged
		res.Reason = "live readings cover only the current month"
	}
	return res, nil
}

func (r *Resolver) syntheticGrid(kind domain.Kind, reason string) (domain.Resolution, error) {
	obs, err := r.synth.Grid(kind, domain.ReferenceStates())
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("synthesize %s: %w", kind, err)
	}
	ds, err := domain.NewDataset(kind, obs)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("synthesize %s: %w", kind, err)
	}
	return domain.Resolution{
		Dataset:        ds,
		Source:         domain.SourceSynthetic,
		Reason:         reason,
		SyntheticCells: ds.Len(),
	}, nil
}

type cellKey struct {
	state string
	month int
}

// completeGrid fills every missing (state, month) cell of the union grid
// with synthesized values. States present in the input are kept even when
// they are not reference states; duplicate rows keep the last value. The
// state order is sorted so synthesis is deterministic for a given seed.
func (r *Resolver) completeGrid(kind domain.Kind, loaded []domain.Observation) (domain.Resolution, error) {
	cells := make(map[cellKey]float64, len(loaded))
	for _, o := range loaded {
		m, ok := domain.MonthIndex(o.Month)
		if !ok {
			return domain.Resolution{}, fmt.Errorf("merge %s: unrecognized month %q", kind, o.Month)
		}
		cells[cellKey{state: o.State, month: m}] = o.Value
	}

	stateSet := make(map[string]bool)
	for _, state := range domain.ReferenceStates() {
		stateSet[state] = true
	}
	for _, o := range loaded {
		stateSet[o.State] = true
	}
	states := make([]string, 0, len(stateSet))
	for state := range stateSet {
		states = append(states, state)
	}
	sort.Strings(states)

	obs := make([]domain.Observation, 0, len(states)*domain.MonthsPerYear)
	loadedCells := 0
	for _, state := range states {
		for m := 0; m < domain.MonthsPerYear; m++ {
			value, ok := cells[cellKey{state: state, month: m}]
			if ok {
				loadedCells++
			} else {
				var err error
				value, err = r.synth.Cell(kind, m)
				if err != nil {
					return domain.Resolution{}, fmt.Errorf("merge %s: %w", kind, err)
				}
			}
			obs = append(obs, domain.Observation{State: state, Month: domain.MonthLabel(m), Value: value})
		}
	}

	ds, err := domain.NewDataset(kind, obs)
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("merge %s: %w", kind, err)
	}
	return domain.Resolution{
		Dataset:        ds,
		LoadedCells:    loadedCells,
		SyntheticCells: ds.Len() - loadedCells,
	}, nil
}

func loadFailureReason(err error) string {
	var schema *domain.SchemaError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "data file missing"
	case errors.As(err, &schema):
		return schema.Error()
	default:
		return err.Error()
	}
}

func liveValue(kind domain.Kind, reading domain.LiveReading) float64 {
	if kind == domain.KindTemperature {
		return reading.TempC
	}
	return reading.PrecipMm
}
