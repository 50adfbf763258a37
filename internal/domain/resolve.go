package domain

// Kind identifies one of the datasets a dashboard build resolves.
type Kind string

const (
	KindTemperature Kind = "temperature"
	KindRainfall    Kind = "rainfall"
	KindWind        Kind = "wind"
	KindGeography   Kind = "geography"
)

// GridKinds lists the kinds resolved as (state, month) grids, in the order
// the resolver acquires them.
func GridKinds() []Kind {
	return []Kind{KindTemperature, KindRainfall}
}

// Source records where a resolved dataset's values came from.
type Source string

const (
	// SourceFile means every cell was read from a local CSV.
	SourceFile Source = "file"
	// SourceLive means every cell was fetched from the live weather API.
	SourceLive Source = "live"
	// SourceSynthetic means every cell was generated by the synthesizer.
	SourceSynthetic Source = "synthetic"
	// SourceMerged means loaded cells were topped up with synthetic ones.
	SourceMerged Source = "merged"
	// SourceBuiltin means the compiled-in fallback table was used.
	SourceBuiltin Source = "builtin"
)

// Resolution pairs a resolved grid with provenance describing how it was
// obtained, so downstream stages can label placeholder data honestly.
type Resolution struct {
	Dataset Dataset
	Source  Source

	// Reason explains a synthetic or merged source, typically the load
	// failure that forced generation. Empty for file and live sources.
	Reason string

	// LoadedCells and SyntheticCells count where the grid's values came
	// from. They always sum to Dataset.Len().
	LoadedCells    int
	SyntheticCells int
}

// Synthetic reports whether any cell of the grid was generated rather than
// observed.
func (r Resolution) Synthetic() bool {
	return r.SyntheticCells > 0
}

// WindVector is a monthly-mean wind reading at a state centroid, expressed
// as eastward (U) and northward (V) components in km/h.
type WindVector struct {
	State string
	Geo   Geo
	U     float64
	V     float64
}

// WindField is the optional wind dataset. It is only ever loaded or
// fetched, never synthesized; a zero WindField means no wind chart.
type WindField struct {
	Vectors []WindVector
	Source  Source
}

// Empty reports whether there is any wind data to draw.
func (f WindField) Empty() bool { return len(f.Vectors) == 0 }

// LiveReading is one current-conditions sample for a state fetched from
// the live weather API. Month is the calendar month the sample lands in;
// wind is decomposed into eastward (U) and northward (V) km/h components.
type LiveReading struct {
	State    string
	Month    string
	Geo      Geo
	TempC    float64
	PrecipMm float64
	WindU    float64
	WindV    float64
}

// GeoResolution pairs state geography with where it came from: a boundary
// file or the compiled-in centroid table.
type GeoResolution struct {
	Geography Geography
	Source    Source
	Reason    string
}

// DashboardData is the complete set of resolved inputs one dashboard build
// renders from.
type DashboardData struct {
	Temperature Resolution
	Rainfall    Resolution
	Geography   GeoResolution
	Wind        WindField
}
