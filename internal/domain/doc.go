// Package domain models monthly climate data for Indian states.
//
// # Data Source
//
// Observations come from CSV extracts of India Meteorological Department
// (IMD) monthly normals, dropped under the data directory by an upstream
// export job. The files are optional: when one is missing or structurally
// unusable, the resolver substitutes synthetic observations so a dashboard
// can always be built. An optional live mode fetches current conditions
// from a weather API instead of reading files.
//
// # File Conventions
//
// Grid files hold one row per (state, month) cell:
//
//	temperature_data.csv  →  State, Month, Avg_Temp   (°C)
//	rainfall_data.csv     →  State, Month, Rainfall   (mm)
//
// Month labels are three-letter English abbreviations ("Jan" … "Dec");
// full names are accepted case-insensitively and normalized on load.
// Extra columns are ignored. A file with the required columns missing, or
// a non-numeric value in a data row, is rejected wholesale via
// [SchemaError] rather than partially loaded.
//
// Wind files hold one row per state with monthly-mean wind expressed as
// eastward (U) and northward (V) components in km/h:
//
//	wind_data.csv  →  State, Latitude, Longitude, U, V
//
// Wind data is never synthesized. When the file is absent the wind chart
// is simply dropped from the dashboard.
//
// State boundaries come from an optional GeoJSON file; without one, map
// charts fall back to the compiled-in centroid table in
// [BuiltinGeography].
//
// # Synthetic Data
//
// The synthesizer models the Indian annual cycle as a sine wave over the
// twelve months with random variation per cell:
//
//	temperature  =  25 + 10·sin(2π·m/11) + Normal(0, 5)      clamped to [5, 45] °C
//	rainfall     =  Gamma(k=2, θ=50) · (1 + 0.5·sin(2π·m/11)) clamped to [0, 3000] mm
//
// The gamma draw keeps rainfall positive and right-skewed; the seasonal
// factor weights the monsoon months. Output is reproducible: the seed
// defaults to the current calendar date (YYYYMMDD), so repeated runs on
// the same day agree, and can be pinned via configuration. See
// [Synthesizer].
//
// # Provenance
//
// Every resolved dataset carries a [Source] recording whether its values
// were read from a file, fetched live, generated, or a mix. Downstream
// stages use it to label placeholder data on the rendered page instead of
// passing synthetic values off as observations.
package domain
