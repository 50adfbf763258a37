// Package datafile reads the optional CSV and GeoJSON inputs a dashboard
// build resolves before falling back to synthetic data.
package datafile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// Input file names under the data directory.
const (
	TemperatureFile = "temperature_data.csv"
	RainfallFile    = "rainfall_data.csv"
	WindFile        = "wind_data.csv"
	GeographyFile   = "india_states.geojson"
)

var (
	temperatureColumns = []string{"State", "Month", "Avg_Temp"}
	rainfallColumns    = []string{"State", "Month", "Rainfall"}
	windColumns        = []string{"State", "Latitude", "Longitude", "U", "V"}
)

// Store reads input files from a single data directory. A missing file
// surfaces as fs.ErrNotExist; a file with an unusable structure surfaces
// as *domain.SchemaError. Either way the caller decides how to degrade.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at the given data directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// LoadTemperatures reads the monthly temperature grid file. Rows may
// appear in any order and months may use full names; duplicates are
// preserved in file order for the caller to resolve.
func (s *Store) LoadTemperatures() ([]domain.Observation, error) {
	return s.loadGrid(TemperatureFile, temperatureColumns)
}

// LoadRainfall reads the monthly rainfall grid file.
func (s *Store) LoadRainfall() ([]domain.Observation, error) {
	return s.loadGrid(RainfallFile, rainfallColumns)
}

func (s *Store) loadGrid(name string, columns []string) ([]domain.Observation, error) {
	rows, index, err := s.readCSV(name, columns)
	if err != nil {
		return nil, err
	}

	valueCol := columns[len(columns)-1]
	observations := make([]domain.Observation, 0, len(rows))
	for i, row := range rows {
		state := row[index["State"]]
		if state == "" {
			return nil, &domain.SchemaError{File: name, Row: i + 1, Detail: "empty State"}
		}

		month, ok := domain.NormalizeMonth(row[index["Month"]])
		if !ok {
			return nil, &domain.SchemaError{
				File: name, Row: i + 1,
				Detail: fmt.Sprintf("unknown month %q", row[index["Month"]]),
			}
		}

		value, err := parseFloat(name, i+1, valueCol, row[index[valueCol]])
		if err != nil {
			return nil, err
		}

		observations = append(observations, domain.Observation{State: state, Month: month, Value: value})
	}
	return observations, nil
}

// LoadWind reads the wind vector file: one row per state with eastward and
// northward components in km/h at the state's coordinates.
func (s *Store) LoadWind() ([]domain.WindVector, error) {
	rows, index, err := s.readCSV(WindFile, windColumns)
	if err != nil {
		return nil, err
	}

	vectors := make([]domain.WindVector, 0, len(rows))
	for i, row := range rows {
		state := row[index["State"]]
		if state == "" {
			return nil, &domain.SchemaError{File: WindFile, Row: i + 1, Detail: "empty State"}
		}

		var fields [4]float64
		for j, col := range []string{"Latitude", "Longitude", "U", "V"} {
			v, err := parseFloat(WindFile, i+1, col, row[index[col]])
			if err != nil {
				return nil, err
			}
			fields[j] = v
		}

		vectors = append(vectors, domain.WindVector{
			State: state,
			Geo:   domain.Geo{Lat: fields[0], Lon: fields[1]},
			U:     fields[2],
			V:     fields[3],
		})
	}
	return vectors, nil
}

// readCSV opens a file, verifies the required columns, and returns its
// data rows plus a header index.
func (s *Store) readCSV(name string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, &domain.SchemaError{File: name, Detail: err.Error()}
	}
	if len(all) == 0 {
		return nil, nil, &domain.SchemaError{File: name, Detail: "empty file"}
	}

	index := make(map[string]int, len(all[0]))
	for i, h := range all[0] {
		index[h] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &domain.SchemaError{File: name, Missing: missing}
	}

	return all[1:], index, nil
}

func parseFloat(file string, row int, column, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &domain.SchemaError{
			File: file, Row: row,
			Detail: fmt.Sprintf("%s %q is not numeric", column, value),
		}
	}
	return v, nil
}
