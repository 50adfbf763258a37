// Command genfixtures writes a reproducible set of input data files for the
// dashboard: temperature and rainfall grids, wind vectors, and a simplified
// state boundary file. It uses the same synthesizer as the build itself, so
// a dashboard built from these fixtures resolves everything from files and
// synthesizes nothing.
//
// Usage:
//
//	go run ./cmd/genfixtures -out data -seed 20240426
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/weather-dashboard/internal/adapter/datafile"
	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "directory to write the fixture files to")
	seed := flag.Int64("seed", 20240426, "synthesis seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	synth := domain.NewSynthesizer(*seed)
	states := domain.ReferenceStates()

	temps, err := synth.Grid(domain.KindTemperature, states)
	if err != nil {
		return err
	}
	if err := writeGrid(filepath.Join(*out, datafile.TemperatureFile), "Avg_Temp", temps); err != nil {
		return err
	}
	log.Printf("temperature: %d rows", len(temps))

	rain, err := synth.Grid(domain.KindRainfall, states)
	if err != nil {
		return err
	}
	if err := writeGrid(filepath.Join(*out, datafile.RainfallFile), "Rainfall", rain); err != nil {
		return err
	}
	log.Printf("rainfall: %d rows", len(rain))

	vectors := windVectors(*seed)
	if err := writeWind(filepath.Join(*out, datafile.WindFile), vectors); err != nil {
		return err
	}
	log.Printf("wind: %d vectors", len(vectors))

	if err := writeGeography(filepath.Join(*out, datafile.GeographyFile)); err != nil {
		return err
	}
	log.Printf("geography: %d states", domain.BuiltinGeography().Len())

	log.Printf("fixtures written to %s", *out)
	return nil
}

func writeGrid(path, valueColumn string, observations []domain.Observation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"State", "Month", valueColumn}); err != nil {
		return err
	}
	for _, o := range observations {
		row := []string{o.State, o.Month, strconv.FormatFloat(o.Value, 'f', 1, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// windVectors draws one vector per reference state with components in
// [-10, 10) km/h, plausible monthly means at the default quiver scale.
func windVectors(seed int64) []domain.WindVector {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	geo := domain.BuiltinGeography()

	vectors := make([]domain.WindVector, 0, geo.Len())
	for _, sg := range geo.States() {
		vectors = append(vectors, domain.WindVector{
			State: sg.State,
			Geo:   sg.Centroid,
			U:     rng.Float64()*20 - 10,
			V:     rng.Float64()*20 - 10,
		})
	}
	return vectors
}

func writeWind(path string, vectors []domain.WindVector) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"State", "Latitude", "Longitude", "U", "V"}); err != nil {
		return err
	}
	for _, v := range vectors {
		row := []string{
			v.State,
			strconv.FormatFloat(v.Geo.Lat, 'f', 4, 64),
			strconv.FormatFloat(v.Geo.Lon, 'f', 4, 64),
			strconv.FormatFloat(v.U, 'f', 1, 64),
			strconv.FormatFloat(v.V, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

type geoCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
	Geometry   geoGeometry       `json:"geometry"`
}

type geoGeometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// writeGeography emits square outlines around each built-in centroid. Real
// boundary exports work too; this keeps the fixture self-contained.
func writeGeography(path string) error {
	geo := domain.BuiltinGeography()
	fc := geoCollection{Type: "FeatureCollection", Features: make([]geoFeature, 0, geo.Len())}

	const half = 1.5 // degrees
	for _, sg := range geo.States() {
		lat, lon := sg.Centroid.Lat, sg.Centroid.Lon
		ring := [][]float64{
			{lon - half, lat - half},
			{lon + half, lat - half},
			{lon + half, lat + half},
			{lon - half, lat + half},
			{lon - half, lat - half},
		}
		fc.Features = append(fc.Features, geoFeature{
			Type:       "Feature",
			Properties: map[string]string{"name": sg.State},
			Geometry:   geoGeometry{Type: "Polygon", Coordinates: [][][]float64{ring}},
		})
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
