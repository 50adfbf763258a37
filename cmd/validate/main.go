// Command validate checks the dashboard's input files and, optionally, a
// built dashboard: CSV schemas, grid cell integrity, value plausibility,
// geography coverage, and asset well-formedness. It is meant to run before
// committing new data files or after a build.
//
// Usage:
//
//	go run ./cmd/validate -data-dir data -assets-dir assets
package main

import (
	"bytes"
	"encoding/xml"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/weather-dashboard/internal/adapter/datafile"
	"github.com/couchcryptid/weather-dashboard/internal/chart"
	"github.com/couchcryptid/weather-dashboard/internal/dashboard"
	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// Plausibility bounds for file values. Wider than the synthesizer's clamps
// so real extremes pass, tight enough to catch unit mix-ups.
const (
	tempMin = -25.0
	tempMax = 55.0
	rainMax = 10000.0
	windMax = 200.0
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "", "directory containing the input data files")
	assetsDir := flag.String("assets-dir", "", "directory containing a built dashboard (optional)")
	flag.Parse()

	if *dataDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dataDir, *assetsDir); code != 0 {
		os.Exit(code)
	}
}

func run(dataDir, assetsDir string) int {
	fmt.Println("=== Weather Dashboard Data Validation ===")
	fmt.Println()

	// ── Load input files ──
	in := loadInputs(datafile.NewStore(dataDir))

	// ── Run validation phases ──
	phases := []*phase{
		validateSchemas(in),
		validateGrids(in),
		validateWind(in),
		validateGeography(in),
	}
	if assetsDir != "" {
		phases = append(phases, validateAssets(assetsDir))
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-30s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Inputs: %d temperature rows, %d rainfall rows, %d wind vectors, %d boundary states\n",
		len(in.temps), len(in.rain), len(in.wind), in.geo.Len())

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

type inputs struct {
	temps    []domain.Observation
	tempsErr error
	rain     []domain.Observation
	rainErr  error
	wind     []domain.WindVector
	windErr  error
	geo      domain.Geography
	geoErr   error
}

func loadInputs(store *datafile.Store) inputs {
	var in inputs
	in.temps, in.tempsErr = store.LoadTemperatures()
	in.rain, in.rainErr = store.LoadRainfall()
	in.wind, in.windErr = store.LoadWind()
	in.geo, in.geoErr = store.LoadGeography()
	return in
}

// ── Validation phases ──

// validateSchemas reports files that exist but cannot be loaded. Missing
// files are fine: the build synthesizes or degrades around them.
func validateSchemas(in inputs) *phase {
	p := &phase{name: "Input file schemas"}
	for _, err := range []error{in.tempsErr, in.rainErr, in.windErr, in.geoErr} {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		p.errorf("%v", err)
	}
	return p
}

func validateGrids(in inputs) *phase {
	p := &phase{name: "Grid cell integrity"}
	if in.tempsErr == nil {
		checkGrid(p, datafile.TemperatureFile, in.temps, tempMin, tempMax)
	}
	if in.rainErr == nil {
		checkGrid(p, datafile.RainfallFile, in.rain, 0, rainMax)
	}
	return p
}

func checkGrid(p *phase, file string, observations []domain.Observation, lo, hi float64) {
	type cell struct{ state, month string }
	seen := make(map[cell]int, len(observations))

	for i, o := range observations {
		c := cell{state: o.State, month: o.Month}
		if prev, dup := seen[c]; dup {
			p.errorf("%s: duplicate cell %s/%s (rows %d and %d)", file, o.State, o.Month, prev, i+1)
		}
		seen[c] = i + 1

		if o.Value < lo || o.Value > hi {
			p.errorf("%s: %s/%s value %.1f outside [%g, %g]", file, o.State, o.Month, o.Value, lo, hi)
		}
	}
}

func validateWind(in inputs) *phase {
	p := &phase{name: "Wind vector sanity"}
	if in.windErr != nil {
		return p
	}

	seen := make(map[string]bool, len(in.wind))
	for _, v := range in.wind {
		if seen[v.State] {
			p.errorf("%s: duplicate state %q", datafile.WindFile, v.State)
		}
		seen[v.State] = true

		if v.U < -windMax || v.U > windMax || v.V < -windMax || v.V > windMax {
			p.errorf("%s: %s components (%.1f, %.1f) outside ±%g km/h", datafile.WindFile, v.State, v.U, v.V, windMax)
		}
	}
	return p
}

// validateGeography flags reference states the boundary file does not
// cover; the map renders them as grey placeholders.
func validateGeography(in inputs) *phase {
	p := &phase{name: "Geography coverage"}
	if in.geoErr != nil {
		return p
	}

	for _, state := range domain.ReferenceStates() {
		if _, ok := in.geo.Centroid(state); !ok {
			p.errorf("%s: reference state %q has no feature", datafile.GeographyFile, state)
		}
	}
	return p
}

func validateAssets(dir string) *phase {
	p := &phase{name: "Dashboard assets"}

	html, err := os.ReadFile(filepath.Join(dir, dashboard.IndexFile))
	if err != nil {
		p.errorf("read %s: %v", dashboard.IndexFile, err)
		return p
	}
	if !strings.Contains(string(html), "</html>") {
		p.errorf("%s is truncated", dashboard.IndexFile)
	}

	for _, name := range []string{chart.TemperatureMapFile, chart.RainfallHeatmapFile, chart.RainfallBarsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			p.errorf("missing chart asset %s", name)
		}
	}

	svgs, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		p.errorf("scan %s: %v", dir, err)
		return p
	}
	for _, path := range svgs {
		data, err := os.ReadFile(path)
		if err != nil {
			p.errorf("read %s: %v", filepath.Base(path), err)
			continue
		}
		if err := wellFormedXML(data); err != nil {
			p.errorf("%s is not well-formed XML: %v", filepath.Base(path), err)
		}
	}
	return p
}

func wellFormedXML(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		if _, err := dec.Token(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
