package datafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/weather-dashboard/internal/domain"
)

// GeoJSON feature collection, following the standard structure.
// Coordinates stay raw until the geometry type is known.

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   geometry       `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// statePropertyKeys are tried in order to find a feature's state name.
// Indian administrative boundary exports commonly use "st_nm".
var statePropertyKeys = []string{"State", "st_nm", "name", "NAME_1"}

// LoadGeography reads the state boundary file. Point features become bare
// centroids; Polygon and MultiPolygon features keep their outer ring for
// outline drawing, with the centroid averaged from the ring.
func (s *Store) LoadGeography() (domain.Geography, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, GeographyFile))
	if err != nil {
		return domain.Geography{}, fmt.Errorf("open %s: %w", GeographyFile, err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return domain.Geography{}, &domain.SchemaError{File: GeographyFile, Detail: err.Error()}
	}

	var states []domain.StateGeography
	for _, f := range fc.Features {
		name := stateName(f.Properties)
		if name == "" {
			continue
		}
		sg, ok := parseGeometry(name, f.Geometry)
		if !ok {
			continue
		}
		states = append(states, sg)
	}

	if len(states) == 0 {
		return domain.Geography{}, &domain.SchemaError{File: GeographyFile, Detail: "no usable features"}
	}
	return domain.NewGeography(states), nil
}

func stateName(properties map[string]any) string {
	for _, key := range statePropertyKeys {
		if v, ok := properties[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func parseGeometry(state string, g geometry) (domain.StateGeography, bool) {
	switch g.Type {
	case "Point":
		var coord []float64
		if err := json.Unmarshal(g.Coordinates, &coord); err != nil || len(coord) < 2 {
			return domain.StateGeography{}, false
		}
		return domain.StateGeography{
			State:    state,
			Centroid: domain.Geo{Lat: coord[1], Lon: coord[0]},
		}, true

	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil || len(rings) == 0 {
			return domain.StateGeography{}, false
		}
		return fromRing(state, rings[0])

	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil || len(polys) == 0 {
			return domain.StateGeography{}, false
		}
		// Use the polygon with the most vertices as the state's outline.
		best := -1
		for i, p := range polys {
			if len(p) == 0 || len(p[0]) == 0 {
				continue
			}
			if best == -1 || len(p[0]) > len(polys[best][0]) {
				best = i
			}
		}
		if best == -1 {
			return domain.StateGeography{}, false
		}
		return fromRing(state, polys[best][0])

	default:
		return domain.StateGeography{}, false
	}
}

// fromRing converts a GeoJSON [lon, lat] ring to a boundary with an
// averaged centroid. The closing vertex is dropped when it repeats the
// first.
func fromRing(state string, ring [][]float64) (domain.StateGeography, bool) {
	if len(ring) == 0 {
		return domain.StateGeography{}, false
	}
	if len(ring) > 1 && ring[0][0] == ring[len(ring)-1][0] && ring[0][1] == ring[len(ring)-1][1] {
		ring = ring[:len(ring)-1]
	}

	boundary := make([]domain.Geo, 0, len(ring))
	var sumLat, sumLon float64
	for _, coord := range ring {
		if len(coord) < 2 {
			return domain.StateGeography{}, false
		}
		g := domain.Geo{Lat: coord[1], Lon: coord[0]}
		boundary = append(boundary, g)
		sumLat += g.Lat
		sumLon += g.Lon
	}

	n := float64(len(boundary))
	return domain.StateGeography{
		State:    state,
		Centroid: domain.Geo{Lat: sumLat / n, Lon: sumLon / n},
		Boundary: boundary,
	}, true
}
