// Package worldmap models the museum floor as an occupancy grid with a set
// of points of interest. The static map document is loaded once at startup;
// only dynamic obstacle discovery mutates the grid afterwards.
//
// Coordinates follow the canvas convention: x grows east, y grows south
// (downward-Y). Headings elsewhere in the codebase assume the same axes.
package worldmap

import (
	"encoding/json"
	"fmt"
	"os"
)

// Cell states in the map matrix.
const (
	CellOpen    = 0
	CellBlocked = 1
)

// Coord is an integer grid coordinate.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Text is a bilingual string pair.
type Text struct {
	EN string `json:"en"`
	ZH string `json:"zh"`
}

// In returns the text for the given language code ("EN" or "ZH").
// Unknown codes fall back to English.
func (t Text) In(lang string) string {
	if lang == "ZH" {
		return t.ZH
	}
	return t.EN
}

// POI is a named, located exhibit on the grid. POI records are static
// reference data; the core only ever refers to them by id.
type POI struct {
	ID          string `json:"id"`
	Name        Text   `json:"name"`
	Description Text   `json:"description"`
	Coordinates Coord  `json:"coordinates"`
}

// Metadata carries the robot's initial placement and the physical size of
// one grid cell.
type Metadata struct {
	StartX     int     `json:"start_x"`
	StartY     int     `json:"start_y"`
	StartAngle int     `json:"start_angle"`
	GridUnitCm float64 `json:"grid_unit_cm"`
}

// MapSection is the map half of the static document.
type MapSection struct {
	Metadata Metadata `json:"metadata"`
	Grid     [][]int  `json:"grid"`
}

// Document is the static map/POI file as loaded from disk.
// Marshal reproduces the original matrix and POI ordering exactly.
type Document struct {
	Map  MapSection `json:"map"`
	POIs []POI      `json:"pois"`
}

// Load reads and validates a map document from disk.
// Any structural problem is an error; callers treat it as fatal.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worldmap: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a map document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("worldmap: decode document: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Marshal encodes the document back to JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

func (d *Document) validate() error {
	grid := d.Map.Grid
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ErrEmptyGrid
	}
	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			return fmt.Errorf("worldmap: row %d has %d cells, want %d: %w", y, len(row), width, ErrRaggedGrid)
		}
		for x, cell := range row {
			if cell != CellOpen && cell != CellBlocked {
				return fmt.Errorf("worldmap: cell (%d,%d) has value %d: %w", x, y, cell, ErrBadCell)
			}
		}
	}

	meta := d.Map.Metadata
	if meta.GridUnitCm <= 0 {
		return fmt.Errorf("worldmap: grid_unit_cm %v: %w", meta.GridUnitCm, ErrBadMetadata)
	}
	if meta.StartX < 0 || meta.StartX >= width || meta.StartY < 0 || meta.StartY >= len(grid) {
		return fmt.Errorf("worldmap: start (%d,%d) out of bounds: %w", meta.StartX, meta.StartY, ErrBadMetadata)
	}
	if grid[meta.StartY][meta.StartX] != CellOpen {
		return fmt.Errorf("worldmap: start (%d,%d) is blocked: %w", meta.StartX, meta.StartY, ErrBadMetadata)
	}

	seen := make(map[string]bool, len(d.POIs))
	for _, poi := range d.POIs {
		if poi.ID == "" {
			return fmt.Errorf("worldmap: POI with empty id: %w", ErrBadPOI)
		}
		if seen[poi.ID] {
			return fmt.Errorf("worldmap: duplicate POI id %q: %w", poi.ID, ErrBadPOI)
		}
		seen[poi.ID] = true
		c := poi.Coordinates
		if c.X < 0 || c.X >= width || c.Y < 0 || c.Y >= len(grid) {
			return fmt.Errorf("worldmap: POI %q at (%d,%d) out of bounds: %w", poi.ID, c.X, c.Y, ErrBadPOI)
		}
	}
	return nil
}

// Start returns the robot's initial coordinate from the metadata.
func (d *Document) Start() Coord {
	return Coord{X: d.Map.Metadata.StartX, Y: d.Map.Metadata.StartY}
}

// POIByID returns the POI with the given id.
func (d *Document) POIByID(id string) (POI, bool) {
	for _, poi := range d.POIs {
		if poi.ID == id {
			return poi, true
		}
	}
	return POI{}, false
}

// POIAt returns the POI located exactly at the given coordinate.
func (d *Document) POIAt(c Coord) (POI, bool) {
	for _, poi := range d.POIs {
		if poi.Coordinates == c {
			return poi, true
		}
	}
	return POI{}, false
}

// NewGrid builds the mutable occupancy grid from the document's matrix.
// The grid gets its own copy of the rows; the document stays pristine for
// round-trip serialization.
func (d *Document) NewGrid() *Grid {
	cells := make([][]int, len(d.Map.Grid))
	for y, row := range d.Map.Grid {
		cells[y] = make([]int, len(row))
		copy(cells[y], row)
	}
	return &Grid{cells: cells, width: len(cells[0]), height: len(cells)}
}
