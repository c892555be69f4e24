package worldmap

import "errors"

// Sentinel errors for malformed static map data. All of them are fatal at
// load time: the process cannot start without a usable map.
var (
	// ErrEmptyGrid is returned when the map matrix or its first row is empty.
	ErrEmptyGrid = errors.New("worldmap: empty grid")

	// ErrRaggedGrid is returned when rows have inconsistent widths.
	ErrRaggedGrid = errors.New("worldmap: ragged grid")

	// ErrBadCell is returned when a cell is neither open nor blocked.
	ErrBadCell = errors.New("worldmap: invalid cell value")

	// ErrBadMetadata is returned when required metadata is missing or invalid.
	ErrBadMetadata = errors.New("worldmap: invalid metadata")

	// ErrBadPOI is returned when a POI record is malformed.
	ErrBadPOI = errors.New("worldmap: invalid POI")
)
