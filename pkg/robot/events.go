package robot

import "github.com/teslashibe/go-museumbot/pkg/worldmap"

// EventSink receives state updates from the controller. Implementations must
// be safe to call from the controller goroutine and must not block it for
// long; the web layer fans events out to websocket clients, tests record
// them.
type EventSink interface {
	// PositionUpdate reports the robot's pose after each completed step.
	PositionUpdate(x, y, angle int)

	// PathUpdate reports a newly adopted route. An empty path means
	// "no path, clear the display".
	PathUpdate(path []worldmap.Coord)

	// ObstacleUpdate reports the full set of dynamically discovered
	// obstacles whenever a new one is found.
	ObstacleUpdate(obstacles []worldmap.Coord)

	// NavigationError reports a recoverable failure for UI display.
	NavigationError(message string)

	// StateChanged reports controller state transitions.
	StateChanged(state State)
}

// NopSink discards all events. Useful for tests and headless runs.
type NopSink struct{}

func (NopSink) PositionUpdate(x, y, angle int)            {}
func (NopSink) PathUpdate(path []worldmap.Coord)          {}
func (NopSink) ObstacleUpdate(obstacles []worldmap.Coord) {}
func (NopSink) NavigationError(message string)            {}
func (NopSink) StateChanged(state State)                  {}
