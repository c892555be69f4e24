package robot

import "github.com/teslashibe/go-museumbot/internal/log"

// TurnDirection selects the rotation direction for a fixed 90 degree turn.
type TurnDirection string

const (
	TurnLeft  TurnDirection = "left"
	TurnRight TurnDirection = "right"
)

// Drive is the drivetrain and obstacle sensor the controller executes routes
// against. Calls are blocking from the controller's perspective; timeouts and
// hardware failures are the implementation's responsibility.
type Drive interface {
	// SenseObstacle checks the ultrasonic sensor before entering the next
	// cell. True means the cell ahead is blocked.
	SenseObstacle() bool

	// MoveForward advances the robot by one grid unit.
	MoveForward()

	// Turn rotates the robot in place by one step in the given direction.
	Turn(direction TurnDirection)
}

// StubDrive is a no-hardware Drive that only logs. It stands in for the real
// motor controller during bench runs, exactly like a simulated drivetrain.
type StubDrive struct {
	// GridUnitCm is the physical length of one forward move, for log output.
	GridUnitCm float64
}

// SenseObstacle always reports a clear cell.
func (d *StubDrive) SenseObstacle() bool {
	return false
}

// MoveForward logs the move that real hardware would perform.
func (d *StubDrive) MoveForward() {
	log.Debug("drive: move forward", "distance_cm", d.GridUnitCm)
}

// Turn logs the turn that real hardware would perform.
func (d *StubDrive) Turn(direction TurnDirection) {
	log.Debug("drive: turn", "direction", string(direction))
}
