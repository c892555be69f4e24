package robot

// State is the controller's operating state. Commands are admitted only in
// StateIdle; anything arriving while busy is dropped, not queued for later.
type State int

const (
	// StateIdle means the robot is waiting for a command.
	StateIdle State = iota
	// StateNavigating means a GOTO route is being executed.
	StateNavigating
	// StateSpeaking means a question is being answered aloud.
	StateSpeaking
)

// String returns the state name used in logs and status payloads.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateNavigating:
		return "NAVIGATING"
	case StateSpeaking:
		return "SPEAKING"
	default:
		return "UNKNOWN"
	}
}
