package robot

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CommandKind identifies what a command asks the robot to do.
type CommandKind string

const (
	// CommandGoto navigates to a POI; the argument is the POI id.
	CommandGoto CommandKind = "GOTO"
	// CommandAsk answers a visitor question; the argument is the question text.
	CommandAsk CommandKind = "ASK"
	// CommandSetLang switches the active language and announces the change.
	CommandSetLang CommandKind = "SET_LANG"
	// CommandSetInitialLang sets the language silently (first UI selection).
	CommandSetInitialLang CommandKind = "SET_INITIAL_LANG"
)

// Command is a single unit of work for the controller. Commands are created
// by producers, consumed exactly once, then discarded.
type Command struct {
	ID   string
	Kind CommandKind
	Arg  string
}

// Queue is the concurrency boundary between producers (web handlers) and the
// single controller goroutine. Enqueue never blocks and the queue is
// unbounded; Dequeue waits up to a timeout so the consumer loop can do
// periodic housekeeping when idle.
type Queue struct {
	mu     sync.Mutex
	items  []Command
	notify chan struct{}
}

// NewQueue creates an empty command queue.
func NewQueue() *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
	}
}

// Enqueue appends a command and returns it with its assigned id.
// Safe for concurrent use; never blocks the producer.
func (q *Queue) Enqueue(kind CommandKind, arg string) Command {
	cmd := Command{
		ID:   uuid.NewString(),
		Kind: kind,
		Arg:  arg,
	}

	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
		// Consumer already has a wakeup pending.
	}
	return cmd
}

// Dequeue removes and returns the oldest command, waiting up to timeout for
// one to arrive. The second return value is false when the wait expired.
func (q *Queue) Dequeue(timeout time.Duration) (Command, bool) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			cmd := q.items[0]
			q.items = q.items[1:]
			if len(q.items) > 0 {
				select {
				case q.notify <- struct{}{}:
				default:
				}
			}
			q.mu.Unlock()
			return cmd, true
		}
		q.mu.Unlock()

		select {
		case <-q.notify:
		case <-deadline.C:
			return Command{}, false
		}
	}
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
