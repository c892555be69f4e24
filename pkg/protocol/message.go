// Package protocol defines the websocket message types the robot core emits
// to UI clients and the fleet monitor. The envelope is shared by the local
// event push and the outbound monitor relay.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// MessageType identifies the type of websocket message.
type MessageType string

const (
	// TypePosition reports the robot pose after each step.
	TypePosition MessageType = "update_position"
	// TypePath reports a newly adopted route; an empty path clears the display.
	TypePath MessageType = "new_path"
	// TypeObstacles reports the full dynamic obstacle set.
	TypeObstacles MessageType = "update_obstacles"
	// TypeError reports a recoverable navigation error.
	TypeError MessageType = "navigation_error"
	// TypeState reports controller state transitions.
	TypeState MessageType = "state_changed"
)

// Message is the base wrapper for all websocket messages.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, data any) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("protocol: marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct.
func (m *Message) ParseData(v any) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message.
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes.
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("protocol: parse message: %w", err)
	}
	return &msg, nil
}

// Point is a grid coordinate in a wire payload.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PositionData carries the robot's pose.
type PositionData struct {
	Position Point `json:"position"`
	Angle    int   `json:"angle"`
}

// PathData carries an ordered route. An empty Path means "cleared".
type PathData struct {
	Path []Point `json:"path"`
}

// ObstaclesData carries the set of dynamically discovered obstacles.
type ObstaclesData struct {
	Obstacles []Point `json:"obstacles"`
}

// ErrorData carries a recoverable error message for UI display.
type ErrorData struct {
	Message string `json:"message"`
}

// StateData carries the controller's operating state name.
type StateData struct {
	State string `json:"state"`
}

// Points converts grid coordinates to wire points.
func Points(coords []worldmap.Coord) []Point {
	out := make([]Point, len(coords))
	for i, c := range coords {
		out[i] = Point{X: c.X, Y: c.Y}
	}
	return out
}
