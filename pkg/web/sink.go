package web

import (
	"github.com/teslashibe/go-museumbot/internal/log"
	"github.com/teslashibe/go-museumbot/pkg/hub"
	"github.com/teslashibe/go-museumbot/pkg/protocol"
	"github.com/teslashibe/go-museumbot/pkg/robot"
	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// Emitter receives encoded event envelopes. The local websocket hub and the
// fleet-monitor forwarder both implement it.
type Emitter interface {
	Emit(msg *protocol.Message)
}

// Sink turns controller events into protocol messages and fans them out to
// every emitter. It implements robot.EventSink; calls come from the
// controller goroutine and must not block, which the hub and forwarder
// guarantee by dropping under pressure.
type Sink struct {
	emitters []Emitter
}

// NewSink creates a sink that forwards events to the given emitters.
func NewSink(emitters ...Emitter) *Sink {
	return &Sink{emitters: emitters}
}

var _ robot.EventSink = (*Sink)(nil)

// PositionUpdate implements robot.EventSink.
func (s *Sink) PositionUpdate(x, y, angle int) {
	s.emit(protocol.TypePosition, protocol.PositionData{
		Position: protocol.Point{X: x, Y: y},
		Angle:    angle,
	})
}

// PathUpdate implements robot.EventSink.
func (s *Sink) PathUpdate(path []worldmap.Coord) {
	s.emit(protocol.TypePath, protocol.PathData{Path: protocol.Points(path)})
}

// ObstacleUpdate implements robot.EventSink.
func (s *Sink) ObstacleUpdate(obstacles []worldmap.Coord) {
	s.emit(protocol.TypeObstacles, protocol.ObstaclesData{Obstacles: protocol.Points(obstacles)})
}

// NavigationError implements robot.EventSink.
func (s *Sink) NavigationError(message string) {
	s.emit(protocol.TypeError, protocol.ErrorData{Message: message})
}

// StateChanged implements robot.EventSink.
func (s *Sink) StateChanged(state robot.State) {
	s.emit(protocol.TypeState, protocol.StateData{State: state.String()})
}

func (s *Sink) emit(msgType protocol.MessageType, data any) {
	msg, err := protocol.NewMessage(msgType, data)
	if err != nil {
		log.Error("web: encode event", "type", string(msgType), "err", err)
		return
	}
	for _, e := range s.emitters {
		e.Emit(msg)
	}
}

// HubEmitter pushes envelopes to a local websocket hub.
type HubEmitter struct {
	hub *hub.Hub
}

// NewHubEmitter wraps a hub as an Emitter.
func NewHubEmitter(h *hub.Hub) *HubEmitter {
	return &HubEmitter{hub: h}
}

// Emit broadcasts the message to all connected UI clients.
func (e *HubEmitter) Emit(msg *protocol.Message) {
	data, err := msg.Bytes()
	if err != nil {
		log.Error("web: encode envelope", "err", err)
		return
	}
	e.hub.Broadcast(data)
}
