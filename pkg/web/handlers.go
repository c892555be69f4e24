package web

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/go-museumbot/pkg/robot"
)

// GotoRequest asks the robot to navigate to a POI.
type GotoRequest struct {
	POIID string `json:"poi_id"`
}

// AskRequest asks the robot a question.
type AskRequest struct {
	Question string `json:"question"`
}

// LanguageRequest changes the guide language.
type LanguageRequest struct {
	Language string `json:"language"`
}

// CommandResponse acknowledges an enqueued command. Acceptance is not
// execution: a busy robot drops commands and reports it over the event
// stream.
type CommandResponse struct {
	Success   bool   `json:"success"`
	CommandID string `json:"command_id"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "OK",
		"clients": s.events.ClientCount(),
		"time":    time.Now().Format(time.RFC3339),
	})
}

// StatusResponse is the robot snapshot plus the web layer's own counters.
type StatusResponse struct {
	robot.Status
	Clients int `json:"clients"`
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{
		Status:  s.controller.Snapshot(),
		Clients: s.events.ClientCount(),
	})
}

func (s *Server) handlePOIs(c *fiber.Ctx) error {
	return c.JSON(s.doc.POIs)
}

func (s *Server) handleGoto(c *fiber.Ctx) error {
	var req GotoRequest
	if err := c.BodyParser(&req); err != nil || req.POIID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "poi_id is required")
	}
	if _, ok := s.doc.POIByID(req.POIID); !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown POI: "+req.POIID)
	}
	cmd := s.controller.Queue().Enqueue(robot.CommandGoto, req.POIID)
	return c.JSON(CommandResponse{Success: true, CommandID: cmd.ID})
}

func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req AskRequest
	if err := c.BodyParser(&req); err != nil || req.Question == "" {
		return fiber.NewError(fiber.StatusBadRequest, "question is required")
	}
	cmd := s.controller.Queue().Enqueue(robot.CommandAsk, req.Question)
	return c.JSON(CommandResponse{Success: true, CommandID: cmd.ID})
}

func (s *Server) handleLanguage(c *fiber.Ctx) error {
	var req LanguageRequest
	if err := c.BodyParser(&req); err != nil || req.Language == "" {
		return fiber.NewError(fiber.StatusBadRequest, "language is required")
	}
	cmd := s.controller.Queue().Enqueue(robot.CommandSetLang, req.Language)
	return c.JSON(CommandResponse{Success: true, CommandID: cmd.ID})
}

func (s *Server) handleInitialLanguage(c *fiber.Ctx) error {
	var req LanguageRequest
	if err := c.BodyParser(&req); err != nil || req.Language == "" {
		return fiber.NewError(fiber.StatusBadRequest, "language is required")
	}
	cmd := s.controller.Queue().Enqueue(robot.CommandSetInitialLang, req.Language)
	return c.JSON(CommandResponse{Success: true, CommandID: cmd.ID})
}
