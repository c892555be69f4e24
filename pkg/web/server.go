// Package web provides the visitor-facing HTTP surface: REST endpoints that
// enqueue commands for the robot and a websocket stream of navigation events.
// Handlers never touch controller state directly; they enqueue commands and
// read snapshots, keeping the single-writer model intact.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-museumbot/internal/log"
	"github.com/teslashibe/go-museumbot/pkg/hub"
	"github.com/teslashibe/go-museumbot/pkg/robot"
	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// Server is the museumbot web server.
type Server struct {
	app  *fiber.App
	port string

	controller *robot.Controller
	doc        *worldmap.Document
	events     *hub.Hub
}

// NewServer creates the web server. The events hub is started by Start.
func NewServer(port string, controller *robot.Controller, doc *worldmap.Document, events *hub.Hub) *Server {
	s := &Server{
		port:       port,
		controller: controller,
		doc:        doc,
		events:     events,
	}

	app := fiber.New(fiber.Config{
		AppName:               "Museumbot",
		DisableStartupMessage: true,
	})

	// CORS for local UI development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/status", s.handleStatus)
	api.Get("/pois", s.handlePOIs)
	api.Post("/goto", s.handleGoto)
	api.Post("/ask", s.handleAsk)
	api.Post("/language", s.handleLanguage)
	api.Post("/initial-language", s.handleInitialLanguage)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	s.app = app
	return s
}

// Start runs the event hub and listens for HTTP connections. Blocks.
func (s *Server) Start() error {
	go s.events.Run()
	log.Info("web: listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handleEventsWS attaches a UI client to the event hub.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	hub.NewClient(s.events, c).Run()
}
