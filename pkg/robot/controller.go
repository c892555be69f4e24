// Package robot implements the guide robot's navigation-and-control core:
// a single-consumer command loop that drives the state machine, executes
// planned routes step by step against the drivetrain, and replans around
// obstacles discovered mid-route.
//
// Concurrency model: exactly one goroutine runs the controller loop and is
// the sole writer of the pose, operating state, grid obstacles, and current
// POI. Producers only enqueue commands and read snapshots. The command queue
// is the only cross-goroutine structure.
package robot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/teslashibe/go-museumbot/internal/log"
	"github.com/teslashibe/go-museumbot/pkg/nav"
	"github.com/teslashibe/go-museumbot/pkg/speech"
	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// pollInterval bounds how long the loop waits for a command before doing a
// housekeeping pass (context check, dropped-command drain).
const pollInterval = 1 * time.Second

// turnThresholdDeg is the smallest heading delta worth a physical turn.
const turnThresholdDeg = 1

// Headings in degrees under the downward-Y canvas convention.
const (
	HeadingEast  = 0
	HeadingSouth = 90
	HeadingWest  = 180
	HeadingNorth = 270
)

// Pose is the robot's grid position and heading.
type Pose struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Angle int `json:"angle"`
}

// Coord returns the pose's grid coordinate.
func (p Pose) Coord() worldmap.Coord {
	return worldmap.Coord{X: p.X, Y: p.Y}
}

// Status is the read-only snapshot exposed to producers (the web layer).
type Status struct {
	State      string `json:"state"`
	Pose       Pose   `json:"pose"`
	Language   string `json:"language"`
	CurrentPOI string `json:"current_poi"`
	LastAnswer string `json:"last_answer"`
}

// Config wires a Controller. Doc, Grid, Drive and Announcer are required.
type Config struct {
	Doc       *worldmap.Document
	Grid      *worldmap.Grid
	Planner   *nav.Planner // defaults to nav.New()
	Drive     Drive
	Announcer speech.Announcer
	Responder speech.Responder // nil disables AI answers (canned apology)
	Events    EventSink        // defaults to NopSink
	Queue     *Queue           // defaults to a fresh queue
	Prompts   *speech.Catalog  // defaults to an empty catalog

	// Language is the initial guide language; invalid codes fall back to EN.
	Language string

	// CurrentPOI is the id of the POI the robot starts at (e.g. the entrance).
	CurrentPOI string
}

// Controller owns the robot's pose and operating state and processes one
// command at a time.
type Controller struct {
	doc       *worldmap.Document
	grid      *worldmap.Grid
	planner   *nav.Planner
	drive     Drive
	announcer speech.Announcer
	responder speech.Responder
	events    EventSink
	queue     *Queue
	prompts   *speech.Catalog

	handlers map[CommandKind]func(context.Context, Command)

	// mu guards the snapshot fields below. The loop goroutine is the only
	// writer; producers read through Snapshot.
	mu         sync.RWMutex
	pose       Pose
	state      State
	language   string
	currentPOI string
	lastAnswer string
}

// New validates the configuration and builds the controller, including its
// command dispatch table. Unknown command kinds can never reach a handler.
func New(cfg Config) (*Controller, error) {
	if cfg.Doc == nil || cfg.Grid == nil {
		return nil, errors.New("robot: map document and grid are required")
	}
	if cfg.Drive == nil {
		return nil, errors.New("robot: drive is required")
	}
	if cfg.Announcer == nil {
		return nil, errors.New("robot: announcer is required")
	}
	if cfg.Planner == nil {
		cfg.Planner = nav.New()
	}
	if cfg.Events == nil {
		cfg.Events = NopSink{}
	}
	if cfg.Queue == nil {
		cfg.Queue = NewQueue()
	}
	if cfg.Prompts == nil {
		cfg.Prompts = speech.NewCatalog()
	}

	lang := normalizeLang(cfg.Language)
	if lang == "" {
		lang = "EN"
	}

	start := cfg.Doc.Start()
	c := &Controller{
		doc:        cfg.Doc,
		grid:       cfg.Grid,
		planner:    cfg.Planner,
		drive:      cfg.Drive,
		announcer:  cfg.Announcer,
		responder:  cfg.Responder,
		events:     cfg.Events,
		queue:      cfg.Queue,
		prompts:    cfg.Prompts,
		pose:       Pose{X: start.X, Y: start.Y, Angle: cfg.Doc.Map.Metadata.StartAngle},
		state:      StateIdle,
		language:   lang,
		currentPOI: cfg.CurrentPOI,
	}
	c.handlers = map[CommandKind]func(context.Context, Command){
		CommandGoto:           c.handleGoto,
		CommandAsk:            c.handleAsk,
		CommandSetLang:        c.handleSetLang,
		CommandSetInitialLang: c.handleSetInitialLang,
	}
	return c, nil
}

// Queue returns the command queue producers enqueue into.
func (c *Controller) Queue() *Queue {
	return c.queue
}

// Snapshot returns a copy of the controller's observable state.
func (c *Controller) Snapshot() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		State:      c.state.String(),
		Pose:       c.pose,
		Language:   c.language,
		CurrentPOI: c.currentPOI,
		LastAnswer: c.lastAnswer,
	}
}

// Run executes the command loop until the context is cancelled. It must be
// the only goroutine calling into the controller's handlers.
func (c *Controller) Run(ctx context.Context) {
	log.Info("robot: controller ready", "pose", c.getPose(), "language", c.Snapshot().Language)
	for {
		if ctx.Err() != nil {
			return
		}
		cmd, ok := c.queue.Dequeue(pollInterval)
		if !ok {
			continue
		}
		c.process(ctx, cmd)
	}
}

// process dispatches one command, then discards anything that arrived while
// the handler was busy. Commands do not queue up behind a running operation;
// a busy robot drops them.
func (c *Controller) process(ctx context.Context, cmd Command) {
	handler, ok := c.handlers[cmd.Kind]
	if !ok {
		log.Warn("robot: unknown command kind", "kind", string(cmd.Kind), "id", cmd.ID)
		return
	}

	handler(ctx, cmd)

	for {
		stale, ok := c.queue.Dequeue(0)
		if !ok {
			return
		}
		log.Warn("robot: command dropped, robot was busy", "kind", string(stale.Kind), "id", stale.ID)
	}
}

// setState updates the operating state and notifies observers.
func (c *Controller) setState(s State) {
	c.mu.Lock()
	changed := c.state != s
	c.state = s
	c.mu.Unlock()
	if changed {
		c.events.StateChanged(s)
	}
}

func (c *Controller) setPose(p Pose) {
	c.mu.Lock()
	c.pose = p
	c.mu.Unlock()
}

func (c *Controller) getPose() Pose {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pose
}

func (c *Controller) setCurrentPOI(id string) {
	c.mu.Lock()
	c.currentPOI = id
	c.mu.Unlock()
}

// handleGoto plans a route to the target POI and walks it.
func (c *Controller) handleGoto(ctx context.Context, cmd Command) {
	poi, ok := c.doc.POIByID(cmd.Arg)
	if !ok {
		log.Warn("robot: GOTO unknown POI", "poi", cmd.Arg)
		c.events.NavigationError("Unknown destination: " + cmd.Arg)
		return
	}

	c.setState(StateNavigating)
	defer c.setState(StateIdle)

	lang := c.Snapshot().Language
	c.announce(ctx, c.departureText(poi, lang), lang)

	path := c.planner.FindPath(c.grid, c.getPose().Coord(), poi.Coordinates)
	if len(path) == 0 {
		c.events.PathUpdate(nil) // clear any stale route on the client
		c.events.NavigationError("Cannot find a path to the destination.")
		return
	}
	c.events.PathUpdate(path)

	if !c.followPath(path, poi.Coordinates) {
		return
	}

	c.setCurrentPOI(poi.ID)
	c.announce(ctx, c.arrivalText(poi, lang), lang)
}

// followPath executes the route one cell at a time, replanning around
// obstacles the sensor reports. Returns false when the route was aborted.
func (c *Controller) followPath(path []worldmap.Coord, goal worldmap.Coord) bool {
	log.Info("robot: following path", "steps", len(path))

	// The first cell is usually where we already stand.
	if len(path) > 0 && path[0] == c.getPose().Coord() {
		path = path[1:]
	}

	for len(path) > 0 {
		target := path[0]
		path = path[1:]

		if c.drive.SenseObstacle() {
			log.Info("robot: obstacle sensed", "x", target.X, "y", target.Y)
			c.grid.MarkObstacle(target.X, target.Y)
			c.events.ObstacleUpdate(c.grid.DynamicObstacles())

			current := c.getPose().Coord()
			newPath := c.planner.FindPath(c.grid, current, goal)
			if len(newPath) == 0 {
				log.Warn("robot: replanning failed", "from", current, "to", goal)
				c.events.NavigationError("Cannot find a new path around the obstacle.")
				return false
			}
			c.events.PathUpdate(newPath)

			if newPath[0] == current {
				newPath = newPath[1:]
			}
			path = newPath
			if len(path) == 0 {
				break
			}
			target = path[0]
			path = path[1:]
		}

		pose := c.getPose()
		targetAngle, ok := headingFor(target.X-pose.X, target.Y-pose.Y)
		if !ok {
			log.Error("robot: invalid path segment, skipping", "from", pose.Coord(), "to", target)
			continue
		}

		turn := normalizeTurn(targetAngle - pose.Angle)
		if turn > turnThresholdDeg || turn < -turnThresholdDeg {
			if turn > 0 {
				c.drive.Turn(TurnRight)
			} else {
				c.drive.Turn(TurnLeft)
			}
			pose.Angle = targetAngle
		}

		c.drive.MoveForward()
		pose.X, pose.Y = target.X, target.Y
		c.setPose(pose)
		c.events.PositionUpdate(pose.X, pose.Y, pose.Angle)

		if poi, ok := c.doc.POIAt(target); ok {
			c.setCurrentPOI(poi.ID)
		}
	}

	log.Info("robot: finished path")
	return true
}

// handleAsk answers a visitor question through the AI responder.
func (c *Controller) handleAsk(ctx context.Context, cmd Command) {
	c.setState(StateSpeaking)
	defer c.setState(StateIdle)

	snap := c.Snapshot()
	c.announce(ctx, speech.Thinking(snap.Language), snap.Language)

	answer := speech.Apology(snap.Language)
	if c.responder != nil {
		reply, err := c.responder.Answer(ctx, cmd.Arg, snap.Language, c.doc.POIs, snap.CurrentPOI)
		if err != nil {
			log.Error("robot: AI answer failed", "err", err)
		} else {
			answer = reply
		}
	}

	c.mu.Lock()
	c.lastAnswer = answer
	c.mu.Unlock()

	c.announce(ctx, answer, snap.Language)
}

// handleSetLang switches the active language and confirms it aloud.
func (c *Controller) handleSetLang(ctx context.Context, cmd Command) {
	lang := normalizeLang(cmd.Arg)
	if lang == "" {
		log.Warn("robot: ignoring invalid language code", "code", cmd.Arg)
		return
	}
	c.mu.Lock()
	c.language = lang
	c.mu.Unlock()
	log.Info("robot: language set", "language", lang)
	c.announce(ctx, speech.LanguageSet(lang), lang)
}

// handleSetInitialLang sets the language without an announcement. Invalid
// codes fall back to English.
func (c *Controller) handleSetInitialLang(ctx context.Context, cmd Command) {
	lang := normalizeLang(cmd.Arg)
	if lang == "" {
		lang = "EN"
	}
	c.mu.Lock()
	c.language = lang
	c.mu.Unlock()
	log.Info("robot: initial language set", "language", lang)
}

func (c *Controller) announce(ctx context.Context, text, lang string) {
	if err := c.announcer.Announce(ctx, text, lang); err != nil {
		log.Error("robot: announcement failed", "err", err)
	}
}

func (c *Controller) departureText(poi worldmap.POI, lang string) string {
	if text, ok := c.prompts.Get(speech.DepartureKey(poi.ID, lang)); ok {
		return text
	}
	return speech.GenericDeparture(lang)
}

func (c *Controller) arrivalText(poi worldmap.POI, lang string) string {
	if text, ok := c.prompts.Get(speech.ArrivalKey(poi.ID, lang)); ok {
		return text
	}
	return speech.ComposeArrival(poi, lang)
}

// headingFor maps a single-cell delta to the required heading. Any delta
// other than one step along an axis is an invalid path segment.
func headingFor(dx, dy int) (int, bool) {
	switch {
	case dx == 1 && dy == 0:
		return HeadingEast, true
	case dx == -1 && dy == 0:
		return HeadingWest, true
	case dx == 0 && dy == 1:
		return HeadingSouth, true
	case dx == 0 && dy == -1:
		return HeadingNorth, true
	}
	return 0, false
}

// normalizeTurn wraps a heading delta into (-180, 180].
func normalizeTurn(deg int) int {
	if deg > 180 {
		deg -= 360
	}
	if deg <= -180 {
		deg += 360
	}
	return deg
}

// normalizeLang maps a language code to its canonical form, or "" when the
// code is not supported.
func normalizeLang(code string) string {
	switch strings.ToUpper(code) {
	case "EN":
		return "EN"
	case "ZH":
		return "ZH"
	}
	return ""
}
