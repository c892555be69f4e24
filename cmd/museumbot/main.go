// Museumbot - grid-navigating museum guide robot
// Serves the visitor UI, executes GOTO routes with obstacle replanning, and
// answers exhibit questions through an AI responder.
package main

import (
	"context"
	"flag"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/teslashibe/go-museumbot/internal/config"
	"github.com/teslashibe/go-museumbot/internal/log"
	"github.com/teslashibe/go-museumbot/pkg/hub"
	"github.com/teslashibe/go-museumbot/pkg/remote"
	"github.com/teslashibe/go-museumbot/pkg/robot"
	"github.com/teslashibe/go-museumbot/pkg/speech"
	"github.com/teslashibe/go-museumbot/pkg/web"
	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

func main() {
	cfg := parseFlags()
	if cfg.Debug {
		log.Init("debug")
	} else {
		log.Init("info")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	// Malformed static map data is fatal: the robot cannot start without a
	// usable floor plan.
	doc, err := worldmap.Load(cfg.DataFile)
	if err != nil {
		log.Fatal("failed to load map data", "path", cfg.DataFile, "err", err)
	}
	grid := doc.NewGrid()
	width, height := grid.Dimensions()
	log.Info("map loaded", "width", width, "height", height, "pois", len(doc.POIs))

	prompts, err := speech.LoadCatalog(filepath.Join(filepath.Dir(cfg.DataFile), "tts_prompts.json"))
	if err != nil {
		log.Fatal("failed to load TTS prompts", "err", err)
	}

	events := hub.New("events")
	emitters := []web.Emitter{web.NewHubEmitter(events)}

	var forwarder *remote.Forwarder
	if cfg.MonitorURL != "" {
		forwarder = remote.New(cfg.MonitorURL)
		forwarder.Start()
		defer forwarder.Stop()
		emitters = append(emitters, forwarder)
	}

	startPOI := ""
	if poi, ok := doc.POIAt(doc.Start()); ok {
		startPOI = poi.ID
	}

	controller, err := robot.New(robot.Config{
		Doc:        doc,
		Grid:       grid,
		Drive:      &robot.StubDrive{GridUnitCm: doc.Map.Metadata.GridUnitCm},
		Announcer:  speech.NewLogAnnouncer(),
		Responder:  speech.NewAIResponder(cfg.AIBaseURL, cfg.AIModel, cfg.AIKey),
		Events:     web.NewSink(emitters...),
		Prompts:    prompts,
		Language:   cfg.Language,
		CurrentPOI: startPOI,
	})
	if err != nil {
		log.Fatal("failed to build controller", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go controller.Run(ctx)

	server := web.NewServer(cfg.Port, controller, doc, events)
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("web server failed", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.Error("web server shutdown", "err", err)
	}
}

// parseFlags parses command line flags and returns configuration.
// Precedence: defaults, then .env/environment, then explicit flags.
func parseFlags() config.Config {
	cfg := config.DefaultConfig()

	// Logging is not initialized yet, so a missing .env stays silent.
	_ = godotenv.Load()
	cfg.LoadEnvConfig()

	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	port := flag.String("port", "", "HTTP listen port")
	data := flag.String("data", "", "Path to the map/POI JSON document")
	lang := flag.String("lang", "", "Initial guide language (EN or ZH)")
	monitor := flag.String("monitor", "", "Fleet monitor websocket URL")
	flag.Parse()

	cfg.Debug = *debug
	if *port != "" {
		cfg.Port = *port
	}
	if *data != "" {
		cfg.DataFile = *data
	}
	if *lang != "" {
		cfg.Language = *lang
	}
	if *monitor != "" {
		cfg.MonitorURL = *monitor
	}
	return cfg
}
