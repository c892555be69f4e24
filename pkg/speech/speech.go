// Package speech provides the robot's voice: announcement hooks, the
// bilingual prompt catalog, and the AI responder for visitor questions.
//
// Synthesis and audio playback live behind the Announcer interface so the
// navigation core never depends on a concrete TTS stack.
package speech

import (
	"context"

	"github.com/teslashibe/go-museumbot/internal/log"
	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// Announcer speaks a line of text in the given language ("EN" or "ZH").
// Implementations must be safe to call from the controller goroutine and
// block until playback has been handed off.
type Announcer interface {
	Announce(ctx context.Context, text, lang string) error
}

// Responder produces an answer to a visitor question, grounded in the POI
// catalog and the robot's current location.
type Responder interface {
	Answer(ctx context.Context, question, lang string, pois []worldmap.POI, currentPOI string) (string, error)
}

// LogAnnouncer is an Announcer that writes announcements to the log instead
// of a speaker. It stands in for the TTS playback chain on dev machines.
type LogAnnouncer struct{}

// NewLogAnnouncer creates a log-only announcer.
func NewLogAnnouncer() *LogAnnouncer {
	return &LogAnnouncer{}
}

// Announce logs the text that would be spoken.
func (a *LogAnnouncer) Announce(ctx context.Context, text, lang string) error {
	log.Info("announce", "lang", lang, "text", text)
	return nil
}
