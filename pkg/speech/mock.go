package speech

import (
	"context"
	"sync"

	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// MockAnnouncer implements Announcer for testing. It records every
// announcement and can be customized via the function field.
type MockAnnouncer struct {
	// AnnounceFunc is called when Announce is invoked. If nil, Announce
	// just records the call and returns nil.
	AnnounceFunc func(ctx context.Context, text, lang string) error

	mu    sync.Mutex
	calls []AnnounceCall
}

// AnnounceCall records one Announce invocation.
type AnnounceCall struct {
	Text string
	Lang string
}

// Announce records the call and delegates to AnnounceFunc if set.
func (m *MockAnnouncer) Announce(ctx context.Context, text, lang string) error {
	m.mu.Lock()
	m.calls = append(m.calls, AnnounceCall{Text: text, Lang: lang})
	m.mu.Unlock()
	if m.AnnounceFunc != nil {
		return m.AnnounceFunc(ctx, text, lang)
	}
	return nil
}

// Calls returns all recorded announcements.
func (m *MockAnnouncer) Calls() []AnnounceCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]AnnounceCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of announcements made.
func (m *MockAnnouncer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// MockResponder implements Responder for testing.
type MockResponder struct {
	// AnswerFunc is called when Answer is invoked. If nil, a fixed answer
	// is returned.
	AnswerFunc func(ctx context.Context, question, lang string, pois []worldmap.POI, currentPOI string) (string, error)

	mu        sync.Mutex
	questions []string
}

// Answer records the question and delegates to AnswerFunc if set.
func (m *MockResponder) Answer(ctx context.Context, question, lang string, pois []worldmap.POI, currentPOI string) (string, error) {
	m.mu.Lock()
	m.questions = append(m.questions, question)
	m.mu.Unlock()
	if m.AnswerFunc != nil {
		return m.AnswerFunc(ctx, question, lang, pois, currentPOI)
	}
	return "This is a mock answer.", nil
}

// Questions returns all recorded questions.
func (m *MockResponder) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.questions))
	copy(out, m.questions)
	return out
}
