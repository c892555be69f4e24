package speech

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/teslashibe/go-museumbot/internal/httpc"
	"github.com/teslashibe/go-museumbot/internal/log"
	"github.com/teslashibe/go-museumbot/pkg/worldmap"
)

// Retry policy for the chat completion call.
const (
	maxRetries = 3
	baseDelay  = 1 * time.Second
)

// AIResponder answers visitor questions through a DashScope-compatible
// chat-completions endpoint (OpenAI wire format). A missing API key is not an
// error: the responder degrades to a canned apology so the robot never goes
// mute on the visitor.
type AIResponder struct {
	BaseURL string
	Model   string
	APIKey  string

	client *http.Client
}

// NewAIResponder creates a responder for the given endpoint.
func NewAIResponder(baseURL, model, apiKey string) *AIResponder {
	return &AIResponder{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		APIKey:  apiKey,
		client:  httpc.Client,
	}
}

// chat completion request/response wire types (OpenAI-compatible subset).
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Answer asks the model the visitor's question, grounded in the POI catalog
// and the robot's current location. Retries with exponential backoff before
// giving up.
func (r *AIResponder) Answer(ctx context.Context, question, lang string, pois []worldmap.POI, currentPOI string) (string, error) {
	if r.APIKey == "" {
		log.Warn("speech: no API key, returning canned answer")
		return Apology(lang), nil
	}

	body, err := json.Marshal(chatRequest{
		Model: r.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(lang, pois, currentPOI)},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech: encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay*time.Duration(1<<(attempt-1)) + time.Duration(rand.Int63n(int64(time.Second)))
			log.Warn("speech: retrying AI request", "attempt", attempt, "delay", delay, "err", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		answer, err := r.complete(ctx, body)
		if err == nil {
			return answer, nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.IsRetryable() {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("speech: AI request failed after %d retries: %w", maxRetries, lastErr)
}

func (r *AIResponder) complete(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/chat/completions", strings.NewReader(string(body)))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrEmptyAnswer
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// systemPrompt grounds the model in the museum: who it is, what it knows,
// where it stands, and which language to answer in.
func systemPrompt(lang string, pois []worldmap.POI, currentPOI string) string {
	var b strings.Builder
	b.WriteString("You are a museum guide robot. Your personality is knowledgeable, polite, and concise. ")
	b.WriteString("Answer visitor questions about the exhibits in 2-4 sentences.\n\n")
	b.WriteString("Exhibits:\n")
	for _, poi := range pois {
		marker := ""
		if poi.ID == currentPOI {
			marker = " (you are here)"
		}
		fmt.Fprintf(&b, "- %s / %s: %s%s\n", poi.Name.EN, poi.Name.ZH, poi.Description.In(lang), marker)
	}
	if lang == "ZH" {
		b.WriteString("\nAnswer in Chinese.")
	} else {
		b.WriteString("\nAnswer in English.")
	}
	return b.String()
}
