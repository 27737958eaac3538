// Package llm talks to an OpenAI-compatible chat-completions endpoint. The
// endpoint URL, model and credential are caller-supplied; the client adds the
// fixed sampling parameters the note generator uses and maps failures onto a
// small typed error set.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/cooperrobillard/linkedin-note/internal/prompts"
)

// Sampling parameters for note generation. High temperature buys variety
// between the n candidates; the penalties damp the model's stock phrasing.
const (
	temperature      = 0.85
	topP             = 0.95
	presencePenalty  = 0.3
	frequencyPenalty = 0.3
)

// DefaultBaseURL is the default API base, overridable per configuration.
const DefaultBaseURL = "https://api.openai.com/v1"

// quotaCodeRe detects the provider code for an account with no remaining
// quota in either the error code or message.
var quotaCodeRe = regexp.MustCompile(`(?i)insufficient_quota`)

// Completer generates n candidate texts for a prompt.
type Completer interface {
	Complete(ctx context.Context, p prompts.Prompt, n int) ([]string, error)
}

// Config holds client configuration.
type Config struct {
	APIKey  string
	BaseURL string        // default: DefaultBaseURL
	Model   string        // e.g. gpt-4o-mini
	Timeout time.Duration // transport timeout; default 30s
}

// Client implements Completer over HTTP.
type Client struct {
	cfg     Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a client. Missing config fields get defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: newBreaker(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	N                int           `json:"n"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	PresencePenalty  float64       `json:"presence_penalty"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// errorBody is the structured error shape some endpoints attach to non-2xx
// responses.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete posts one chat-completions request and returns the non-empty
// candidate texts. Failures come back as *RateLimitError, *HTTPError or
// *TransportError; the orchestrator maps those onto its fallback paths.
func (c *Client) Complete(ctx context.Context, p prompts.Prompt, n int) ([]string, error) {
	if n < 1 {
		n = 1
	}
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
		N:                n,
		Temperature:      temperature,
		TopP:             topP,
		PresencePenalty:  presencePenalty,
		FrequencyPenalty: frequencyPenalty,
	})
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	// Only the transport roundtrip runs inside the breaker: an HTTP error
	// response is an application outcome, not a broken endpoint.
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &TransportError{Cause: ErrCircuitOpen}
		}
		return nil, &TransportError{Cause: err}
	}
	resp := result.(*http.Response)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyHTTPError(resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &HTTPError{Status: resp.StatusCode, Body: "unparseable response body"}
	}
	var texts []string
	for _, choice := range parsed.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			texts = append(texts, content)
		}
	}
	return texts, nil
}

// classifyHTTPError maps a non-2xx response to a typed error, detecting the
// distinguished quota-exhausted 429.
func classifyHTTPError(status int, raw []byte) error {
	var parsed errorBody
	_ = json.Unmarshal(raw, &parsed)
	message := parsed.Error.Message
	if message == "" {
		message = truncate(string(raw), 500)
	}

	if status == http.StatusTooManyRequests {
		return &RateLimitError{
			Body:           message,
			QuotaExhausted: quotaCodeRe.MatchString(message + " " + parsed.Error.Code + " " + parsed.Error.Type),
		}
	}
	return &HTTPError{Status: status, Body: message}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.cfg.Model
}

var _ Completer = (*Client)(nil)
