// Package groq provides an HTTP client for the Groq OpenAI-compatible API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sbotel "github.com/Strob0t/SkillBridge/internal/adapter/otel"
	"github.com/Strob0t/SkillBridge/internal/domain"
	"github.com/Strob0t/SkillBridge/internal/port/llm"
)

// DefaultBaseURL is the Groq OpenAI-compatible API root.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// maxErrorBody caps how much of a failed response body is kept for diagnostics.
const maxErrorBody = 200

// ErrMalformedResponse is returned when a successful response lacks the
// message content of its first choice.
var ErrMalformedResponse = fmt.Errorf("%w: invalid response structure from provider", domain.ErrUpstream)

// ErrMissingAPIKey is returned when the client has no API key configured.
var ErrMissingAPIKey = fmt.Errorf("%w: GROQ_API_KEY is not configured", domain.ErrAuth)

// TransportError reports that the HTTP call itself could not complete.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "groq transport: " + e.Err.Error() }

// Unwrap exposes the underlying cause and classifies the failure as upstream.
func (e *TransportError) Unwrap() []error { return []error{e.Err, domain.ErrUpstream} }

// ProviderError reports a non-success HTTP status from the provider.
type ProviderError struct {
	StatusCode int
	Body       string // truncated to maxErrorBody bytes
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("groq API error %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps the status onto the domain error taxonomy.
func (e *ProviderError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return domain.ErrAuth
	case e.StatusCode == http.StatusTooManyRequests:
		return domain.ErrRateLimited
	case strings.Contains(e.Body, "model_decommissioned"):
		return domain.ErrModelDecommissioned
	default:
		return domain.ErrUpstream
	}
}

// Client talks to the Groq chat-completions API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Groq client. A zero timeout leaves requests unbounded
// apart from the caller's context.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: sbotel.Transport(nil),
		},
	}
}

// chatRequest is the body of POST /chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a non-streaming chat completion and returns the content of
// the first choice.
func (c *Client) Complete(ctx context.Context, model string, messages []llm.Message, params llm.Params) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		TopP:        params.TopP,
		Stream:      false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	data, err := c.doRequest(ctx, http.MethodPost, "/chat/completions", body)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", ErrMalformedResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels returns the model identifiers the API key can use.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	data, err := c.doRequest(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}

	var result struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	ids := make([]string, 0, len(result.Data))
	for _, m := range result.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: truncate(string(data), maxErrorBody)}
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

