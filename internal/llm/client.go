// Package llm provides a minimal OpenAI-compatible chat-completions client.
// It sends a single non-streaming request per call and performs no retries.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL targets the DeepSeek API, which speaks the OpenAI
// chat-completions protocol.
const DefaultBaseURL = "https://api.deepseek.com"

// DefaultTimeout bounds a single completion request.
const DefaultTimeout = 120 * time.Second

// maxResponseSize limits the response body read to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request defines a completion request.
type Request struct {
	// Model is the provider model name.
	Model string
	// Messages is the instruction exchange, in order.
	Messages []Message
	// Temperature controls sampling. nil uses the provider default.
	Temperature *float64
	// MaxTokens limits response length. 0 uses the provider default.
	MaxTokens int
}

// Response contains the completion result.
type Response struct {
	// Content is the first choice's message content, verbatim.
	Content string
	// Model is the model that produced the completion.
	Model string
	// FinishReason indicates why generation stopped.
	FinishReason string
}

// Client abstracts the completion provider so stages can be tested without
// network access.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// chatRequest is the OpenAI-compatible wire request.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// chatResponse is the OpenAI-compatible wire response.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// HTTPClient implements Client over the chat-completions HTTP API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// NewHTTPClient creates a completion client. An empty baseURL selects the
// DeepSeek endpoint. The key may be empty; Complete then fails with
// ErrMissingAPIKey instead of issuing a request.
func NewHTTPClient(baseURL, apiKey string, opts ...Option) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// buildURL constructs the chat-completions endpoint from a base URL.
func buildURL(baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if strings.HasSuffix(baseURL, "/chat/completions") {
		return baseURL
	}
	return baseURL + "/chat/completions"
}

// Complete sends one completion request and returns the first choice.
func (c *HTTPClient) Complete(ctx context.Context, req Request) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	wire := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Stream:      false,
		Temperature: req.Temperature,
	}
	if req.MaxTokens > 0 {
		wire.MaxTokens = &req.MaxTokens
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	url := buildURL(c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("completion request",
		zap.String("url", url),
		zap.String("model", req.Model),
		zap.Int("messages", len(req.Messages)))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			StatusCode: httpResp.StatusCode,
			Body:       excerpt(respBody, 200),
		}
	}

	var wireResp chatResponse
	if err := json.Unmarshal(respBody, &wireResp); err != nil {
		return nil, &MalformedResponseError{Message: "failed to decode body", Cause: err}
	}

	if len(wireResp.Choices) == 0 {
		return nil, &MalformedResponseError{Message: "no choices in response"}
	}

	return &Response{
		Content:      wireResp.Choices[0].Message.Content,
		Model:        wireResp.Model,
		FinishReason: wireResp.Choices[0].FinishReason,
	}, nil
}

// excerpt returns at most n bytes of body as a string.
func excerpt(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
