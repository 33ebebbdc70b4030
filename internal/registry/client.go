// Package registry implements the business-registry lookup stage: a keyword
// search against a Tianyancha-compatible provider that returns the matched
// company's registration record verbatim.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the provider's search-by-keyword endpoint.
const DefaultBaseURL = "http://open.api.tianyancha.com/services/open/ic/baseinfoV3/2.0"

// DefaultTimeout bounds a single lookup request. No retry is attempted.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent avoids the provider's bot filtering.
const DefaultUserAgent = "Mozilla/5.0 (compatible; CompanyInsight/1.0)"

// okCode is the provider's success sentinel for error_code.
const okCode = 0

// maxResponseSize limits the provider body read to prevent memory exhaustion.
const maxResponseSize = 4 * 1024 * 1024

// Record is the opaque business record returned by the provider. No schema
// is enforced beyond the top-level container existing.
type Record map[string]any

// envelope is the provider's response wrapper.
type envelope struct {
	ErrorCode int    `json:"error_code"`
	Reason    string `json:"reason"`
	Result    Record `json:"result"`
}

// Client performs keyword lookups against the registry provider.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header sent to the provider.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a lookup client. An empty baseURL selects the provider's
// public endpoint. The token may be empty; Lookup then fails with a
// config-kind error instead of issuing a request.
func NewClient(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:   baseURL,
		token:     token,
		userAgent: DefaultUserAgent,
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

// Lookup fetches the registration record for a company name. The caller is
// responsible for rejecting empty names before invoking Lookup.
func (c *Client) Lookup(ctx context.Context, name string) (Record, error) {
	if c.token == "" {
		return nil, &Error{Kind: KindConfig, Message: "registry token is not configured"}
	}

	reqURL := c.baseURL + "?keyword=" + url.QueryEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("registry lookup request",
		zap.String("url", reqURL),
		zap.String("token", truncateSecret(c.token)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "failed to read response body", Cause: err}
	}

	c.logger.Debug("registry lookup response",
		zap.Int("status", resp.StatusCode),
		zap.String("body_prefix", prefix(body, 200)))

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindNetwork, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	if err := validateEnvelope(body); err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &Error{Kind: KindDecode, Message: "failed to decode provider response", Cause: err}
	}

	if env.ErrorCode != okCode {
		reason := env.Reason
		if reason == "" {
			reason = "unknown error"
		}
		return nil, &Error{Kind: KindProvider, Message: reason}
	}

	if len(env.Result) == 0 {
		return nil, &Error{Kind: KindNotFound, Message: "provider returned no record"}
	}

	return env.Result, nil
}

// truncateSecret shortens a credential for diagnostic logging.
func truncateSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// prefix returns at most n bytes of body as a string.
func prefix(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
