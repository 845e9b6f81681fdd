// Package client posts partnership proposals to the configured endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/goliatone/go-partnerform/pkg/partner"
)

const (
	// RequestIDHeader carries the per-submission identifier.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBytes bounds how much of a rejection body is kept. Success
	// bodies are always decoded in full.
	maxErrorBytes = 1 << 20
	maxLoggedBody = 512
)

// Client implements partner.Submitter over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	newID      func() string
}

var _ partner.Submitter = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport. The default client has no timeout;
// bound requests through the context instead.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(ua)
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestIDFunc overrides how request identifiers are generated.
func WithRequestIDFunc(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New validates endpoint and builds a Client.
func New(endpoint string, options ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("client: endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("client: parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("client: endpoint scheme %q not supported", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("client: endpoint %q has no host", endpoint)
	}

	c := &Client{
		endpoint:   parsed.String(),
		httpClient: &http.Client{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:      uuid.NewString,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Endpoint returns the normalised endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit posts payload as JSON. It succeeds only when the status is 2xx and
// the body parses as JSON; everything else is a *TransportError or a
// *ProtocolError.
func (c *Client) Submit(ctx context.Context, payload partner.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("client: encode payload: %w", err)
	}

	requestID := c.newID()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("partnership request failed",
			slog.String("url", c.endpoint),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return &TransportError{URL: c.endpoint, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	reader := io.Reader(resp.Body)
	if !success {
		reader = io.LimitReader(resp.Body, maxErrorBytes)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return &TransportError{URL: c.endpoint, RequestID: requestID, Err: fmt.Errorf("read body: %w", err)}
	}

	if !success {
		perr := &ProtocolError{
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Body:       truncate(raw),
			Errors:     decodeErrorBody(raw),
			Err:        ErrUnexpectedStatus,
		}
		c.logger.Error("partnership endpoint rejected proposal",
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", requestID),
			slog.String("body", perr.Body),
		)
		return perr
	}

	var decoded json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		perr := &ProtocolError{
			StatusCode: resp.StatusCode,
			RequestID:  requestID,
			Body:       truncate(raw),
			Err:        fmt.Errorf("%w: %v", ErrMalformedResponse, err),
		}
		c.logger.Error("partnership endpoint returned malformed body",
			slog.Int("status", resp.StatusCode),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return perr
	}

	c.logger.Info("partnership proposal response",
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", requestID),
		slog.Int("bytes", len(decoded)),
		slog.String("response", truncate(decoded)),
	)
	return nil
}

// truncate shortens raw for logs and errors without splitting a rune.
func truncate(raw []byte) string {
	if len(raw) <= maxLoggedBody {
		return string(raw)
	}
	cut := maxLoggedBody
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return string(raw[:cut]) + "..."
}

// decodeErrorBody extracts `{"errors": {path: [messages]}}` when present.
func decodeErrorBody(raw []byte) map[string][]string {
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Errors) == 0 {
		return nil
	}
	return body.Errors
}
