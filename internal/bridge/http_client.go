package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout   = 120 * time.Second
	maxResponseBytes = 32 << 20

	pathGenerate    = "/generate"
	pathInterrogate = "/interrogate"
	pathEmotions    = "/emotions"
)

// HTTPClient talks to a musicbrain service over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	catalog EmotionCatalog
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.client = c
	}
}

// WithTimeout bounds each call with a context deadline, so an expired call
// reports context.DeadlineExceeded.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithEmotionCatalog serves GetEmotions from a local catalog instead of the
// remote service.
func WithEmotionCatalog(c EmotionCatalog) Option {
	return func(h *HTTPClient) {
		h.catalog = c
	}
}

// NewHTTPClient creates a client for the service at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// BaseURL returns the service URL the client was built with.
func (h *HTTPClient) BaseURL() string {
	return h.baseURL
}

// UsesLocalCatalog reports whether emotions are served from local files.
func (h *HTTPClient) UsesLocalCatalog() bool {
	return h.catalog != nil
}

func (h *HTTPClient) Generate(ctx context.Context, req GenerateRequest) (json.RawMessage, error) {
	return h.do(ctx, http.MethodPost, pathGenerate, req)
}

func (h *HTTPClient) Interrogate(ctx context.Context, req InterrogateRequest) (json.RawMessage, error) {
	return h.do(ctx, http.MethodPost, pathInterrogate, req)
}

func (h *HTTPClient) GetEmotions(ctx context.Context) (json.RawMessage, error) {
	if h.catalog != nil {
		return h.catalog.All(ctx)
	}
	return h.do(ctx, http.MethodGet, pathEmotions, nil)
}

func (h *HTTPClient) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	if h.baseURL == "" {
		return nil, errors.New("musicbrain URL not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		// Surface the context error itself so callers can match on it
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("musicbrain request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to read musicbrain response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.New(errorMessage(resp.StatusCode, data))
	}

	if !json.Valid(data) {
		return nil, errors.New("musicbrain returned invalid JSON")
	}
	return json.RawMessage(data), nil
}

// errorMessage extracts the service's own message from an error body.
func errorMessage(status int, data []byte) string {
	var body struct {
		Error  any `json:"error"`
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if msg, ok := body.Error.(string); ok && msg != "" {
			return msg
		}
		if msg, ok := body.Detail.(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("musicbrain returned %d %s", status, http.StatusText(status))
}
