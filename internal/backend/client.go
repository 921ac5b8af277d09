package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/archplans/plan-portal/internal/logging"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 15 * time.Second
	maxErrorBody   = 4 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RPS and Burst bound the rate of outgoing calls. RPS <= 0 disables the limiter.
	RPS   float64
	Burst int
	// Transport overrides the HTTP transport, mostly for tests.
	Transport http.RoundTripper
}

// Client handles communication with the marketplace REST backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new backend client
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
	}
	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// clientFor returns an HTTP client that attaches token as a bearer credential.
func (c *Client) clientFor(token string) *http.Client {
	if token == "" {
		return c.httpClient
	}
	return &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
	}
}

type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

// do executes the call and returns the raw response body of a 2xx response.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	logger := logging.FromContext(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: rate limit wait: %w", cl.op, err)
		}
	}

	reqURL := c.baseURL + cl.path
	if len(cl.query) > 0 {
		reqURL += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, reqURL, cl.body)
	if err != nil {
		logger.LogError(cl.op, err)
		return nil, fmt.Errorf("%s: create request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if rid := logging.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	start := time.Now()
	resp, err := c.clientFor(cl.token).Do(req)
	if err != nil {
		recordCall(cl.op, 0, time.Since(start), err)
		logger.LogError(cl.op, err)
		return nil, fmt.Errorf("%s: backend request failed: %w", cl.op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	recordCall(cl.op, resp.StatusCode, time.Since(start), err)
	if err != nil {
		logger.LogError(cl.op, err)
		return nil, fmt.Errorf("%s: read response: %w", cl.op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.LogWarnf(cl.op, "backend returned status %d", resp.StatusCode)
		return nil, &APIError{Operation: cl.op, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	return body, nil
}

func (c *Client) doJSON(ctx context.Context, cl call, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", cl.op, err)
	}
	cl.body = bytes.NewReader(data)
	cl.contentType = "application/json"
	return c.do(ctx, cl)
}

// errorMessage extracts the backend's error text, falling back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return strings.TrimSpace(string(body))
}

func decodeObject[T any](op string, body []byte, keys ...string) (*T, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	for _, k := range keys {
		if raw, ok := wrapper[k]; ok && len(raw) > 0 && raw[0] == '{' {
			body = raw
			break
		}
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformedResponse, err)
	}
	return &out, nil
}

func escapeID(id string) string {
	return url.PathEscape(id)
}
