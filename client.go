package openrouter

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/PauloHFS/openrouter-go/internal/logging"
)

// DefaultBaseURL already carries the versioned API prefix; request paths
// are given without it.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Client is a thin adapter around the OpenRouter HTTP API. It is immutable
// after construction; concurrent use is as safe as the underlying
// *http.Client.
type Client struct {
	baseURL        string
	apiKey         string
	model          string
	httpClient     *http.Client
	defaultHeaders map[string]string
	referer        string
	title          string
	timeout        time.Duration
	maxRetries     int
	retryWaitMin   time.Duration
	retryWaitMax   time.Duration
	limiter        *rate.Limiter
	imageCache     *lru.Cache[string, string]
	logger         *slog.Logger
}

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		baseURL:      DefaultBaseURL,
		timeout:      60 * time.Second,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 30 * time.Second,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	if c.logger != nil {
		copied := *c.httpClient
		base := copied.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		copied.Transport = &loggingTransport{base: base, logger: c.logger}
		c.httpClient = &copied
	}

	return c, nil
}

func (c *Client) buildURL(path string) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}
	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}

	return req, nil
}

// do runs one API call, waiting on the client-side rate limiter first.
// Retries only happen when WithMaxRetries raised the budget above zero, and
// only for statuses that can succeed on a second attempt.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var lastErr error

	for attempt := 0; ; attempt++ {
		req, err := c.newRequest(ctx, method, path, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
		} else if attempt >= c.maxRetries || !retryableStatus(resp.StatusCode) {
			return resp, nil
		} else {
			resp.Body.Close()
			lastErr = &APIError{StatusCode: resp.StatusCode, Message: "max retries exceeded"}
		}

		if attempt >= c.maxRetries {
			return nil, lastErr
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryWait(attempt)):
		}
	}
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func (c *Client) retryWait(attempt int) time.Duration {
	wait := c.retryWaitMin << attempt
	if wait > c.retryWaitMax {
		wait = c.retryWaitMax
	}

	jitter := time.Duration((rand.Float64()*2 - 1) * 0.1 * float64(wait))
	return wait + jitter
}

type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	ctx, event := logging.NewEventContext(r.Context())
	event.Add(
		slog.String("method", r.Method),
		slog.String("url", r.URL.String()),
		slog.String("request_id", r.Header.Get("X-Request-ID")),
	)

	resp, err := t.base.RoundTrip(r.WithContext(ctx))

	duration := time.Since(start)

	if err != nil {
		event.Add(
			slog.String("outcome", "error"),
			slog.String("error", err.Error()),
			slog.Float64("duration_ms", float64(duration.Milliseconds())),
		)
		t.logger.Log(ctx, slog.LevelError, "openrouter request failed", event.Attrs()...)
		return nil, err
	}

	event.Add(
		slog.Int("status", resp.StatusCode),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	level := slog.LevelInfo
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}

	t.logger.Log(ctx, level, "openrouter request completed", event.Attrs()...)
	return resp, nil
}
