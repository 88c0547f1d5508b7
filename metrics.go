package openrouter

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "openrouter_request_duration_seconds",
		Help:    "OpenRouter request duration in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"operation", "model", "status"})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openrouter_requests_total",
		Help: "Total number of OpenRouter requests",
	}, []string{"operation", "model"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openrouter_errors_total",
		Help: "Total number of OpenRouter errors",
	}, []string{"operation", "model", "error_type"})

	tokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "openrouter_tokens_total",
		Help: "Total number of tokens used",
	}, []string{"operation", "model", "token_type"})
)

func recordRequest(operation, model, status string, duration time.Duration) {
	requestDuration.WithLabelValues(operation, model, status).Observe(duration.Seconds())
	requestsTotal.WithLabelValues(operation, model).Inc()
}

func recordError(operation, model, errorType string) {
	errorsTotal.WithLabelValues(operation, model, errorType).Inc()
}

func recordTokens(operation, model string, usage Usage) {
	if usage.PromptTokens > 0 {
		tokensTotal.WithLabelValues(operation, model, "prompt").Add(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		tokensTotal.WithLabelValues(operation, model, "completion").Add(float64(usage.CompletionTokens))
	}
	if usage.TotalTokens > 0 {
		tokensTotal.WithLabelValues(operation, model, "total").Add(float64(usage.TotalTokens))
	}
}

// TracedClient wraps a Client and records Prometheus metrics for every
// call. Obtain one with Client.WithMetrics.
type TracedClient struct {
	client *Client
}

func (c *Client) WithMetrics() *TracedClient {
	return &TracedClient{client: c}
}

func (t *TracedClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	model := requestModel(req, t.client)

	resp, err := t.client.Complete(ctx, req)
	if err != nil {
		recordRequest("complete", model, "error", time.Since(start))
		recordError("complete", model, classifyError(err))
		return nil, err
	}

	recordRequest("complete", model, "success", time.Since(start))
	recordTokens("complete", model, resp.Usage)

	return resp, nil
}

func (t *TracedClient) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	model := requestModel(req, t.client)
	requestsTotal.WithLabelValues("stream", model).Inc()

	ch, err := t.client.Stream(ctx, req)
	if err != nil {
		recordError("stream", model, classifyError(err))
		return nil, err
	}

	wrapped := make(chan StreamChunk)
	go func() {
		defer close(wrapped)
		start := time.Now()
		var lastUsage Usage

		for chunk := range ch {
			wrapped <- chunk
			if chunk.Usage != nil {
				lastUsage = *chunk.Usage
			}
			if len(chunk.Choices) > 0 && chunk.Choices[0].FinishReason != "" {
				recordRequest("stream", model, "success", time.Since(start))
				recordTokens("stream", model, lastUsage)
			}
		}
	}()

	return wrapped, nil
}

func (t *TracedClient) Models(ctx context.Context) ([]Model, error) {
	start := time.Now()

	models, err := t.client.Models(ctx)
	if err != nil {
		recordRequest("models", "", "error", time.Since(start))
		recordError("models", "", classifyError(err))
		return nil, err
	}

	recordRequest("models", "", "success", time.Since(start))
	return models, nil
}

func (t *TracedClient) Generation(ctx context.Context, id string) (*Generation, error) {
	start := time.Now()

	gen, err := t.client.Generation(ctx, id)
	if err != nil {
		recordRequest("generation", "", "error", time.Since(start))
		recordError("generation", "", classifyError(err))
		return nil, err
	}

	recordRequest("generation", "", "success", time.Since(start))
	return gen, nil
}

func requestModel(req CompletionRequest, c *Client) string {
	if req.Model != "" {
		return req.Model
	}
	if len(req.Models) > 0 {
		return req.Models[0]
	}
	return c.model
}

func classifyError(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsInvalidInput(err):
		return "invalid_input"
	case IsEncodingError(err):
		return "encoding"
	case IsServerError(err):
		return "server"
	case IsAuthError(err):
		return "auth"
	case IsRateLimitError(err):
		return "rate_limit"
	case IsTimeoutError(err):
		return "timeout"
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return "client_error"
		}
		if apiErr.StatusCode >= 500 {
			return "server_error"
		}
	}

	return "unknown"
}
