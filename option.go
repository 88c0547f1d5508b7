package openrouter

import (
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/PauloHFS/openrouter-go/internal/logging"
)

type ClientOption func(*Client) error

func WithAPIKey(key string) ClientOption {
	return func(c *Client) error {
		if key == "" {
			return ErrNoAPIKey
		}
		c.apiKey = key
		return nil
	}
}

func WithBaseURL(url string) ClientOption {
	return func(c *Client) error {
		if url == "" {
			return ErrInvalidBaseURL
		}
		c.baseURL = url
		return nil
	}
}

// WithModel sets the model used when a request leaves both Model and Models
// empty.
func WithModel(model string) ClientOption {
	return func(c *Client) error {
		c.model = model
		return nil
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) error {
		c.httpClient = client
		return nil
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		c.timeout = timeout
		return nil
	}
}

// WithDefaultHeaders merges the given headers into every request.
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) error {
		c.defaultHeaders = headers
		return nil
	}
}

// WithReferer sets the HTTP-Referer attribution header OpenRouter uses for
// app rankings.
func WithReferer(referer string) ClientOption {
	return func(c *Client) error {
		c.referer = referer
		return nil
	}
}

// WithTitle sets the X-Title attribution header.
func WithTitle(title string) ClientOption {
	return func(c *Client) error {
		c.title = title
		return nil
	}
}

// WithMaxRetries enables retrying of 429/5xx responses. The default is 0:
// errors propagate to the caller, who decides whether to retry.
func WithMaxRetries(retries int) ClientOption {
	return func(c *Client) error {
		if retries < 0 {
			retries = 0
		}
		c.maxRetries = retries
		return nil
	}
}

func WithRetryWaitRange(min, max time.Duration) ClientOption {
	return func(c *Client) error {
		if min <= 0 {
			min = 500 * time.Millisecond
		}
		if max <= 0 {
			max = 30 * time.Second
		}
		if min > max {
			min, max = max, min
		}
		c.retryWaitMin = min
		c.retryWaitMax = max
		return nil
	}
}

// WithRateLimit caps outgoing requests client-side at rps requests per
// second with the given burst.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) error {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		return nil
	}
}

// WithImageCache caches base64 data URIs of local image files, keyed by
// path, so repeated sends of the same image skip the read and encode.
func WithImageCache(size int) ClientOption {
	return func(c *Client) error {
		cache, err := lru.New[string, string](size)
		if err != nil {
			return err
		}
		c.imageCache = cache
		return nil
	}
}

// WithLogger wraps the transport so every round-trip is logged through the
// given slog logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger == nil {
			logger = logging.Get()
		}
		c.logger = logger
		return nil
	}
}
