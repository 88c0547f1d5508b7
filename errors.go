package openrouter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoAPIKey       = errors.New("API key is required")
	ErrInvalidBaseURL = errors.New("invalid base URL")
	ErrNilContext     = errors.New("context cannot be nil")
	ErrNoModel        = errors.New("model is required")
)

// InvalidInputError reports caller mistakes that are surfaced immediately
// and never retried: a missing image file or an unsupported image format.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// EncodingError reports a local I/O failure while preparing an image for
// upload. The underlying error is available through Unwrap.
type EncodingError struct {
	Path string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode image %s: %v", e.Path, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// ServerError is returned when the API answered with an error payload, or
// answered a non-streaming call with nothing at all.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %s", e.Message)
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// APIError is an HTTP-level failure without an OpenRouter error payload we
// could map to ServerError.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Code       any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

type RateLimitError struct {
	APIError
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status %d): %s", e.StatusCode, e.Message)
}

type AuthenticationError struct {
	APIError
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, e.Message)
}

type TimeoutError struct {
	APIError
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout: %s", e.Message)
}

type InvalidRequestError struct {
	APIError
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request (status %d): %s", e.StatusCode, e.Message)
}

func parseAPIError(statusCode int, body []byte) error {
	var resp apiErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return &APIError{
			StatusCode: statusCode,
			Message:    string(body),
		}
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    resp.Error.Message,
		Type:       resp.Error.Type,
		Code:       resp.Error.Code,
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{APIError: *apiErr}
	case http.StatusTooManyRequests:
		return &RateLimitError{APIError: *apiErr}
	case http.StatusBadRequest:
		return &InvalidRequestError{APIError: *apiErr}
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return &TimeoutError{APIError: *apiErr}
	default:
		return apiErr
	}
}

func IsInvalidInput(err error) bool {
	var invalidErr *InvalidInputError
	return errors.As(err, &invalidErr)
}

func IsEncodingError(err error) bool {
	var encErr *EncodingError
	return errors.As(err, &encErr)
}

func IsServerError(err error) bool {
	var srvErr *ServerError
	return errors.As(err, &srvErr)
}

func IsRateLimitError(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

func IsAuthError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}
