package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const completionsPath = "/chat/completions"

const emptyResponseMessage = "Empty response from OpenRouter - please retry the request"

// Complete sends a chat-completion request and blocks until the API
// answers. Multimodal messages are normalized first: local image paths in
// image_url parts are inlined as base64 data URIs. A Models fallback chain
// forces route=fallback; an empty model specifier falls back to the
// client's default model.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	assembled, err := c.assembleRequest(req)
	if err != nil {
		return nil, err
	}
	assembled.Stream = false

	body, err := json.Marshal(assembled)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, completionsPath, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	raw, err := decodeResponse(resp.StatusCode, respBody)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, &ServerError{Message: emptyResponseMessage}
	}

	var completion CompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	completion.Raw = raw

	return &completion, nil
}

// assembleRequest normalizes messages and resolves the model specifier.
func (c *Client) assembleRequest(req CompletionRequest) (CompletionRequest, error) {
	msgs, err := c.normalizeMessages(req.Messages)
	if err != nil {
		return CompletionRequest{}, err
	}
	req.Messages = msgs

	if len(req.Models) > 0 {
		req.Model = ""
		req.Route = "fallback"
	} else {
		if req.Model == "" {
			req.Model = c.model
		}
		if req.Model == "" {
			return CompletionRequest{}, ErrNoModel
		}
	}

	return req, nil
}

// decodeResponse validates a raw API body. An error.message payload maps to
// ServerError regardless of HTTP status; other non-2xx bodies map to the
// typed APIError family.
func decodeResponse(statusCode int, body []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
			return nil, nil
		}
		return nil, parseAPIError(statusCode, body)
	}

	var raw map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		if statusCode >= http.StatusBadRequest {
			return nil, parseAPIError(statusCode, body)
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if errObj, ok := raw["error"].(map[string]any); ok {
		if msg, ok := errObj["message"].(string); ok && msg != "" {
			return nil, &ServerError{Message: msg}
		}
	}

	if statusCode >= http.StatusBadRequest {
		return nil, parseAPIError(statusCode, body)
	}

	return raw, nil
}
