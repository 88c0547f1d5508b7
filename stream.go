package openrouter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Stream sends a chat-completion request with stream enabled and delivers
// SSE chunks over the returned channel. The channel closes when the stream
// ends, errors out, or ctx is cancelled.
func (c *Client) Stream(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	assembled, err := c.assembleRequest(req)
	if err != nil {
		return nil, err
	}
	assembled.Stream = true

	body, err := json.Marshal(assembled)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, completionsPath, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read error response: %w", readErr)
		}
		if _, err := decodeResponse(resp.StatusCode, respBody); err != nil {
			return nil, err
		}
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	ch := make(chan StreamChunk, 1)
	go c.readSSEStream(ctx, resp.Body, ch)

	return ch, nil
}

// CompleteStream is the callback form of Stream: fn is invoked for every
// chunk as it arrives, and the call blocks until the stream is done.
func (c *Client) CompleteStream(ctx context.Context, req CompletionRequest, fn func(StreamChunk)) error {
	ch, err := c.Stream(ctx, req)
	if err != nil {
		return err
	}

	for chunk := range ch {
		fn(chunk)
	}

	return ctx.Err()
}

func (c *Client) readSSEStream(ctx context.Context, body io.ReadCloser, ch chan<- StreamChunk) {
	defer close(ch)
	defer body.Close()

	reader := bufio.NewReader(body)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		if data == "[DONE]" {
			return
		}

		var chunk StreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}

		select {
		case ch <- chunk:
		case <-ctx.Done():
			return
		}
	}
}
