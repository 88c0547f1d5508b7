package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Models lists the models available through OpenRouter, returning the data
// array of GET /models.
func (c *Client) Models(ctx context.Context) ([]Model, error) {
	var envelope struct {
		Data []Model `json:"data"`
	}
	if err := c.getJSON(ctx, "/models", &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Generation fetches token and cost statistics for a past completion by its
// generation id, returning the data object of GET /generation.
func (c *Client) Generation(ctx context.Context, id string) (*Generation, error) {
	var envelope struct {
		Data Generation `json:"data"`
	}
	path := "/generation?id=" + url.QueryEscape(id)
	if err := c.getJSON(ctx, path, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if ctx == nil {
		return ErrNilContext
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	raw, err := decodeResponse(resp.StatusCode, body)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return &ServerError{Message: emptyResponseMessage}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
