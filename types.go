package openrouter

import (
	"encoding/json"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Image detail levels accepted by vision models.
const (
	DetailAuto = "auto"
	DetailLow  = "low"
	DetailHigh = "high"
)

// Message is a single chat message. Content is either a plain string or an
// ordered slice of content parts ([]ContentPart, or []any for callers that
// mix in provider-specific part shapes).
type Message struct {
	Role    Role   `json:"role"`
	Content any    `json:"content"`
	Name    string `json:"name,omitempty"`
}

// ContentPart is one element of a multimodal message. Type selects which
// payload field is populated; parts with types this library does not know
// about are sent to the API untouched.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// Provider carries OpenRouter provider-routing preferences. Order is the
// priority order in which providers are tried.
type Provider struct {
	Order []string `json:"order,omitempty"`
}

// CompletionRequest is the body for POST /chat/completions.
//
// Exactly one of Model or Models should be set: a single Model selects one
// model, while Models declares an ordered fallback chain and forces
// Route to "fallback". Extra is merged into the serialized body last, so
// caller-supplied keys override any field here; it is the escape hatch for
// API parameters this struct does not know about yet.
type CompletionRequest struct {
	Model            string         `json:"model,omitempty"`
	Models           []string       `json:"models,omitempty"`
	Route            string         `json:"route,omitempty"`
	Messages         []Message      `json:"messages"`
	Provider         *Provider      `json:"provider,omitempty"`
	Transforms       []string       `json:"transforms,omitempty"`
	Stream           bool           `json:"stream,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	TopP             *float64       `json:"top_p,omitempty"`
	MaxTokens        int            `json:"max_tokens,omitempty"`
	Stop             []string       `json:"stop,omitempty"`
	PresencePenalty  *float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64       `json:"frequency_penalty,omitempty"`
	Seed             *int           `json:"seed,omitempty"`
	User             string         `json:"user,omitempty"`
	Extra            map[string]any `json:"-"`
}

func (r CompletionRequest) MarshalJSON() ([]byte, error) {
	type plain CompletionRequest

	data, err := json.Marshal(plain(r))
	if err != nil {
		return nil, err
	}

	if len(r.Extra) == 0 {
		return data, nil
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, err
	}
	for k, v := range r.Extra {
		body[k] = v
	}

	return json.Marshal(body)
}

type CompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`

	// Raw is the fully decoded response body, kept so callers can reach
	// fields this struct does not model.
	Raw map[string]any `json:"-"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type StreamChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
	Usage   *Usage         `json:"usage,omitempty"`
}

type StreamChoice struct {
	Index        int    `json:"index"`
	Delta        Delta  `json:"delta"`
	FinishReason string `json:"finish_reason,omitempty"`
}

type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// Model is one entry of the GET /models listing.
type Model struct {
	ID            string        `json:"id"`
	Name          string        `json:"name,omitempty"`
	Description   string        `json:"description,omitempty"`
	Created       int64         `json:"created,omitempty"`
	ContextLength int           `json:"context_length,omitempty"`
	Pricing       *ModelPricing `json:"pricing,omitempty"`
}

type ModelPricing struct {
	Prompt     string `json:"prompt,omitempty"`
	Completion string `json:"completion,omitempty"`
}

// Generation holds usage and cost statistics for a past completion,
// returned by GET /generation?id=<id>.
type Generation struct {
	ID               string  `json:"id"`
	Model            string  `json:"model,omitempty"`
	ProviderName     string  `json:"provider_name,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	GenerationTime   int     `json:"generation_time,omitempty"`
	TokensPrompt     int     `json:"tokens_prompt,omitempty"`
	TokensCompletion int     `json:"tokens_completion,omitempty"`
	TotalCost        float64 `json:"total_cost,omitempty"`
}
