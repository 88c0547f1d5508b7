package openrouter

import (
	"encoding/json"
	"testing"
)

func TestCompletionRequestMarshal_ExtrasOverlay(t *testing.T) {
	req := CompletionRequest{
		Model:    "openai/gpt-4o",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Extra: map[string]any{
			"temperature":        0.2,
			"repetition_penalty": 1.1,
		},
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if body["temperature"] != 0.2 {
		t.Errorf("extras should win over typed fields, got %v", body["temperature"])
	}
	if body["repetition_penalty"] != 1.1 {
		t.Errorf("unknown extras should be merged, got %v", body["repetition_penalty"])
	}
	if body["model"] != "openai/gpt-4o" {
		t.Errorf("typed fields must survive the overlay, got %v", body["model"])
	}
}

func TestCompletionRequestMarshal_OmitsEmpty(t *testing.T) {
	data, err := json.Marshal(CompletionRequest{
		Model:    "m",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"models", "route", "provider", "transforms", "stream"} {
		if _, ok := body[key]; ok {
			t.Errorf("expected %q omitted from %s", key, data)
		}
	}
}
