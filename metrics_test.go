package openrouter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTracedClient_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"gen-1","choices":[{"message":{"role":"assistant","content":"ok"}}],"usage":{"prompt_tokens":3,"completion_tokens":4,"total_tokens":7}}`))
	}))
	defer ts.Close()

	traced := newTestClient(t, WithBaseURL(ts.URL)).WithMetrics()

	resp, err := traced.Complete(context.Background(), CompletionRequest{
		Model:    "openai/gpt-4o",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Choices[0].Message.Content != "ok" {
		t.Errorf("traced client must return the underlying response, got %v", resp.Choices[0].Message.Content)
	}
}

func TestTracedClient_PropagatesErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer ts.Close()

	traced := newTestClient(t, WithBaseURL(ts.URL)).WithMetrics()

	_, err := traced.Complete(context.Background(), CompletionRequest{
		Model:    "openai/gpt-4o",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected ServerError through traced client, got %v", err)
	}
}

func TestTracedClient_ModelsAndGeneration(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models":
			w.Write([]byte(`{"data":[{"id":"m1"}]}`))
		case "/generation":
			w.Write([]byte(`{"data":{"id":"gid","total_cost":0.1}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	traced := newTestClient(t, WithBaseURL(ts.URL)).WithMetrics()

	models, err := traced.Models(context.Background())
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	if len(models) != 1 || models[0].ID != "m1" {
		t.Errorf("unexpected models %+v", models)
	}

	gen, err := traced.Generation(context.Background(), "gid")
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if gen.ID != "gid" {
		t.Errorf("unexpected generation %+v", gen)
	}
}

func TestRequestModel(t *testing.T) {
	c := newTestClient(t, WithModel("default/model"))

	if got := requestModel(CompletionRequest{Model: "a"}, c); got != "a" {
		t.Errorf("expected explicit model, got %q", got)
	}
	if got := requestModel(CompletionRequest{Models: []string{"b", "c"}}, c); got != "b" {
		t.Errorf("expected first fallback model, got %q", got)
	}
	if got := requestModel(CompletionRequest{}, c); got != "default/model" {
		t.Errorf("expected client default, got %q", got)
	}
}
