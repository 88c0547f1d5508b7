// Package openrouter is a client for the OpenRouter chat-completion API
// (https://openrouter.ai/api/v1).
//
// # Quick Start
//
//	client, err := openrouter.NewClient(
//	    openrouter.WithAPIKey("sk-or-..."),
//	    openrouter.WithModel("openai/gpt-4o"),
//	)
//
//	resp, err := client.Complete(ctx, openrouter.CompletionRequest{
//	    Messages: []openrouter.Message{
//	        {Role: openrouter.RoleSystem, Content: "You are a helpful assistant."},
//	        {Role: openrouter.RoleUser, Content: "Hello!"},
//	    },
//	})
//
// # Images
//
// image_url parts pointing at local files are read and inlined as base64
// data URIs before the request is sent:
//
//	resp, err := client.Complete(ctx, openrouter.CompletionRequest{
//	    Messages: []openrouter.Message{
//	        {Role: openrouter.RoleUser, Content: []openrouter.ContentPart{
//	            openrouter.TextPart("What is in this picture?"),
//	            openrouter.ImagePart("./photo.png", openrouter.DetailAuto),
//	        }},
//	    },
//	})
//
// # Model Fallbacks
//
// A Models chain asks OpenRouter to try each model in order:
//
//	resp, err := client.Complete(ctx, openrouter.CompletionRequest{
//	    Models:   []string{"openai/gpt-4o", "anthropic/claude-3.5-sonnet"},
//	    Messages: msgs,
//	})
//
// # Streaming
//
//	ch, err := client.Stream(ctx, req)
//	for chunk := range ch {
//	    fmt.Print(chunk.Choices[0].Delta.Content)
//	}
//
// or the callback form:
//
//	err := client.CompleteStream(ctx, req, func(chunk openrouter.StreamChunk) {
//	    fmt.Print(chunk.Choices[0].Delta.Content)
//	})
//
// # With Metrics
//
//	traced := client.WithMetrics()
//	resp, err := traced.Complete(ctx, req)
package openrouter
