package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
)

// Ollama answers fallback queries through a local or remote Ollama server. It implements the
// engine's FallbackLLM interface with single-turn, non-streamed completions.
type Ollama struct {
	host         string
	model        string
	systemPrompt string

	client *api.Client
}

// NewOllama creates a new Ollama instance with the specified host URL and model name. The host
// parameter should be a valid URL pointing to an Ollama server. If the provided host URL is
// invalid, the function will panic.
func NewOllama(host, model, systemPrompt string) Ollama {
	u, err := url.Parse(host)
	if err != nil {
		panic(err)
	}

	return Ollama{
		host:         host,
		model:        model,
		systemPrompt: systemPrompt,
		client:       api.NewClient(u, &http.Client{}),
	}
}

// Respond sends a single user message to the Ollama model and returns the complete reply text.
// The conversation is single-turn: only the system prompt and this message are sent.
func (o Ollama) Respond(ctx context.Context, message string) (string, error) {
	stream := false
	req := api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{
				Role:    "system",
				Content: o.systemPrompt,
			},
			{
				Role:    "user",
				Content: message,
			},
		},
		Stream: &stream,
	}

	var reply string
	if err := o.client.Chat(ctx, &req, func(res api.ChatResponse) error {
		reply += res.Message.Content
		return nil
	}); err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}

	return reply, nil
}
