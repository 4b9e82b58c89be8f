// Package llm wraps the remote language-model call. The rest of the system
// only sees the ChatModel interface: conversation in, reply text out, may
// fail. No retry is performed here; a failure surfaces once to the caller.
package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/rmarques/granabot/internal/domain"
)

// ChatModel answers a conversation with a single reply text.
type ChatModel interface {
	Chat(ctx context.Context, turns []domain.Turn) (string, error)
}

// Gemini is the ChatModel implementation backed by the Gemini API. The API
// key comes from the environment (GEMINI_API_KEY), resolved by the client.
type Gemini struct {
	model string
}

// NewGemini creates a Gemini chat model with the given model name.
func NewGemini(model string) *Gemini {
	return &Gemini{model: model}
}

// Chat sends the conversation to the model and returns the reply text.
// System turns become the system instruction; user and assistant turns map to
// the user/model roles of the API.
func (g *Gemini) Chat(ctx context.Context, turns []domain.Turn) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Chat: create genai client: %w", err)
	}

	var system *genai.Content
	var contents []*genai.Content

	for _, turn := range turns {
		switch turn.Role {
		case domain.RoleSystem:
			system = &genai.Content{
				Parts: []*genai.Part{{Text: turn.Content}},
			}
		case domain.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: turn.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: turn.Content}},
			})
		}
	}

	var config *genai.GenerateContentConfig
	if system != nil {
		config = &genai.GenerateContentConfig{SystemInstruction: system}
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Chat: generate content: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", fmt.Errorf("Chat: empty response from model")
	}
	return reply, nil
}

var _ ChatModel = (*Gemini)(nil)
