package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Params tunes one completion
type Params struct {
	Temperature float32
	MaxTokens   int
}

// Answerer turns a prompt into an answer
type Answerer interface {
	Complete(ctx context.Context, prompt string, p Params) (string, error)
}

// OpenAIAnswerer calls an OpenAI-compatible chat completion API
type OpenAIAnswerer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnswerer builds an answerer. baseURL may be empty for api.openai.com.
func NewOpenAIAnswerer(apiKey, baseURL, model string) *OpenAIAnswerer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIAnswerer{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// Complete sends prompt as a single user message and returns the trimmed reply
func (a *OpenAIAnswerer) Complete(ctx context.Context, prompt string, p Params) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
