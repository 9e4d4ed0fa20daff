package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider implements LLMProvider over the chat completions API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIProvider{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: 0.7,
		maxTokens:   4096,
	}
}

// NewOpenAIProviderWithConfig points the client at a custom base URL (proxies, tests).
func NewOpenAIProviderWithConfig(cfg openai.ClientConfig, model string) *OpenAIProvider {
	p := NewOpenAIProvider("", model)
	p.client = openai.NewClientWithConfig(cfg)
	return p
}

func (p *OpenAIProvider) Close() {}

func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert travel planner. Follow the requested output format exactly.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", Classify(providerOpenAI, fmt.Errorf("openai request failed: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", NewUpstreamError(providerOpenAI, KindUnavailable, errors.New("no response choices from OpenAI"))
	}

	text := cleanResponseText(resp.Choices[0].Message.Content)
	if text == "" {
		return "", NewUpstreamError(providerOpenAI, KindUnavailable, errors.New("empty response from OpenAI"))
	}
	return text, nil
}
