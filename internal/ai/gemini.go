package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const providerGemini = "gemini"

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from configuration.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	model := client.GenerativeModel(modelName)

	// Long itineraries need room; plain text output, the parser reads the grammar.
	model.SetTemperature(0.7)
	model.SetTopP(0.8)
	model.SetTopK(40)
	model.SetMaxOutputTokens(4096)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// GenerateText sends the prompt and concatenates the text parts of the first candidate.
func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", Classify(providerGemini, fmt.Errorf("gemini generation error: %w", err))
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", NewUpstreamError(providerGemini, KindUnavailable, errors.New("no response candidates from Gemini"))
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	text := cleanResponseText(responseText.String())
	if text == "" {
		return "", NewUpstreamError(providerGemini, KindUnavailable, errors.New("empty response from Gemini"))
	}
	return text, nil
}

// cleanResponseText removes a wrapping markdown code fence if present.
func cleanResponseText(input string) string {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "```") {
		if nl := strings.IndexByte(input, '\n'); nl >= 0 {
			input = input[nl+1:]
		} else {
			input = strings.TrimPrefix(input, "```")
		}
		input = strings.TrimSuffix(strings.TrimSpace(input), "```")
	}
	return strings.TrimSpace(input)
}
