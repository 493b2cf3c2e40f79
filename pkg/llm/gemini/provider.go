package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"ai-writing-assistant-be/pkg/llm"
)

const providerName = "gemini"

type GeminiProvider struct {
	client    *genai.Client
	ModelName string
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		ModelName: modelName,
	}, nil
}

// --- Interface Implementation ---

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	config := &genai.GenerateContentConfig{}
	if options.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(options.Temperature))
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	// Map the generic history onto Gemini content. System messages become the
	// system instruction, assistant turns use the "model" role.
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		if msg.Role == "system" {
			config.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
			continue
		}

		role := genai.Role(genai.RoleUser)
		if msg.Role == "assistant" || msg.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	result, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", &llm.GenerationError{Provider: providerName, Err: err}
	}

	text := collectText(result)
	if text == "" {
		return "", &llm.GenerationError{
			Provider: providerName,
			Err:      fmt.Errorf("empty response from model %s", model),
		}
	}

	return text, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// collectText flattens the candidate parts into a single string, skipping
// thought parts emitted by thinking-capable models.
func collectText(result *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
