package factory

import (
	"context"
	"fmt"

	"ai-writing-assistant-be/pkg/llm"
	"ai-writing-assistant-be/pkg/llm/gemini"
	"ai-writing-assistant-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if modelName == "" {
			modelName = "gemini-1.5-flash" // Default
		}
		return gemini.NewGeminiProvider(context.Background(), apiKey, modelName)
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
