package factory

import (
	"strings"
	"testing"

	"ai-writing-assistant-be/pkg/llm/gemini"
	"ai-writing-assistant-be/pkg/llm/ollama"
)

func TestNewLLMProvider(t *testing.T) {
	t.Run("ollama defaults base url", func(t *testing.T) {
		provider, err := NewLLMProvider("ollama", "llama3", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ollamaProvider, ok := provider.(*ollama.OllamaProvider)
		if !ok {
			t.Fatalf("provider type = %T, want *ollama.OllamaProvider", provider)
		}
		if ollamaProvider.BaseURL != "http://localhost:11434" {
			t.Errorf("BaseURL = %q, want default localhost", ollamaProvider.BaseURL)
		}
	})

	t.Run("gemini defaults model", func(t *testing.T) {
		provider, err := NewLLMProvider("gemini", "", "", "test-key")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		geminiProvider, ok := provider.(*gemini.GeminiProvider)
		if !ok {
			t.Fatalf("provider type = %T, want *gemini.GeminiProvider", provider)
		}
		if geminiProvider.ModelName != "gemini-1.5-flash" {
			t.Errorf("ModelName = %q, want gemini-1.5-flash", geminiProvider.ModelName)
		}
	})

	t.Run("gemini requires api key", func(t *testing.T) {
		_, err := NewLLMProvider("gemini", "", "", "")
		if err == nil {
			t.Fatal("expected error without api key")
		}
	})

	t.Run("unsupported provider", func(t *testing.T) {
		_, err := NewLLMProvider("openai", "", "", "")
		if err == nil {
			t.Fatal("expected error for unsupported provider")
		}
		if !strings.Contains(err.Error(), "unsupported") {
			t.Errorf("error = %v, want unsupported provider message", err)
		}
	})
}
