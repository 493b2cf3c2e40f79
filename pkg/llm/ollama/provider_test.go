package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-writing-assistant-be/pkg/llm"
)

func TestChatSendsMappedHistory(t *testing.T) {
	var captured ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:   captured.Model,
			Message: ollamaMessage{Role: "assistant", Content: "Fixed text."},
			Done:    true,
		})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	history := []llm.Message{
		{Role: "user", Content: "Fix this"},
		{Role: "model", Content: "Done"},
	}

	got, err := provider.Chat(context.Background(), history, llm.WithMaxTokens(128))
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if got != "Fixed text." {
		t.Errorf("Chat = %q, want %q", got, "Fixed text.")
	}
	if captured.Model != "llama3" {
		t.Errorf("request model = %q, want llama3", captured.Model)
	}
	if captured.Stream {
		t.Error("request should disable streaming")
	}
	if len(captured.Messages) != 2 || captured.Messages[1].Role != "assistant" {
		t.Errorf("history not mapped, got %+v", captured.Messages)
	}
	if captured.Options == nil || captured.Options.NumPredict != 128 {
		t.Errorf("num_predict not propagated, got %+v", captured.Options)
	}
}

func TestGenerateUsesGenerateEndpoint(t *testing.T) {
	var captured ollamaGenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaGenerateResponse{
			Model:    captured.Model,
			Response: "A corrected sentence.",
			Done:     true,
		})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	got, err := provider.Generate(context.Background(), "Fix grammar in: teh cat", llm.WithModel("mistral"))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "A corrected sentence." {
		t.Errorf("Generate = %q, want %q", got, "A corrected sentence.")
	}
	if captured.Prompt != "Fix grammar in: teh cat" {
		t.Errorf("prompt = %q", captured.Prompt)
	}
	if captured.Model != "mistral" {
		t.Errorf("model override not applied, got %q", captured.Model)
	}
}

func TestGenerateWrapsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "llama3")
	_, err := provider.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on upstream failure")
	}

	var genErr *llm.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error should be a GenerationError, got %T", err)
	}
	if genErr.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", genErr.Provider)
	}
}
