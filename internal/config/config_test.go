package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "")

	cfg := Load()

	if cfg.App.Port != "" {
		// explicit empty value wins over the fallback
		t.Errorf("expected empty port override, got %q", cfg.App.Port)
	}
	if cfg.Ai.GenerationTimeout != 60 {
		t.Errorf("expected default generation timeout 60, got %d", cfg.Ai.GenerationTimeout)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "15")

	cfg := Load()

	if cfg.App.Port != "8081" {
		t.Errorf("expected port 8081, got %q", cfg.App.Port)
	}
	if cfg.Ai.LLMProvider != "ollama" {
		t.Errorf("expected provider ollama, got %q", cfg.Ai.LLMProvider)
	}
	if cfg.Ai.GenerationTimeout != 15 {
		t.Errorf("expected generation timeout 15, got %d", cfg.Ai.GenerationTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "gemini without key",
			cfg: Config{
				Ai: AIConfig{LLMProvider: "gemini"},
			},
			wantErr: true,
		},
		{
			name: "gemini with key",
			cfg: Config{
				Keys: APIKeys{GoogleGemini: "test-key"},
				Ai:   AIConfig{LLMProvider: "gemini"},
			},
			wantErr: false,
		},
		{
			name: "ollama needs no key",
			cfg: Config{
				Ai: AIConfig{LLMProvider: "ollama"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
