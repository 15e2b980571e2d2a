package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"code":"1;"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &ErrRateLimit{}},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"code":"1;"}` || resp.Usage.InputTokens != 10 || resp.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}

	var un *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &un) {
		t.Fatalf("expected ErrProviderUnavailable once drained, got %T", err)
	}

	if mock.CallCount() != 3 || mock.Calls[0].System != "sys" {
		t.Fatalf("calls not recorded: %d", mock.CallCount())
	}
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestJSONResponse(t *testing.T) {
	mock := NewMockProvider(JSONResponse(map[string]string{"code": "2 * 3;"}))
	var out struct {
		Code string `json:"code"`
	}
	if err := GenerateJSON(context.Background(), mock, "p", "s", programSchema(), 100, 0.7, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Code != "2 * 3;" {
		t.Fatalf("expected decoded code, got %q", out.Code)
	}
	if mock.Calls[0].Schema == nil || mock.Calls[0].Temperature != 0.7 {
		t.Fatalf("schema or temperature not forwarded: %+v", mock.Calls[0])
	}
}

func TestComplete(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage("  Recursive Process\n")},
		MockResponse{Content: json.RawMessage("   ")},
	)

	text, err := Complete(context.Background(), mock, "Which process?", "Answer briefly.", 64, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Recursive Process" {
		t.Fatalf("expected trimmed text, got %q", text)
	}
	call := mock.Calls[0]
	if call.System != "Answer briefly." || call.MaxTokens != 64 || call.Messages[0].Content != "Which process?" {
		t.Fatalf("request not built from arguments: %+v", call)
	}

	var inv *ErrInvalidResponse
	if _, err := Complete(context.Background(), mock, "again", "", 64, 0); !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse for empty completion, got %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, PurposeCode)); p != PurposeCode {
		t.Fatalf("expected %q, got %q", PurposeCode, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		noCredErr bool
	}{
		{"gemini without key", Config{Provider: ProviderGemini}, true, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "k"}}, false, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false, false},
		{"unknown provider", Config{Provider: "bard"}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrNoCredentials) != tt.noCredErr {
				t.Fatalf("errors.Is(ErrNoCredentials) = %v, want %v", !tt.noCredErr, tt.noCredErr)
			}
		})
	}
}

func clearLLMEnv(t *testing.T) {
	for _, k := range []string{
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"SOURCEQUIZ_LLM_PROVIDER", "SOURCEQUIZ_LLM_MODEL", "SOURCEQUIZ_LLM_TEMPERATURE",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults to gemma without keys", func(t *testing.T) {
		clearLLMEnv(t)
		cfg := ConfigFromEnv()
		if cfg.Provider != ProviderGemini || cfg.Model() != "gemma-3-27b-it" || cfg.Temperature != DefaultTemperature {
			t.Fatalf("unexpected defaults: %s %s %v", cfg.Provider, cfg.Model(), cfg.Temperature)
		}
		if _, ok := DiscoverConfig(); ok {
			t.Fatal("expected discovery to fail without keys")
		}
		if _, _, err := NewProviderFromEnv(context.Background(), nil, nil); !errors.Is(err, ErrNoCredentials) {
			t.Fatalf("expected ErrNoCredentials, got %v", err)
		}
	})

	t.Run("discovery order", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("OPENROUTER_API_KEY", "or")
		t.Setenv("ANTHROPIC_API_KEY", "an")
		cfg, ok := DiscoverConfig()
		if !ok || cfg.Provider != ProviderAnthropic {
			t.Fatalf("expected anthropic, got %q (ok=%v)", cfg.Provider, ok)
		}
		t.Setenv("GOOGLE_API_KEY", "g")
		if cfg := ConfigFromEnv(); cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g" {
			t.Fatalf("expected gemini from GOOGLE_API_KEY, got %q", cfg.Provider)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk")
		t.Setenv("SOURCEQUIZ_LLM_PROVIDER", ProviderOpenRouter)
		t.Setenv("SOURCEQUIZ_LLM_MODEL", "meta-llama/llama-3-8b")
		t.Setenv("SOURCEQUIZ_LLM_TEMPERATURE", "0.2")
		cfg := ConfigFromEnv()
		if cfg.Provider != ProviderOpenRouter || cfg.OpenRouter.Model != "meta-llama/llama-3-8b" || cfg.Temperature != 0.2 {
			t.Fatalf("overrides not applied: %+v", cfg)
		}
		if err := cfg.Validate(); !errors.Is(err, ErrNoCredentials) {
			t.Fatalf("expected missing openrouter key, got %v", err)
		}
	})

	t.Run("bad temperature ignored", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("SOURCEQUIZ_LLM_TEMPERATURE", "warm")
		if cfg := ConfigFromEnv(); cfg.Temperature != DefaultTemperature {
			t.Fatalf("expected default temperature, got %v", cfg.Temperature)
		}
	})
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock provider, got %q", p.ModelID())
	}
}
