package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// DefaultTemperature is the sampling temperature used for code and question
// text generation.
const DefaultTemperature = 0.7

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Empty means pick the first provider
	// with a key in the environment.
	Provider string

	// Temperature is passed to every request made through Complete.
	Temperature float64

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
	Resilience ResilienceConfig

	// Timeout bounds a single Generate call, retries included.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // OpenAI-compatible endpoint override
}

// GeminiConfig holds Gemini API configuration. Gemma models are served
// through the same API.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config targeting Gemma on the Gemini API.
func DefaultConfig() Config {
	return Config{
		Provider:    ProviderGemini,
		Temperature: DefaultTemperature,
		Anthropic:   AnthropicConfig{Model: "claude-haiku"},
		OpenAI:      OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:      GeminiConfig{Model: "gemma-3-27b-it"},
		OpenRouter:  OpenRouterConfig{Model: "google/gemma-3-27b-it"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Resilience: DefaultResilienceConfig(),
		Timeout:    60 * time.Second,
	}
}

// ConfigFromEnv reads API keys from the standard variables and the
// SOURCEQUIZ_LLM_* overrides. When SOURCEQUIZ_LLM_PROVIDER is unset the
// first provider with a key wins, in the order Gemini, OpenAI, Anthropic,
// OpenRouter.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Provider = ""

	cfg.Gemini.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAI.BaseURL = os.Getenv("OPENAI_BASE_URL")
	cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")

	if p := os.Getenv("SOURCEQUIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	} else if p, ok := cfg.discover(); ok {
		cfg.Provider = p
	} else {
		cfg.Provider = ProviderGemini
	}

	if m := os.Getenv("SOURCEQUIZ_LLM_MODEL"); m != "" {
		cfg.SetModel(m)
	}
	if t := os.Getenv("SOURCEQUIZ_LLM_TEMPERATURE"); t != "" {
		if v, err := strconv.ParseFloat(t, 64); err == nil && v >= 0 {
			cfg.Temperature = v
		}
	}

	return cfg
}

// DiscoverConfig returns a Config for the first provider whose key is in
// the environment, or false when there is none.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	if _, ok := cfg.discover(); !ok {
		return Config{}, false
	}
	return cfg, true
}

func (c Config) discover() (string, bool) {
	switch {
	case c.Gemini.APIKey != "":
		return ProviderGemini, true
	case c.OpenAI.APIKey != "":
		return ProviderOpenAI, true
	case c.Anthropic.APIKey != "":
		return ProviderAnthropic, true
	case c.OpenRouter.APIKey != "":
		return ProviderOpenRouter, true
	}
	return "", false
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	}
}

// Model returns the model configured for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has an API key. A missing key
// wraps ErrNoCredentials.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("%w: set ANTHROPIC_API_KEY", ErrNoCredentials)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY", ErrNoCredentials)
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: set GEMINI_API_KEY or GOOGLE_API_KEY", ErrNoCredentials)
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("%w: set OPENROUTER_API_KEY", ErrNoCredentials)
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
