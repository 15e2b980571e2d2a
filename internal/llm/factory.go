package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/sourcequiz/internal/store"
)

// NewProvider builds the configured backend and wraps it:
// caller → resilience → retry → logging → backend. A nil events repo skips
// request logging.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if events != nil {
		p = WithLogging(p, cfg.Provider, events, logger)
	}
	p = WithRetry(p, cfg.Retry)
	return WithResilience(p, cfg.Resilience, cfg.Timeout, logger), nil
}

// NewProviderFromEnv is NewProvider over ConfigFromEnv. It returns an error
// wrapping ErrNoCredentials when no key is available.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo, logger *slog.Logger) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	p, err := NewProvider(ctx, cfg, events, logger)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
