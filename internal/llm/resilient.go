package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/ratelimit"
)

// ResilienceConfig configures the circuit breaker and rate limiter placed
// in front of a provider.
type ResilienceConfig struct {
	// FailureThreshold trips the breaker after this many consecutive
	// failures. Zero disables the breaker.
	FailureThreshold int
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration

	// RatePerSecond and Burst configure the limiter. Zero disables it.
	RatePerSecond int
	Burst         int
}

// DefaultResilienceConfig allows a short burst of generation calls and
// opens the breaker after five straight failures.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		RatePerSecond:    2,
		Burst:            6,
	}
}

// ResilientProvider guards a provider with a fortify circuit breaker and
// rate limiter, and bounds every call with a timeout.
type ResilientProvider struct {
	inner   Provider
	breaker circuitbreaker.CircuitBreaker[*Response]
	limiter ratelimit.RateLimiter
	timeout time.Duration
	logger  *slog.Logger
}

// WithResilience wraps p. A nil logger discards breaker transitions.
func WithResilience(p Provider, cfg ResilienceConfig, timeout time.Duration, logger *slog.Logger) *ResilientProvider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	rp := &ResilientProvider{inner: p, timeout: timeout, logger: logger}

	if cfg.FailureThreshold > 0 {
		threshold := cfg.FailureThreshold
		rp.breaker = circuitbreaker.New[*Response](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return int(counts.ConsecutiveFailures) >= threshold
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				rp.logger.Warn("llm circuit breaker state change",
					"model", p.ModelID(),
					"from", from.String(),
					"to", to.String())
			},
		})
	}

	if cfg.RatePerSecond > 0 {
		burst := max(cfg.Burst, cfg.RatePerSecond)
		rp.limiter = ratelimit.New(&ratelimit.Config{
			Rate:     cfg.RatePerSecond,
			Burst:    burst,
			Interval: time.Second,
		})
	}

	return rp
}

func (r *ResilientProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if r.limiter != nil && !r.limiter.Allow(ctx, r.inner.ModelID()) {
		r.logger.Debug("llm request rate limited", "model", r.inner.ModelID(), "purpose", PurposeFrom(ctx))
		return nil, &ErrRateLimit{RetryAfter: time.Second, Err: fmt.Errorf("local rate limit for %s", r.inner.ModelID())}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	call := func(ctx context.Context) (*Response, error) {
		return r.inner.Generate(ctx, req)
	}
	if r.breaker == nil {
		return call(ctx)
	}

	resp, err := r.breaker.Execute(ctx, call)
	if err != nil && !isProviderError(err) && ctx.Err() == nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	return resp, err
}

func (r *ResilientProvider) ModelID() string {
	return r.inner.ModelID()
}

// Close releases the limiter.
func (r *ResilientProvider) Close() error {
	if r.limiter != nil {
		return r.limiter.Close()
	}
	return nil
}
