// Package resilience provides resilient model refreshing using fortify.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
)

// Errors
var (
	// ErrNilFetch indicates a refresher was created without a fetch
	// function.
	ErrNilFetch = errors.New("resilience: fetch function is required")
)

// FetchFunc retrieves a fresh model.
type FetchFunc[M any] func(ctx context.Context) (M, error)

// Refresher wraps a model fetch with retry and circuit breaker
// patterns. A model request from the safety layers means the run
// cannot make progress without a new model, so transient fetch
// failures are worth retrying.
type Refresher[M any] struct {
	fetch   FetchFunc[M]
	breaker circuitbreaker.CircuitBreaker[M]
	retry   retry.Retry[M]
}

// RefresherConfig configures the refresher.
type RefresherConfig struct {
	// MaxAttempts is the maximum number of fetch attempts per refresh.
	MaxAttempts int

	// InitialDelay is the initial delay between retries.
	InitialDelay time.Duration

	// BackoffMultiplier is the exponential backoff multiplier.
	BackoffMultiplier float64

	// BreakerThreshold is the number of consecutive failures before
	// the circuit opens.
	BreakerThreshold int

	// BreakerTimeout is how long the circuit stays open.
	BreakerTimeout time.Duration
}

// DefaultRefresherConfig returns a configuration with sensible defaults.
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		MaxAttempts:       3,
		InitialDelay:      100 * time.Millisecond,
		BackoffMultiplier: 2.0,
		BreakerThreshold:  5,
		BreakerTimeout:    30 * time.Second,
	}
}

// NewRefresher creates a refresher around the given fetch function.
func NewRefresher[M any](fetch FetchFunc[M], config RefresherConfig) (*Refresher[M], error) {
	if fetch == nil {
		return nil, ErrNilFetch
	}

	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultRefresherConfig().MaxAttempts
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = DefaultRefresherConfig().InitialDelay
	}
	if config.BackoffMultiplier < 1 {
		config.BackoffMultiplier = DefaultRefresherConfig().BackoffMultiplier
	}
	threshold := config.BreakerThreshold
	if threshold <= 0 {
		threshold = DefaultRefresherConfig().BreakerThreshold
	}
	timeout := config.BreakerTimeout
	if timeout <= 0 {
		timeout = DefaultRefresherConfig().BreakerTimeout
	}

	return &Refresher[M]{
		fetch: fetch,
		breaker: circuitbreaker.New[M](circuitbreaker.Config{
			MaxRequests: 1,
			Interval:    timeout,
			Timeout:     timeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounds checked above
			},
		}),
		retry: retry.New[M](retry.Config{
			MaxAttempts:   config.MaxAttempts,
			InitialDelay:  config.InitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    config.BackoffMultiplier,
		}),
	}, nil
}

// Fetch retrieves a fresh model, retrying transient failures.
func (r *Refresher[M]) Fetch(ctx context.Context) (M, error) {
	model, _, err := r.FetchWithAttempts(ctx)
	return model, err
}

// FetchWithAttempts retrieves a fresh model and reports how many fetch
// attempts were made.
func (r *Refresher[M]) FetchWithAttempts(ctx context.Context) (M, int, error) {
	attempts := 0

	model, err := r.breaker.Execute(ctx, func(ctx context.Context) (M, error) {
		return r.retry.Do(ctx, func(ctx context.Context) (M, error) {
			attempts++
			return r.fetch(ctx)
		})
	})

	return model, attempts, err
}
