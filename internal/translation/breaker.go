package translation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings controls when a provider is taken out of rotation.
type BreakerSettings struct {
	// MaxConsecutiveFailures trips the breaker.
	MaxConsecutiveFailures uint32
	// Cooldown is how long an open breaker rejects calls.
	Cooldown time.Duration
}

// DefaultBreakerSettings trips after five transport failures in a row.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxConsecutiveFailures: 5,
		Cooldown:               time.Minute,
	}
}

// breakerProvider stops calling a provider that keeps failing. Only
// transport errors count as failures; a missing translation is a normal
// answer.
type breakerProvider struct {
	Provider
	cb *gobreaker.CircuitBreaker
}

// WithBreaker wraps p in a circuit breaker.
func WithBreaker(p Provider, settings BreakerSettings, log *slog.Logger) Provider {
	if log == nil {
		log = slog.Default()
	}
	return &breakerProvider{
		Provider: p,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    p.Name(),
			Timeout: settings.Cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= settings.MaxConsecutiveFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("translation provider breaker changed state",
					slog.String("provider", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			},
		}),
	}
}

func (b *breakerProvider) Translate(ctx context.Context, word, source, target string) Outcome {
	var outcome Outcome
	_, err := b.cb.Execute(func() (interface{}, error) {
		outcome = b.Provider.Translate(ctx, word, source, target)
		if outcome.Kind == KindTransport {
			return nil, outcome.Err
		}
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return TransportError(b.Name(), err)
	}
	return outcome
}
