// Package retry runs an operation under exponential backoff with jitter.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Config bounds the retry loop.
type Config struct {
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultConfig suits slow-to-start backing services like ClickHouse.
func DefaultConfig() Config {
	return Config{Attempts: 5, InitialDelay: time.Second, MaxDelay: 30 * time.Second}
}

// WithBackoff calls fn until it succeeds, the attempts run out, or ctx is
// cancelled. The delay doubles per attempt up to MaxDelay, with up to 30%
// jitter so restarting replicas don't reconnect in lockstep.
func WithBackoff(ctx context.Context, cfg Config, logger *zap.Logger, operation string, fn func() error) error {
	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				logger.Info("operation recovered",
					zap.String("operation", operation),
					zap.Int("attempts", attempt))
			}
			return nil
		}
		if attempt >= cfg.Attempts {
			return fmt.Errorf("%s: %d attempts: %w", operation, attempt, err)
		}

		logger.Warn("operation failed, will retry",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", operation, ctx.Err())
		case <-time.After(jittered(delay)):
		}

		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}

func jittered(d time.Duration) time.Duration {
	spread := time.Duration(rand.Int63n(int64(d)/3 + 1))
	return d - d/6 + spread
}
