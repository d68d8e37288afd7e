package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/constants"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

var ConnectRetryConfig = RetryConfig{
	MaxAttempts:  constants.DBPoolMaxAttempts,
	InitialDelay: constants.DBPoolRetryDelay,
	MaxDelay:     5 * time.Second,
	Multiplier:   1.5,
}

// retryWithBackoff is used only while establishing connections at startup.
// Queries issued on behalf of requests are single-attempt.
func retryWithBackoff(ctx context.Context, log *logger.Logger, cfg RetryConfig, what string, operation func(context.Context) error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := operation(ctx)
		if err == nil {
			if attempt > 1 {
				log.Infof("%s succeeded after %d attempts", what, attempt)
			}
			return nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		log.Warnf("%s failed (attempt %d/%d): %v, retrying in %v", what, attempt, cfg.MaxAttempts, err, delay)

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", what, cfg.MaxAttempts, lastErr)
}
