package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/observability/metrics"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker stops calling a dependency after Threshold consecutive
// failures and lets a call through again once ResetAfter has elapsed since the
// last failure.
type CircuitBreaker struct {
	mu          sync.Mutex
	failures    int32
	lastFailure time.Time
	threshold   int32
	timeout     time.Duration
	resetAfter  time.Duration
	name        string
	ignore      func(error) bool
	clock       clock.Clock
	log         *logger.Logger
}

type CircuitBreakerConfig struct {
	Threshold  int32
	Timeout    time.Duration
	ResetAfter time.Duration
	Name       string
	// Ignore reports errors that are expected outcomes rather than failures,
	// e.g. a cache miss.
	Ignore func(error) bool
	Clock  clock.Clock
	Logger *logger.Logger
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	if config.Clock == nil {
		config.Clock = clock.NewRealClock()
	}
	return &CircuitBreaker{
		threshold:  config.Threshold,
		timeout:    config.Timeout,
		resetAfter: config.ResetAfter,
		name:       config.Name,
		ignore:     config.Ignore,
		clock:      config.Clock,
		log:        config.Logger,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.failures < cb.threshold || cb.lastFailure.IsZero() {
		cb.setState(0)
		return false
	}

	if cb.clock.Since(cb.lastFailure) > cb.resetAfter {
		cb.failures = 0
		cb.lastFailure = time.Time{}
		cb.setState(0)
		return false
	}

	cb.setState(1)
	return true
}

func (cb *CircuitBreaker) setState(state float64) {
	if cb.name != "" {
		metrics.CircuitBreakerState.WithLabelValues(cb.name).Set(state)
	}
}

func (cb *CircuitBreaker) recordFailure(err error) {
	cb.mu.Lock()
	cb.failures++
	cb.lastFailure = cb.clock.Now()
	failures := cb.failures
	cb.mu.Unlock()

	if cb.name != "" {
		metrics.CircuitBreakerFailures.WithLabelValues(cb.name).Inc()
	}
	if cb.log != nil {
		cb.log.Warnf("circuit breaker [%s]: failure %d/%d: %v", cb.name, failures, cb.threshold, err)
	}
}

func (cb *CircuitBreaker) reset() {
	cb.mu.Lock()
	cb.failures = 0
	cb.lastFailure = time.Time{}
	cb.mu.Unlock()
}

// Call runs fn with the configured timeout unless the circuit is open, in
// which case ErrCircuitOpen is returned without calling fn.
func (cb *CircuitBreaker) Call(ctx context.Context, fn func(context.Context) error) error {
	if cb.IsOpen() {
		return ErrCircuitOpen
	}

	callCtx := ctx
	if cb.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cb.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	if err != nil {
		if cb.ignore == nil || !cb.ignore(err) {
			cb.recordFailure(err)
		}
		return err
	}

	cb.reset()
	return nil
}
