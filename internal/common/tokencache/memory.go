package tokencache

import (
	"context"
	"sync"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	"github.com/AlibekovAA/portfolio-api/internal/common/constants"
	"github.com/AlibekovAA/portfolio-api/internal/common/jwtverify"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/observability/metrics"
)

type memoryEntry struct {
	claims    jwtverify.Claims
	expiresAt time.Time
}

// Memory is a process-local claims cache with a background sweeper.
type Memory struct {
	entries sync.Map
	clock   clock.Clock
	ttl     time.Duration
	log     *logger.Logger
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewMemory(ctx context.Context, clk clock.Clock, ttl time.Duration, log *logger.Logger) *Memory {
	cacheCtx, cancel := context.WithCancel(ctx)
	m := &Memory{
		clock:  clk,
		ttl:    ttl,
		log:    log,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go m.cleanup(cacheCtx, constants.TokenCacheCleanupPeriod)

	return m
}

func (m *Memory) Get(_ context.Context, token string) (jwtverify.Claims, bool) {
	key := tokenKey(token)
	if v, ok := m.entries.Load(key); ok {
		e := v.(*memoryEntry)
		if m.clock.Now().Before(e.expiresAt) {
			metrics.TokenCacheLookups.WithLabelValues("memory", "hit").Inc()
			return e.claims, true
		}
		m.entries.Delete(key)
	}
	metrics.TokenCacheLookups.WithLabelValues("memory", "miss").Inc()
	return jwtverify.Claims{}, false
}

func (m *Memory) Set(_ context.Context, token string, claims jwtverify.Claims) {
	now := m.clock.Now()
	ttl := entryTTL(now, claims.ExpiresAt, m.ttl)
	if ttl <= 0 {
		return
	}
	m.entries.Store(tokenKey(token), &memoryEntry{
		claims:    claims,
		expiresAt: now.Add(ttl),
	})
}

func (m *Memory) size() int {
	n := 0
	m.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (m *Memory) sweep() int {
	now := m.clock.Now()
	removed := 0
	m.entries.Range(func(key, value any) bool {
		if !now.Before(value.(*memoryEntry).expiresAt) {
			m.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func (m *Memory) cleanup(ctx context.Context, every time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := m.sweep(); removed > 0 {
				m.log.Debugf("token cache cleaned up %d expired entries", removed)
			}
		}
	}
}

// Close stops the sweeper and waits for it to exit.
func (m *Memory) Close() error {
	m.cancel()
	<-m.done
	return nil
}
