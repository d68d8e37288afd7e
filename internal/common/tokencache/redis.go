package tokencache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	"github.com/AlibekovAA/portfolio-api/internal/common/constants"
	"github.com/AlibekovAA/portfolio-api/internal/common/jwtverify"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/common/resilience"
	"github.com/AlibekovAA/portfolio-api/internal/observability/metrics"
)

// Redis shares verified claims between API replicas. Redis failures degrade to
// a cache miss; the caller then verifies the signature itself. Repeated
// failures open a breaker so requests stop waiting on an unreachable server.
type Redis struct {
	client  *redis.Client
	breaker *resilience.CircuitBreaker
	clock   clock.Clock
	ttl     time.Duration
	prefix  string
	log     *logger.Logger
}

func NewRedis(client *redis.Client, clk clock.Clock, ttl time.Duration, log *logger.Logger) *Redis {
	return &Redis{
		client: client,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Threshold:  constants.RedisBreakerThreshold,
			Timeout:    constants.RedisBreakerTimeout,
			ResetAfter: constants.RedisBreakerResetAfter,
			Name:       "token_cache_redis",
			Ignore:     func(err error) bool { return errors.Is(err, redis.Nil) },
			Clock:      clk,
			Logger:     log,
		}),
		clock:  clk,
		ttl:    ttl,
		prefix: constants.TokenCacheKeyPrefix,
		log:    log,
	}
}

func (c *Redis) key(token string) string {
	return c.prefix + tokenKey(token)
}

func (c *Redis) Get(ctx context.Context, token string) (jwtverify.Claims, bool) {
	var raw []byte
	err := c.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		raw, err = c.client.Get(ctx, c.key(token)).Bytes()
		return err
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			metrics.TokenCacheLookups.WithLabelValues("redis", "skipped").Inc()
		} else if !errors.Is(err, redis.Nil) {
			c.log.WithFields(ctx, logger.Fields{"action": "token_cache_get_failed"}).Warnf("redis get failed: %v", err)
			metrics.TokenCacheLookups.WithLabelValues("redis", "error").Inc()
		} else {
			metrics.TokenCacheLookups.WithLabelValues("redis", "miss").Inc()
		}
		return jwtverify.Claims{}, false
	}

	var claims jwtverify.Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		c.log.WithFields(ctx, logger.Fields{"action": "token_cache_decode_failed"}).Warnf("redis entry decode failed: %v", err)
		metrics.TokenCacheLookups.WithLabelValues("redis", "error").Inc()
		return jwtverify.Claims{}, false
	}
	if !c.clock.Now().Before(claims.ExpiresAt) {
		metrics.TokenCacheLookups.WithLabelValues("redis", "miss").Inc()
		return jwtverify.Claims{}, false
	}

	metrics.TokenCacheLookups.WithLabelValues("redis", "hit").Inc()
	return claims, true
}

func (c *Redis) Set(ctx context.Context, token string, claims jwtverify.Claims) {
	ttl := entryTTL(c.clock.Now(), claims.ExpiresAt, c.ttl)
	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(claims)
	if err != nil {
		return
	}
	err = c.breaker.Call(ctx, func(ctx context.Context) error {
		return c.client.Set(ctx, c.key(token), raw, ttl).Err()
	})
	if err != nil && !errors.Is(err, resilience.ErrCircuitOpen) {
		c.log.WithFields(ctx, logger.Fields{"action": "token_cache_set_failed"}).Warnf("redis set failed: %v", err)
	}
}

func (c *Redis) Close() error {
	return c.client.Close()
}

// NewRedisClient connects and pings; a failed ping is returned so the caller
// can fall back to the in-memory cache.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
