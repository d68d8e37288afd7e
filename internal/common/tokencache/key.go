package tokencache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// tokenKey keeps raw bearer tokens out of cache keys.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// entryTTL bounds an entry by both the cache TTL and the token's own expiry.
func entryTTL(now, tokenExpiry time.Time, ttl time.Duration) time.Duration {
	remaining := tokenExpiry.Sub(now)
	if ttl <= 0 || remaining < ttl {
		return remaining
	}
	return ttl
}
