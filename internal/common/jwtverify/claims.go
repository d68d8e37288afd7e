package jwtverify

import (
	"context"
	"time"
)

type Claims struct {
	UserID    string    `json:"sub"`
	Username  string    `json:"usr"`
	Email     string    `json:"email"`
	TokenID   string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// ClaimsCache memoizes verified claims by token string. Implementations must
// never return an entry past the token's own expiry.
type ClaimsCache interface {
	Get(ctx context.Context, token string) (Claims, bool)
	Set(ctx context.Context, token string, claims Claims)
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}
