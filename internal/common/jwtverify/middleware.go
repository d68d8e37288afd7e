package jwtverify

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	commonhttp "github.com/AlibekovAA/portfolio-api/internal/common/http"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/observability/metrics"
)

const bearerPrefix = "Bearer "

type Verifier struct {
	secret []byte
	clock  clock.Clock
	cache  ClaimsCache
	log    *logger.Logger
}

// NewVerifier builds the boundary-side token check. cache may be nil.
func NewVerifier(secret string, clk clock.Clock, cache ClaimsCache, log *logger.Logger) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		clock:  clk,
		cache:  cache,
		log:    log,
	}
}

func (v *Verifier) Verify(ctx context.Context, tokenString string) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	if v.cache != nil {
		if claims, ok := v.cache.Get(ctx, tokenString); ok && v.clock.Now().Before(claims.ExpiresAt) {
			return claims, nil
		}
	}

	claims, err := ParseToken(tokenString, v.secret, v.clock.Now)
	if err != nil {
		metrics.JWTValidationsFailed.Inc()
		return Claims{}, err
	}

	if v.cache != nil {
		v.cache.Set(ctx, tokenString, claims)
	}
	return claims, nil
}

func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		traceID := commonhttp.TraceIDFromContext(ctx)

		raw := r.Header.Get("Authorization")
		if !strings.HasPrefix(raw, bearerPrefix) || strings.TrimSpace(raw[len(bearerPrefix):]) == "" {
			v.log.WithFields(ctx, logger.Fields{"path": r.URL.Path, "action": "jwt_missing"}).Warn("jwt auth failed: missing or invalid authorization header")
			writeAuthError(w, commonerrors.ErrMissingAuthorization, traceID)
			return
		}

		claims, err := v.Verify(ctx, strings.TrimSpace(raw[len(bearerPrefix):]))
		if err != nil {
			v.log.WithFields(ctx, logger.Fields{"path": r.URL.Path, "action": "jwt_invalid"}).Warnf("jwt auth failed: %v", err)
			writeAuthError(w, commonerrors.ErrInvalidToken, traceID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
	})
}

func writeAuthError(w http.ResponseWriter, err commonerrors.DomainError, traceID string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	commonhttp.WriteErrorEnvelope(w, err.HTTPStatus(), err.Code(), err.Message(), nil, traceID)
}

// ParseToken checks an HS256 token's signature and expiry against now and
// extracts its claims.
func ParseToken(tokenString string, secret []byte, now func() time.Time) (Claims, error) {
	if now == nil {
		now = time.Now
	}

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, commonerrors.ErrInvalidTokenSigningMethod
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}
	if !parsed.Valid {
		return Claims{}, commonerrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, commonerrors.ErrInvalidTokenClaims
	}

	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["usr"].(string)
	email, _ := mapClaims["email"].(string)
	jti, _ := mapClaims["jti"].(string)
	if sub == "" || username == "" {
		return Claims{}, commonerrors.ErrMissingTokenClaims
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, commonerrors.ErrInvalidTokenClaims
	}
	claims := Claims{
		UserID:    sub,
		Username:  username,
		Email:     email,
		TokenID:   jti,
		ExpiresAt: exp.Time,
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	return claims, nil
}
