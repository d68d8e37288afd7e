package jwtverify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "42",
		"usr":   "alice",
		"email": "alice@x.com",
		"jti":   "id-1",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

type countingCache struct {
	entries map[string]Claims
	gets    int
	sets    int
}

func (c *countingCache) Get(_ context.Context, token string) (Claims, bool) {
	c.gets++
	cl, ok := c.entries[token]
	return cl, ok
}

func (c *countingCache) Set(_ context.Context, token string, claims Claims) {
	c.sets++
	c.entries[token] = claims
}

func TestParseToken_Valid(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	claims, err := ParseToken(token, []byte(testSecret), func() time.Time { return now })
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, "id-1", claims.TokenID)
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestParseToken_Rejects(t *testing.T) {
	at := func() time.Time { return now }

	expired := validClaims()
	expired["exp"] = now.Add(-time.Second).Unix()

	noSub := validClaims()
	delete(noSub, "sub")

	noExp := validClaims()
	delete(noExp, "exp")

	cases := map[string]string{
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), validClaims()),
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"missing sub":  sign(t, jwt.SigningMethodHS256, []byte(testSecret), noSub),
		"missing exp":  sign(t, jwt.SigningMethodHS256, []byte(testSecret), noExp),
		"wrong alg":    sign(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims()),
		"none alg":     sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims()),
		"garbage":      "not.a.token",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(token, []byte(testSecret), at)
			require.Error(t, err)
			assert.True(t, commonerrors.IsDomainError(err))
		})
	}
}

func newVerifier(cache ClaimsCache) *Verifier {
	return NewVerifier(testSecret, clock.NewMockClock(now), cache, logger.NewWithWriter(io.Discard, "test", "info"))
}

func TestVerifier_UsesCache(t *testing.T) {
	cache := &countingCache{entries: map[string]Claims{}}
	v := newVerifier(cache)
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	first, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "second verification should be served from cache")
	assert.Equal(t, first, second)
}

func TestVerifier_TamperedTokenMissesCache(t *testing.T) {
	cache := &countingCache{entries: map[string]Claims{}}
	v := newVerifier(cache)
	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	_, err := v.Verify(context.Background(), token)
	require.NoError(t, err)

	tampered := []byte(token)
	idx := len(tampered) - 10
	if tampered[idx] == 'A' {
		tampered[idx] = 'B'
	} else {
		tampered[idx] = 'A'
	}

	_, err = v.Verify(context.Background(), string(tampered))
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidToken))
}

func TestMiddleware(t *testing.T) {
	v := newVerifier(nil)
	var got Claims
	h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "alice", got.Username)

	for name, header := range map[string]string{
		"missing":    "",
		"basic":      "Basic abc",
		"empty":      "Bearer ",
		"bad token":  "Bearer nope",
		"lower case": "bearer " + token,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			var env struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
			assert.NotEmpty(t, env.Message)
		})
	}
}
