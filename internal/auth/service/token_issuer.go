package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	"github.com/AlibekovAA/portfolio-api/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/portfolio-api/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	userdomain "github.com/AlibekovAA/portfolio-api/internal/user/domain"
)

type Issuer interface {
	Issue(user userdomain.User) (string, time.Time, error)
}

// TokenIssuer signs HS256 access tokens. The secret never leaves this type
// and the boundary verifier.
type TokenIssuer struct {
	jwtSecret      []byte
	idGenerator    commoncrypto.IDGenerator
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	clock clock.Clock,
) (*TokenIssuer, error) {
	if len(jwtSecret) < constants.JWTSecretMinLength {
		return nil, commonerrors.ErrInvalidJWTSecret
	}
	if accessTokenTTL <= 0 {
		return nil, commonerrors.ErrInvalidTokenTTL
	}

	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		idGenerator:    idGenerator,
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}, nil
}

// Issue returns a signed token and its expiry. The issue instant is truncated
// to whole seconds so that exp - iat equals the configured TTL exactly.
func (ti *TokenIssuer) Issue(user userdomain.User) (string, time.Time, error) {
	now := ti.clock.Now().UTC().Truncate(time.Second)
	expiresAt := now.Add(ti.accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"usr":   user.Username,
		"email": user.Email,
		"jti":   ti.idGenerator.NewID(),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.jwtSecret)
	if err != nil {
		return "", time.Time{}, ErrTokenIssue.WithCause(err)
	}

	incrementAccessTokensIssued()
	return tokenString, expiresAt, nil
}
