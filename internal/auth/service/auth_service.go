package service

import (
	"context"
	"errors"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/portfolio-api/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/common/validation"
	userdomain "github.com/AlibekovAA/portfolio-api/internal/user/domain"
	userrepo "github.com/AlibekovAA/portfolio-api/internal/user/repository"
)

type AuthServiceDeps struct {
	Repo   userrepo.Repository
	Hasher commoncrypto.PasswordHasher
	Issuer Issuer
	Clock  clock.Clock
	Log    *logger.Logger
}

// AuthService registers users and logs them in. It holds no per-user state;
// every call performs at most one store write and one token issuance.
type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	issuer Issuer
	clock  clock.Clock
	log    *logger.Logger
	// dummyHash is verified against when the email is unknown so that both
	// invalid-credential paths pay the same hashing cost.
	dummyHash string
}

const dummyPassword = "portfolio-login-timing-equaliser"

func NewAuthService(deps AuthServiceDeps) *AuthService {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	dummyHash, err := deps.Hasher.Hash(dummyPassword)
	if err != nil {
		deps.Log.Warnf("failed to precompute login dummy hash: %v", err)
	}
	return &AuthService{
		repo:      deps.Repo,
		hasher:    deps.Hasher,
		issuer:    deps.Issuer,
		clock:     deps.Clock,
		log:       deps.Log,
		dummyHash: dummyHash,
	}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,max=200"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type AuthResult struct {
	Token     string
	Username  string
	Email     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	email := userdomain.NormalizeEmail(input.Email)
	fields := logger.Fields{"username": input.Username, "action": "register_attempt"}
	s.log.WithFields(ctx, fields).Info("register attempt")

	if err := validation.Validate(input); err != nil {
		fields["action"] = "register_validation_failed"
		s.log.WithFields(ctx, fields).Warnf("register validation failed: %v", err)
		recordRegistration("invalid")
		return AuthResult{}, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		fields["action"] = "register_email_exists"
		s.log.WithFields(ctx, fields).Warn("register failed: email already registered")
		recordRegistration("duplicate_email")
		return AuthResult{}, ErrDuplicateEmail
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		return AuthResult{}, s.storeFailure(ctx, fields, "register_lookup_failed", err)
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		fields["action"] = "register_username_exists"
		s.log.WithFields(ctx, fields).Warn("register failed: username already taken")
		recordRegistration("duplicate_username")
		return AuthResult{}, ErrDuplicateUsername
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		return AuthResult{}, s.storeFailure(ctx, fields, "register_lookup_failed", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		fields["action"] = "register_hash_failed"
		s.log.WithFields(ctx, fields).Errorf("register failed: password hash error: %v", err)
		recordRegistration("error")
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user, err := s.repo.Create(ctx, userdomain.User{
		Username:     input.Username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	})
	switch {
	case errors.Is(err, userrepo.ErrEmailAlreadyExists):
		fields["action"] = "register_email_conflict"
		s.log.WithFields(ctx, fields).Warn("register failed: email claimed concurrently")
		recordRegistration("duplicate_email")
		return AuthResult{}, ErrDuplicateEmail
	case errors.Is(err, userrepo.ErrUsernameAlreadyExists):
		fields["action"] = "register_username_conflict"
		s.log.WithFields(ctx, fields).Warn("register failed: username claimed concurrently")
		recordRegistration("duplicate_username")
		return AuthResult{}, ErrDuplicateUsername
	case err != nil:
		return AuthResult{}, s.storeFailure(ctx, fields, "register_create_failed", err)
	}

	result, err := s.issue(ctx, user)
	if err != nil {
		recordRegistration("error")
		return AuthResult{}, err
	}

	fields["action"] = "register_success"
	fields["user_id"] = user.ID.String()
	s.log.WithFields(ctx, fields).Info("user registered")
	recordRegistration("success")
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	fields := logger.Fields{"action": "login_attempt"}
	s.log.WithFields(ctx, fields).Info("login attempt")

	if err := validation.Validate(input); err != nil {
		recordLogin("invalid")
		return AuthResult{}, err
	}

	user, err := s.repo.FindByEmail(ctx, userdomain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.hasher.Verify(input.Password, s.dummyHash)
			fields["action"] = "login_invalid_credentials"
			s.log.WithFields(ctx, fields).Warn("login failed: invalid credentials")
			recordLogin("invalid_credentials")
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, s.loginStoreFailure(ctx, fields, "login_lookup_failed", err)
	}

	fields["user_id"] = user.ID.String()
	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		fields["action"] = "login_invalid_credentials"
		s.log.WithFields(ctx, fields).Warn("login failed: invalid credentials")
		recordLogin("invalid_credentials")
		return AuthResult{}, ErrInvalidCredentials
	}

	now := s.clock.Now()
	user.LastLoginAt = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return AuthResult{}, s.loginStoreFailure(ctx, fields, "login_update_failed", err)
	}

	result, err := s.issue(ctx, user)
	if err != nil {
		recordLogin("error")
		return AuthResult{}, err
	}

	fields["action"] = "login_success"
	s.log.WithFields(ctx, fields).Info("login successful")
	recordLogin("success")
	return result, nil
}

func (s *AuthService) issue(ctx context.Context, user userdomain.User) (AuthResult, error) {
	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": user.ID.String(),
			"action":  "token_issue_failed",
		}).Errorf("token issue failed: %v", err)
		if commonerrors.IsDomainError(err) {
			return AuthResult{}, err
		}
		return AuthResult{}, ErrTokenIssue.WithCause(err)
	}

	return AuthResult{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) storeFailure(ctx context.Context, fields logger.Fields, action string, err error) error {
	fields["action"] = action
	s.log.WithFields(ctx, fields).Errorf("register failed: %v", err)
	recordRegistration("error")
	return commonerrors.ErrDatabaseError.WithCause(err)
}

func (s *AuthService) loginStoreFailure(ctx context.Context, fields logger.Fields, action string, err error) error {
	fields["action"] = action
	s.log.WithFields(ctx, fields).Errorf("login failed: %v", err)
	recordLogin("error")
	return commonerrors.ErrDatabaseError.WithCause(err)
}
