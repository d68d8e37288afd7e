package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid email or password",
	)

	ErrDuplicateEmail = commonerrors.NewDomainError(
		"DUPLICATE_EMAIL",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Email is already registered",
	)

	ErrDuplicateUsername = commonerrors.NewDomainError(
		"DUPLICATE_USERNAME",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Username is already taken",
	)

	ErrTokenIssue = commonerrors.NewDomainError(
		"TOKEN_ISSUE_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
