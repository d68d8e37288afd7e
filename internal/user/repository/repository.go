package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/db"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/user/domain"
)

const usersTable = "users"

const (
	emailConstraint    = "users_email_key"
	usernameConstraint = "users_username_key"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Repository is the credential store. Email and username uniqueness is
// enforced by the database; Create reports a lost race as
// ErrEmailAlreadyExists or ErrUsernameAlreadyExists.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) error
}

type PgRepository struct {
	db db.DBTX
}

func NewPgRepository(conn db.DBTX) *PgRepository {
	return &PgRepository{db: conn}
}

const selectUser = `SELECT id, username, email, password_hash, created_at, last_login_at FROM users`

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, "find user by email", selectUser+` WHERE email = $1`, domain.NormalizeEmail(email))
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, "find user by username", selectUser+` WHERE username = $1`, username)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(ctx, "find user by id", selectUser+` WHERE id = $1`, int64(id))
}

func (r *PgRepository) findOne(ctx context.Context, operation, query string, arg interface{}) (domain.User, error) {
	start := time.Now()

	var (
		user domain.User
		id   int64
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.LastLoginAt,
	)
	if err := db.HandleQueryError(err, ErrUserNotFound, operation, usersTable, start); err != nil {
		return domain.User{}, err
	}
	user.ID = domain.ID(id)
	return user, nil
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	user.Email = domain.NormalizeEmail(user.Email)

	var id int64
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO users (username, email, password_hash, created_at, last_login_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.LastLoginAt,
	).Scan(&id)
	if conflict := conflictError(err); conflict != nil {
		db.ObserveQuery("create user", usersTable, start)
		return domain.User{}, conflict
	}
	if err := db.HandleExecError(err, "create user", usersTable, start); err != nil {
		return domain.User{}, err
	}
	user.ID = domain.ID(id)
	return user, nil
}

func (r *PgRepository) Update(ctx context.Context, user domain.User) error {
	start := time.Now()
	user.Email = domain.NormalizeEmail(user.Email)

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users
		 SET username = $2, email = $3, password_hash = $4, last_login_at = $5
		 WHERE id = $1`,
		int64(user.ID),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.LastLoginAt,
	)
	if conflict := conflictError(err); conflict != nil {
		db.ObserveQuery("update user", usersTable, start)
		return conflict
	}
	if err := db.HandleExecError(err, "update user", usersTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// conflictError maps a unique violation on users to the matching sentinel.
func conflictError(err error) error {
	constraint, ok := db.UniqueViolation(err)
	if !ok {
		return nil
	}
	switch constraint {
	case emailConstraint:
		return ErrEmailAlreadyExists
	case usernameConstraint:
		return ErrUsernameAlreadyExists
	default:
		return commonerrors.ErrDatabaseError.WithCause(err)
	}
}
