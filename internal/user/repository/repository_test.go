package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/portfolio-api/internal/user/domain"
)

type fakeRow struct {
	scan func(dest ...interface{}) error
}

func (r fakeRow) Scan(dest ...interface{}) error { return r.scan(dest...) }

type fakeDB struct {
	queryRowFunc func(sql string, args ...interface{}) pgx.Row
	execFunc     func(sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return f.execFunc(sql, args...)
}

func (f *fakeDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	return f.queryRowFunc(sql, args...)
}

func errRow(err error) pgx.Row {
	return fakeRow{scan: func(...interface{}) error { return err }}
}

func TestPgRepository_FindByEmail_NormalizesAndScans(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var gotArg interface{}

	repo := NewPgRepository(&fakeDB{
		queryRowFunc: func(sql string, args ...interface{}) pgx.Row {
			gotArg = args[0]
			return fakeRow{scan: func(dest ...interface{}) error {
				*dest[0].(*int64) = 7
				*dest[1].(*string) = "alice"
				*dest[2].(*string) = "alice@x.com"
				*dest[3].(*string) = "hash"
				*dest[4].(*time.Time) = created
				return nil
			}}
		},
	})

	user, err := repo.FindByEmail(context.Background(), "  Alice@X.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArg != "alice@x.com" {
		t.Errorf("expected normalized email argument, got %v", gotArg)
	}
	if user.ID != 7 || user.Username != "alice" || !user.CreatedAt.Equal(created) || user.LastLoginAt != nil {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestPgRepository_FindByUsername_NotFound(t *testing.T) {
	repo := NewPgRepository(&fakeDB{
		queryRowFunc: func(string, ...interface{}) pgx.Row { return errRow(pgx.ErrNoRows) },
	})

	_, err := repo.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPgRepository_Create_AssignsID(t *testing.T) {
	repo := NewPgRepository(&fakeDB{
		queryRowFunc: func(sql string, args ...interface{}) pgx.Row {
			if args[1] != "bob@x.com" {
				t.Errorf("expected normalized email, got %v", args[1])
			}
			return fakeRow{scan: func(dest ...interface{}) error {
				*dest[0].(*int64) = 11
				return nil
			}}
		},
	})

	user, err := repo.Create(context.Background(), domain.User{Username: "bob", Email: "Bob@x.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 11 || user.Email != "bob@x.com" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestPgRepository_Create_UniqueViolations(t *testing.T) {
	cases := map[string]error{
		"users_email_key":    ErrEmailAlreadyExists,
		"users_username_key": ErrUsernameAlreadyExists,
	}

	for constraint, want := range cases {
		t.Run(constraint, func(t *testing.T) {
			repo := NewPgRepository(&fakeDB{
				queryRowFunc: func(string, ...interface{}) pgx.Row {
					return errRow(&pgconn.PgError{Code: "23505", ConstraintName: constraint})
				},
			})

			_, err := repo.Create(context.Background(), domain.User{Username: "bob", Email: "bob@x.com", PasswordHash: "h"})
			if !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
		})
	}
}

func TestPgRepository_Update(t *testing.T) {
	login := time.Now().UTC()
	var gotArgs []interface{}

	repo := NewPgRepository(&fakeDB{
		execFunc: func(sql string, args ...interface{}) (pgconn.CommandTag, error) {
			gotArgs = args
			return pgconn.CommandTag("UPDATE 1"), nil
		},
	})

	err := repo.Update(context.Background(), domain.User{ID: 3, Username: "alice", Email: "alice@x.com", PasswordHash: "h", LastLoginAt: &login})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[0] != int64(3) || gotArgs[4] != &login {
		t.Errorf("unexpected args %v", gotArgs)
	}
}

func TestPgRepository_Update_Missing(t *testing.T) {
	repo := NewPgRepository(&fakeDB{
		execFunc: func(string, ...interface{}) (pgconn.CommandTag, error) {
			return pgconn.CommandTag("UPDATE 0"), nil
		},
	})

	if err := repo.Update(context.Background(), domain.User{ID: 99}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
