package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/portfolio-api/internal/bio/domain"
)

type fakeRow struct {
	scan func(dest ...interface{}) error
}

func (r fakeRow) Scan(dest ...interface{}) error { return r.scan(dest...) }

type fakeDB struct {
	queryRowFunc func(sql string, args ...interface{}) pgx.Row
}

func (f *fakeDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...interface{}) pgx.Row {
	return f.queryRowFunc(sql, args...)
}

func TestPgRepository_FindFirst_NotFound(t *testing.T) {
	repo := NewPgRepository(&fakeDB{
		queryRowFunc: func(sql string, _ ...interface{}) pgx.Row {
			if !strings.Contains(sql, "ORDER BY id LIMIT 1") {
				t.Errorf("expected the first bio by id, got %q", sql)
			}
			return fakeRow{scan: func(...interface{}) error { return pgx.ErrNoRows }}
		},
	})

	if _, err := repo.FindFirst(context.Background()); !errors.Is(err, ErrBioNotFound) {
		t.Fatalf("expected ErrBioNotFound, got %v", err)
	}
}

func TestPgRepository_Create_AssignsID(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := NewPgRepository(&fakeDB{
		queryRowFunc: func(_ string, args ...interface{}) pgx.Row {
			if len(args) != 13 {
				t.Fatalf("expected 13 args, got %d", len(args))
			}
			return fakeRow{scan: func(dest ...interface{}) error {
				*dest[0].(*int64) = 3
				return nil
			}}
		},
	})

	bio, err := repo.Create(context.Background(), domain.Bio{FullName: "Alice", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bio.ID != 3 || bio.FullName != "Alice" {
		t.Errorf("unexpected bio %+v", bio)
	}
}

func TestPgRepository_Update_MissingRow(t *testing.T) {
	repo := NewPgRepository(&fakeDB{
		queryRowFunc: func(string, ...interface{}) pgx.Row {
			return fakeRow{scan: func(...interface{}) error { return pgx.ErrNoRows }}
		},
	})

	if _, err := repo.Update(context.Background(), domain.Bio{ID: 99}); !errors.Is(err, ErrBioNotFound) {
		t.Fatalf("expected ErrBioNotFound, got %v", err)
	}
}

func TestPgRepository_WrapsDriverErrors(t *testing.T) {
	driverErr := errors.New("conn closed")
	repo := NewPgRepository(&fakeDB{
		queryRowFunc: func(string, ...interface{}) pgx.Row {
			return fakeRow{scan: func(...interface{}) error { return driverErr }}
		},
	})

	_, err := repo.FindFirst(context.Background())
	if !errors.Is(err, driverErr) || errors.Is(err, ErrBioNotFound) {
		t.Fatalf("expected wrapped driver error, got %v", err)
	}
}
