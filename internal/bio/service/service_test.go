package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	biodomain "github.com/AlibekovAA/portfolio-api/internal/bio/domain"
	biorepo "github.com/AlibekovAA/portfolio-api/internal/bio/repository"
	"github.com/AlibekovAA/portfolio-api/internal/bio/service"
	biodto "github.com/AlibekovAA/portfolio-api/internal/bio/service/dto"
	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

type mockBioRepo struct {
	findFirstFunc func(ctx context.Context) (biodomain.Bio, error)
	createFunc    func(ctx context.Context, bio biodomain.Bio) (biodomain.Bio, error)
	updateFunc    func(ctx context.Context, bio biodomain.Bio) (biodomain.Bio, error)
}

func (m *mockBioRepo) FindFirst(ctx context.Context) (biodomain.Bio, error) {
	if m.findFirstFunc != nil {
		return m.findFirstFunc(ctx)
	}
	return biodomain.Bio{}, biorepo.ErrBioNotFound
}

func (m *mockBioRepo) Create(ctx context.Context, bio biodomain.Bio) (biodomain.Bio, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, bio)
	}
	bio.ID = 1
	return bio, nil
}

func (m *mockBioRepo) Update(ctx context.Context, bio biodomain.Bio) (biodomain.Bio, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, bio)
	}
	return bio, nil
}

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newService(repo *mockBioRepo) *service.BioService {
	return service.NewBioService(repo, clock.NewMockClock(testNow), logger.NewWithWriter(io.Discard, "test", "info"))
}

func validInput() biodto.BioInput {
	github := "https://github.com/alice"
	return biodto.BioInput{
		FullName:  "Alice Example",
		Title:     "Backend Engineer",
		Summary:   "Builds APIs.",
		Email:     "alice@x.com",
		GitHubURL: &github,
	}
}

func TestBioService_Get_NotFound(t *testing.T) {
	svc := newService(&mockBioRepo{})

	_, err := svc.Get(context.Background())
	if !errors.Is(err, service.ErrBioNotFound) {
		t.Fatalf("expected ErrBioNotFound, got %v", err)
	}
	if de, _ := commonerrors.AsDomainError(err); de.HTTPStatus() != 404 {
		t.Errorf("expected 404, got %d", de.HTTPStatus())
	}
}

func TestBioService_Create_StampsTimestamps(t *testing.T) {
	var stored biodomain.Bio
	svc := newService(&mockBioRepo{
		createFunc: func(_ context.Context, bio biodomain.Bio) (biodomain.Bio, error) {
			stored = bio
			bio.ID = 5
			return bio, nil
		},
	})

	got, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 5 || got.FullName != "Alice Example" {
		t.Errorf("unexpected dto %+v", got)
	}
	if !stored.CreatedAt.Equal(testNow) || !stored.UpdatedAt.Equal(testNow) {
		t.Errorf("expected timestamps from the clock, got %v / %v", stored.CreatedAt, stored.UpdatedAt)
	}
	if got.GitHubURL == nil || *got.GitHubURL != "https://github.com/alice" {
		t.Errorf("expected optional field to be carried, got %v", got.GitHubURL)
	}
}

func TestBioService_Create_ValidationError(t *testing.T) {
	called := false
	svc := newService(&mockBioRepo{
		createFunc: func(_ context.Context, bio biodomain.Bio) (biodomain.Bio, error) {
			called = true
			return bio, nil
		},
	})

	input := validInput()
	input.Email = "nope"
	bad := "not a url"
	input.WebsiteURL = &bad

	_, err := svc.Create(context.Background(), input)
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "VALIDATION_FAILED" {
		t.Fatalf("expected validation error, got %v", err)
	}
	if de.Details()["email"] == nil || de.Details()["websiteUrl"] == nil {
		t.Errorf("expected email and websiteUrl details, got %v", de.Details())
	}
	if called {
		t.Error("store must not be called for invalid input")
	}
}

func TestBioService_Update(t *testing.T) {
	created := testNow.Add(-48 * time.Hour)
	svc := newService(&mockBioRepo{
		updateFunc: func(_ context.Context, bio biodomain.Bio) (biodomain.Bio, error) {
			if bio.ID != 7 {
				t.Errorf("expected id 7, got %d", bio.ID)
			}
			bio.CreatedAt = created
			return bio, nil
		},
	})

	got, err := svc.Update(context.Background(), 7, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.UpdatedAt.Equal(testNow) || !got.CreatedAt.Equal(created) {
		t.Errorf("unexpected timestamps %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestBioService_Update_Missing(t *testing.T) {
	svc := newService(&mockBioRepo{
		updateFunc: func(context.Context, biodomain.Bio) (biodomain.Bio, error) {
			return biodomain.Bio{}, biorepo.ErrBioNotFound
		},
	})

	if _, err := svc.Update(context.Background(), 99, validInput()); !errors.Is(err, service.ErrBioNotFound) {
		t.Fatalf("expected ErrBioNotFound, got %v", err)
	}
}

func TestBioService_StoreFailure(t *testing.T) {
	svc := newService(&mockBioRepo{
		findFirstFunc: func(context.Context) (biodomain.Bio, error) {
			return biodomain.Bio{}, errors.New("boom")
		},
	})

	if _, err := svc.Get(context.Background()); !errors.Is(err, commonerrors.ErrDatabaseError) {
		t.Fatalf("expected database error, got %v", err)
	}
}
