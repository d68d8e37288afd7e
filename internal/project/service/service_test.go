package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	projectdomain "github.com/AlibekovAA/portfolio-api/internal/project/domain"
	projectrepo "github.com/AlibekovAA/portfolio-api/internal/project/repository"
	"github.com/AlibekovAA/portfolio-api/internal/project/service"
	projectdto "github.com/AlibekovAA/portfolio-api/internal/project/service/dto"
)

type mockProjectRepo struct {
	listFunc     func(ctx context.Context) ([]projectdomain.Project, error)
	findByIDFunc func(ctx context.Context, id int64) (projectdomain.Project, error)
	createFunc   func(ctx context.Context, p projectdomain.Project) (projectdomain.Project, error)
	updateFunc   func(ctx context.Context, p projectdomain.Project) (projectdomain.Project, error)
	deleteFunc   func(ctx context.Context, id int64) error
}

func (m *mockProjectRepo) List(ctx context.Context) ([]projectdomain.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []projectdomain.Project{}, nil
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id int64) (projectdomain.Project, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return projectdomain.Project{}, projectrepo.ErrProjectNotFound
}

func (m *mockProjectRepo) Create(ctx context.Context, p projectdomain.Project) (projectdomain.Project, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	p.ID = 1
	return p, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, p projectdomain.Project) (projectdomain.Project, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, p)
	}
	return p, nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newService(repo *mockProjectRepo) *service.ProjectService {
	return service.NewProjectService(repo, clock.NewMockClock(testNow), logger.NewWithWriter(io.Discard, "test", "info"))
}

func validInput() projectdto.ProjectInput {
	return projectdto.ProjectInput{
		Title:        "Portfolio API",
		Description:  "Go backend",
		Technologies: []string{"go", "postgres"},
		DisplayOrder: 1,
	}
}

func TestProjectService_List(t *testing.T) {
	svc := newService(&mockProjectRepo{
		listFunc: func(context.Context) ([]projectdomain.Project, error) {
			return []projectdomain.Project{{ID: 2, Title: "a"}, {ID: 1, Title: "b"}}, nil
		},
	})

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Errorf("expected store order to be kept, got %+v", got)
	}
	if got[0].Technologies == nil {
		t.Error("expected technologies to serialize as an empty list")
	}
}

func TestProjectService_Get_NotFound(t *testing.T) {
	_, err := newService(&mockProjectRepo{}).Get(context.Background(), 5)
	if !errors.Is(err, service.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Create_DefaultsActive(t *testing.T) {
	var stored projectdomain.Project
	svc := newService(&mockProjectRepo{
		createFunc: func(_ context.Context, p projectdomain.Project) (projectdomain.Project, error) {
			stored = p
			p.ID = 3
			return p, nil
		},
	})

	got, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}
	if !stored.IsActive || !got.IsActive {
		t.Error("expected a missing isActive to default to true")
	}
	if !stored.CreatedAt.Equal(testNow) || !stored.UpdatedAt.Equal(testNow) {
		t.Errorf("expected clock timestamps, got %v / %v", stored.CreatedAt, stored.UpdatedAt)
	}

	inactive := false
	input := validInput()
	input.IsActive = &inactive
	if got, _ := svc.Create(context.Background(), input); got.IsActive {
		t.Error("expected explicit isActive=false to be kept")
	}
}

func TestProjectService_Create_Validation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)

	tests := []struct {
		name   string
		mutate func(*projectdto.ProjectInput)
		field  string
	}{
		{"missing title", func(in *projectdto.ProjectInput) { in.Title = "" }, "title"},
		{"negative order", func(in *projectdto.ProjectInput) { in.DisplayOrder = -1 }, "displayOrder"},
		{"end before start", func(in *projectdto.ProjectInput) { in.StartDate, in.EndDate = &start, &end }, "endDate"},
	}

	svc := newService(&mockProjectRepo{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			de, ok := commonerrors.AsDomainError(err)
			if !ok || de.Code() != "VALIDATION_FAILED" {
				t.Fatalf("expected validation error, got %v", err)
			}
			if de.Details()[tt.field] == nil {
				t.Errorf("expected details for %s, got %v", tt.field, de.Details())
			}
		})
	}
}

func TestProjectService_Update_Missing(t *testing.T) {
	svc := newService(&mockProjectRepo{
		updateFunc: func(context.Context, projectdomain.Project) (projectdomain.Project, error) {
			return projectdomain.Project{}, projectrepo.ErrProjectNotFound
		},
	})

	if _, err := svc.Update(context.Background(), 9, validInput()); !errors.Is(err, service.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Delete(t *testing.T) {
	calls := 0
	svc := newService(&mockProjectRepo{
		deleteFunc: func(context.Context, int64) error {
			calls++
			return nil
		},
	})

	for i := 0; i < 2; i++ {
		if err := svc.Delete(context.Background(), 4); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 store calls, got %d", calls)
	}

	svc = newService(&mockProjectRepo{
		deleteFunc: func(context.Context, int64) error { return errors.New("boom") },
	})
	if err := svc.Delete(context.Background(), 4); !errors.Is(err, commonerrors.ErrDatabaseError) {
		t.Fatalf("expected database error, got %v", err)
	}
}
