package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/common/validation"
	"github.com/AlibekovAA/portfolio-api/internal/observability/metrics"
	projectrepo "github.com/AlibekovAA/portfolio-api/internal/project/repository"
	projectdto "github.com/AlibekovAA/portfolio-api/internal/project/service/dto"
	"github.com/AlibekovAA/portfolio-api/internal/project/service/mapper"
)

var ErrProjectNotFound = commonerrors.NewDomainError(
	"PROJECT_NOT_FOUND",
	commonerrors.CategoryNotFound,
	http.StatusNotFound,
	"project not found",
)

type ProjectService struct {
	repo  projectrepo.Repository
	clock clock.Clock
	log   *logger.Logger
}

func NewProjectService(repo projectrepo.Repository, clk clock.Clock, log *logger.Logger) *ProjectService {
	return &ProjectService{repo: repo, clock: clk, log: log}
}

func (s *ProjectService) List(ctx context.Context) ([]projectdto.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.mapError(ctx, "project_list_failed", err)
	}
	return mapper.ProjectsToDTO(projects), nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (projectdto.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return projectdto.Project{}, s.mapError(ctx, "project_get_failed", err)
	}
	return mapper.ProjectToDTO(project), nil
}

func (s *ProjectService) Create(ctx context.Context, input projectdto.ProjectInput) (projectdto.Project, error) {
	if err := validateInput(input); err != nil {
		return projectdto.Project{}, err
	}

	project, err := s.repo.Create(ctx, mapper.ProjectFromInput(0, input, s.clock.Now()))
	if err != nil {
		return projectdto.Project{}, s.mapError(ctx, "project_create_failed", err)
	}

	metrics.ContentWritesTotal.WithLabelValues("project", "create").Inc()
	s.log.WithFields(ctx, logger.Fields{"project_id": project.ID, "action": "project_create_success"}).Info("project created")
	return mapper.ProjectToDTO(project), nil
}

func (s *ProjectService) Update(ctx context.Context, id int64, input projectdto.ProjectInput) (projectdto.Project, error) {
	if err := validateInput(input); err != nil {
		return projectdto.Project{}, err
	}

	project, err := s.repo.Update(ctx, mapper.ProjectFromInput(id, input, s.clock.Now()))
	if err != nil {
		return projectdto.Project{}, s.mapError(ctx, "project_update_failed", err)
	}

	metrics.ContentWritesTotal.WithLabelValues("project", "update").Inc()
	s.log.WithFields(ctx, logger.Fields{"project_id": project.ID, "action": "project_update_success"}).Info("project updated")
	return mapper.ProjectToDTO(project), nil
}

// Delete is idempotent: removing an unknown id succeeds.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(ctx, "project_delete_failed", err)
	}

	metrics.ContentWritesTotal.WithLabelValues("project", "delete").Inc()
	s.log.WithFields(ctx, logger.Fields{"project_id": id, "action": "project_delete_success"}).Info("project deleted")
	return nil
}

func validateInput(input projectdto.ProjectInput) error {
	if err := validation.Validate(input); err != nil {
		return err
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return commonerrors.ErrValidationFailed.WithDetails(map[string]any{
			"endDate": "must not be before startDate",
		})
	}
	return nil
}

func (s *ProjectService) mapError(ctx context.Context, action string, err error) error {
	if errors.Is(err, projectrepo.ErrProjectNotFound) {
		return ErrProjectNotFound
	}
	s.log.WithFields(ctx, logger.Fields{"action": action}).Errorf("project store error: %v", err)
	return commonerrors.ErrDatabaseError.WithCause(err)
}
