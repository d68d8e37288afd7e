package service

import (
	"context"
	"errors"
	"net/http"

	biorepo "github.com/AlibekovAA/portfolio-api/internal/bio/repository"
	biodto "github.com/AlibekovAA/portfolio-api/internal/bio/service/dto"
	"github.com/AlibekovAA/portfolio-api/internal/bio/service/mapper"
	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/common/validation"
	"github.com/AlibekovAA/portfolio-api/internal/observability/metrics"
)

var ErrBioNotFound = commonerrors.NewDomainError(
	"BIO_NOT_FOUND",
	commonerrors.CategoryNotFound,
	http.StatusNotFound,
	"bio not found",
)

type BioService struct {
	repo  biorepo.Repository
	clock clock.Clock
	log   *logger.Logger
}

func NewBioService(repo biorepo.Repository, clk clock.Clock, log *logger.Logger) *BioService {
	return &BioService{repo: repo, clock: clk, log: log}
}

// Get returns the first stored bio.
func (s *BioService) Get(ctx context.Context) (biodto.Bio, error) {
	bio, err := s.repo.FindFirst(ctx)
	if err != nil {
		return biodto.Bio{}, s.mapError(ctx, "bio_get_failed", err)
	}
	return mapper.BioToDTO(bio), nil
}

func (s *BioService) Create(ctx context.Context, input biodto.BioInput) (biodto.Bio, error) {
	if err := validation.Validate(input); err != nil {
		return biodto.Bio{}, err
	}

	bio, err := s.repo.Create(ctx, mapper.BioFromInput(0, input, s.clock.Now()))
	if err != nil {
		return biodto.Bio{}, s.mapError(ctx, "bio_create_failed", err)
	}

	metrics.ContentWritesTotal.WithLabelValues("bio", "create").Inc()
	s.log.WithFields(ctx, logger.Fields{"bio_id": bio.ID, "action": "bio_create_success"}).Info("bio created")
	return mapper.BioToDTO(bio), nil
}

func (s *BioService) Update(ctx context.Context, id int64, input biodto.BioInput) (biodto.Bio, error) {
	if err := validation.Validate(input); err != nil {
		return biodto.Bio{}, err
	}

	bio, err := s.repo.Update(ctx, mapper.BioFromInput(id, input, s.clock.Now()))
	if err != nil {
		return biodto.Bio{}, s.mapError(ctx, "bio_update_failed", err)
	}

	metrics.ContentWritesTotal.WithLabelValues("bio", "update").Inc()
	s.log.WithFields(ctx, logger.Fields{"bio_id": bio.ID, "action": "bio_update_success"}).Info("bio updated")
	return mapper.BioToDTO(bio), nil
}

func (s *BioService) mapError(ctx context.Context, action string, err error) error {
	if errors.Is(err, biorepo.ErrBioNotFound) {
		return ErrBioNotFound
	}
	s.log.WithFields(ctx, logger.Fields{"action": action}).Errorf("bio store error: %v", err)
	return commonerrors.ErrDatabaseError.WithCause(err)
}
