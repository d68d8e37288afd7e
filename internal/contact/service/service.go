package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/AlibekovAA/portfolio-api/internal/common/clock"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/common/validation"
	contactrepo "github.com/AlibekovAA/portfolio-api/internal/contact/repository"
	contactdto "github.com/AlibekovAA/portfolio-api/internal/contact/service/dto"
	"github.com/AlibekovAA/portfolio-api/internal/contact/service/mapper"
	"github.com/AlibekovAA/portfolio-api/internal/observability/metrics"
)

var ErrContactNotFound = commonerrors.NewDomainError(
	"CONTACT_NOT_FOUND",
	commonerrors.CategoryNotFound,
	http.StatusNotFound,
	"contact message not found",
)

type ContactService struct {
	repo  contactrepo.Repository
	clock clock.Clock
	log   *logger.Logger
}

func NewContactService(repo contactrepo.Repository, clk clock.Clock, log *logger.Logger) *ContactService {
	return &ContactService{repo: repo, clock: clk, log: log}
}

// Submit stores a message from the public contact form.
func (s *ContactService) Submit(ctx context.Context, input contactdto.ContactInput) (contactdto.Contact, error) {
	input = mapper.SanitizeInput(input)
	if err := validation.Validate(input); err != nil {
		return contactdto.Contact{}, err
	}

	contact, err := s.repo.Create(ctx, mapper.ContactFromInput(input, s.clock.Now()))
	if err != nil {
		return contactdto.Contact{}, s.mapError(ctx, "contact_create_failed", err)
	}

	metrics.ContentWritesTotal.WithLabelValues("contact", "create").Inc()
	s.log.WithFields(ctx, logger.Fields{"contact_id": contact.ID, "action": "contact_create_success"}).Info("contact message received")
	return mapper.ContactToDTO(contact), nil
}

func (s *ContactService) List(ctx context.Context) ([]contactdto.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.mapError(ctx, "contact_list_failed", err)
	}
	return mapper.ContactsToDTO(contacts), nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (contactdto.Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return contactdto.Contact{}, s.mapError(ctx, "contact_get_failed", err)
	}
	return mapper.ContactToDTO(contact), nil
}

func (s *ContactService) MarkRead(ctx context.Context, id int64) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return s.mapError(ctx, "contact_mark_read_failed", err)
	}

	metrics.ContentWritesTotal.WithLabelValues("contact", "mark_read").Inc()
	s.log.WithFields(ctx, logger.Fields{"contact_id": id, "action": "contact_mark_read_success"}).Info("contact message marked read")
	return nil
}

func (s *ContactService) mapError(ctx context.Context, action string, err error) error {
	if errors.Is(err, contactrepo.ErrContactNotFound) {
		return ErrContactNotFound
	}
	s.log.WithFields(ctx, logger.Fields{"action": action}).Errorf("contact store error: %v", err)
	return commonerrors.ErrDatabaseError.WithCause(err)
}
