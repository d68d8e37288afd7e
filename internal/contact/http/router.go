package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/AlibekovAA/portfolio-api/internal/common/http"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	contactdto "github.com/AlibekovAA/portfolio-api/internal/contact/service/dto"
)

type ContactService interface {
	Submit(ctx context.Context, input contactdto.ContactInput) (contactdto.Contact, error)
	List(ctx context.Context) ([]contactdto.Contact, error)
	Get(ctx context.Context, id int64) (contactdto.Contact, error)
	MarkRead(ctx context.Context, id int64) error
}

type Handler struct {
	contacts ContactService
	errors   *commonhttp.ErrorHandler
}

// NewHandler returns the /api/contact sub-router. Only submission is public.
func NewHandler(contacts ContactService, requireAuth func(http.Handler) http.Handler, log *logger.Logger, requestTimeout time.Duration) http.Handler {
	h := &Handler{contacts: contacts, errors: commonhttp.NewErrorHandler(log)}

	r := chi.NewRouter()
	r.Use(commonhttp.WithTimeout(requestTimeout))
	r.NotFound(commonhttp.NotFoundHandler)
	r.MethodNotAllowed(commonhttp.MethodNotAllowedHandler)

	r.Post("/", h.submit)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Patch("/{id}/mark-read", h.markRead)
	})
	return r
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var input contactdto.ContactInput
	if err := commonhttp.DecodeJSON(r, &input); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	contact, err := h.contacts.Submit(r.Context(), input)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusCreated, contact)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, contacts)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.IDParam(r, "id")
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	contact, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, contact)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.IDParam(r, "id")
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if err := h.contacts.MarkRead(r.Context(), id); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteNoContent(w)
}
