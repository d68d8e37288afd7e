package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	biodto "github.com/AlibekovAA/portfolio-api/internal/bio/service/dto"
	commonhttp "github.com/AlibekovAA/portfolio-api/internal/common/http"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

type BioService interface {
	Get(ctx context.Context) (biodto.Bio, error)
	Create(ctx context.Context, input biodto.BioInput) (biodto.Bio, error)
	Update(ctx context.Context, id int64, input biodto.BioInput) (biodto.Bio, error)
}

type Handler struct {
	bio    BioService
	errors *commonhttp.ErrorHandler
}

// NewHandler returns the /api/bio sub-router. Writes go through requireAuth.
func NewHandler(bio BioService, requireAuth func(http.Handler) http.Handler, log *logger.Logger, requestTimeout time.Duration) http.Handler {
	h := &Handler{bio: bio, errors: commonhttp.NewErrorHandler(log)}

	r := chi.NewRouter()
	r.Use(commonhttp.WithTimeout(requestTimeout))
	r.NotFound(commonhttp.NotFoundHandler)
	r.MethodNotAllowed(commonhttp.MethodNotAllowedHandler)

	r.Get("/", h.get)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
	})
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	bio, err := h.bio.Get(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, bio)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input biodto.BioInput
	if err := commonhttp.DecodeJSON(r, &input); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	bio, err := h.bio.Create(r.Context(), input)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusCreated, bio)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.IDParam(r, "id")
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	var input biodto.BioInput
	if err := commonhttp.DecodeJSON(r, &input); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	bio, err := h.bio.Update(r.Context(), id, input)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, bio)
}
