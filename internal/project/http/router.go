package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	commonhttp "github.com/AlibekovAA/portfolio-api/internal/common/http"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	projectdto "github.com/AlibekovAA/portfolio-api/internal/project/service/dto"
)

type ProjectService interface {
	List(ctx context.Context) ([]projectdto.Project, error)
	Get(ctx context.Context, id int64) (projectdto.Project, error)
	Create(ctx context.Context, input projectdto.ProjectInput) (projectdto.Project, error)
	Update(ctx context.Context, id int64, input projectdto.ProjectInput) (projectdto.Project, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	projects ProjectService
	errors   *commonhttp.ErrorHandler
}

// NewHandler returns the /api/projects sub-router. Reads are public.
func NewHandler(projects ProjectService, requireAuth func(http.Handler) http.Handler, log *logger.Logger, requestTimeout time.Duration) http.Handler {
	h := &Handler{projects: projects, errors: commonhttp.NewErrorHandler(log)}

	r := chi.NewRouter()
	r.Use(commonhttp.WithTimeout(requestTimeout))
	r.NotFound(commonhttp.NotFoundHandler)
	r.MethodNotAllowed(commonhttp.MethodNotAllowedHandler)

	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, projects)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.IDParam(r, "id")
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, project)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input projectdto.ProjectInput
	if err := commonhttp.DecodeJSON(r, &input); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	project, err := h.projects.Create(r.Context(), input)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusCreated, project)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.IDParam(r, "id")
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	var input projectdto.ProjectInput
	if err := commonhttp.DecodeJSON(r, &input); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	project, err := h.projects.Update(r.Context(), id, input)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, project)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := commonhttp.IDParam(r, "id")
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if err := h.projects.Delete(r.Context(), id); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	commonhttp.WriteNoContent(w)
}
