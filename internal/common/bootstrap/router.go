package bootstrap

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/portfolio-api/internal/auth/http"
	biohttp "github.com/AlibekovAA/portfolio-api/internal/bio/http"
	commonhttp "github.com/AlibekovAA/portfolio-api/internal/common/http"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	contacthttp "github.com/AlibekovAA/portfolio-api/internal/contact/http"
	projecthttp "github.com/AlibekovAA/portfolio-api/internal/project/http"
)

type RouterDeps struct {
	Log                *logger.Logger
	DB                 commonhttp.Pinger
	Auth               authhttp.AuthService
	Bio                biohttp.BioService
	Projects           projecthttp.ProjectService
	Contacts           contacthttp.ContactService
	RequireAuth        func(http.Handler) http.Handler
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

type Router struct {
	handler http.Handler
}

// NewRouter mounts every feature under /api and wraps the result in the base
// middleware chain. /health and /metrics stay at the root.
func NewRouter(deps RouterDeps) *Router {
	r := chi.NewRouter()
	r.NotFound(commonhttp.NotFoundHandler)
	r.MethodNotAllowed(commonhttp.MethodNotAllowedHandler)

	r.Get("/health", commonhttp.HealthHandler(deps.Log, deps.DB))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", authhttp.NewHandler(deps.Auth, deps.Log, deps.RequestTimeout))
		api.Mount("/bio", biohttp.NewHandler(deps.Bio, deps.RequireAuth, deps.Log, deps.RequestTimeout))
		api.Mount("/projects", projecthttp.NewHandler(deps.Projects, deps.RequireAuth, deps.Log, deps.RequestTimeout))
		api.Mount("/contact", contacthttp.NewHandler(deps.Contacts, deps.RequireAuth, deps.Log, deps.RequestTimeout))
	})

	return &Router{handler: commonhttp.BuildBaseHandler(deps.Log, deps.CORSAllowedOrigins, r)}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
