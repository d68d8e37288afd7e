package http

import (
	"net/http"

	"github.com/AlibekovAA/portfolio-api/internal/common/constants"
	"github.com/AlibekovAA/portfolio-api/internal/common/httpmetrics"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

// BuildBaseHandler wraps the router with the middleware chain every request
// passes through, outermost first.
func BuildBaseHandler(log *logger.Logger, allowedOrigins []string, handler http.Handler) http.Handler {
	collector := httpmetrics.New("/metrics", "/health")
	recovery := RecoveryMiddleware(log)
	cors := CORS(allowedOrigins)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(cors(TraceIDMiddleware(recovery(maxRequestSize(collector.Wrap(handler))))))
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteErrorEnvelope(w, http.StatusNotFound, CodeRouteNotFound, "route not found", nil, TraceIDFromContext(r.Context()))
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	WriteErrorEnvelope(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed", nil, TraceIDFromContext(r.Context()))
}
