package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/AlibekovAA/portfolio-api/internal/common/constants"
	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	"github.com/AlibekovAA/portfolio-api/internal/common/httpmetrics"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
	"github.com/AlibekovAA/portfolio-api/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError renders err as an error envelope. Domain errors keep their
// status and safe message; anything else is logged and becomes a generic 500.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) {
			h.log.WithFields(ctx, logger.Fields{"action": "request_timeout"}).Warnf("request timed out: %v", err)
		} else {
			h.log.WithFields(ctx, logger.Fields{"action": "unhandled_error"}).Errorf("unhandled error: %v", err)
		}
		domainErr = commonerrors.ErrInternalError.WithCause(err)
	}

	status := domainErr.HTTPStatus()
	fields := logger.Fields{
		"error_code": domainErr.Code(),
		"category":   string(domainErr.Category()),
		"status":     status,
		"action":     "domain_error",
	}
	if status >= http.StatusInternalServerError {
		h.log.WithFields(ctx, fields).Errorf("request failed: %v", err)
	} else if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(ctx, fields).Debugf("domain error: %v", err)
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()
	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteErrorEnvelope(w, status, domainErr.Code(), domainErr.Message(), domainErr.Details(), traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(constants.TraceIDKey).(string)
	return traceID
}
