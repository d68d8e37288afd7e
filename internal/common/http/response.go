package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
)

type ErrorEnvelope struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	TraceID string         `json:"trace_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteErrorEnvelope(w, status, code, message, nil, "")
}

func WriteErrorEnvelope(w http.ResponseWriter, status int, code, message string, details map[string]any, traceID string) {
	env := ErrorEnvelope{Code: code, Message: message, TraceID: traceID}
	if len(details) > 0 {
		env.Details = details
	}
	WriteJSON(w, status, env)
}

var ErrBodyTooLarge = commonerrors.NewDomainError(
	CodeBodyTooLarge,
	commonerrors.CategoryValidation,
	http.StatusRequestEntityTooLarge,
	"request body too large",
)

// DecodeJSON decodes the request body into v. Malformed or empty bodies map to
// ErrInvalidJSON, bodies over the size limit to ErrBodyTooLarge.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge.WithCause(err)
		}
		if errors.Is(err, io.EOF) {
			return commonerrors.ErrInvalidJSON.WithCause(errors.New("empty body"))
		}
		return commonerrors.ErrInvalidJSON.WithCause(err)
	}
	return nil
}

// IDParam parses the positive int64 chi URL parameter name.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, commonerrors.ErrInvalidID
	}
	return id, nil
}

func WithTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
