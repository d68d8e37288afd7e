package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	commonerrors "github.com/AlibekovAA/portfolio-api/internal/common/errors"
	commonhttp "github.com/AlibekovAA/portfolio-api/internal/common/http"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "debug")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) commonhttp.ErrorEnvelope {
	t.Helper()
	var env commonhttp.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return env
}

func TestErrorHandler_DomainError(t *testing.T) {
	h := commonhttp.NewErrorHandler(testLogger())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projects/9", nil)

	h.HandleError(rec, req, fmt.Errorf("lookup: %w", commonerrors.ErrNotFound))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Code != "NOT_FOUND" || env.Message != "resource not found" {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestErrorHandler_DetailsArePassedThrough(t *testing.T) {
	h := commonhttp.NewErrorHandler(testLogger())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)

	err := commonerrors.ErrValidationFailed.WithDetails(map[string]any{"email": "is required"})
	h.HandleError(rec, req, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Details["email"] != "is required" {
		t.Errorf("expected email detail, got %+v", env.Details)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric500(t *testing.T) {
	h := commonhttp.NewErrorHandler(testLogger())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bio", nil)

	h.HandleError(rec, req, errors.New("pq: password authentication failed for user admin"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "password authentication") {
		t.Errorf("internal detail leaked into response: %s", body)
	}
	var env commonhttp.ErrorEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatal(err)
	}
	if env.Message != "internal server error" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	if err := commonhttp.DecodeJSON(req, &dst); err != nil || dst.Name != "x" {
		t.Fatalf("unexpected result %v %q", err, dst.Name)
	}

	for _, body := range []string{"", "{", "not json"} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if err := commonhttp.DecodeJSON(req, &dst); !errors.Is(err, commonerrors.ErrInvalidJSON) {
			t.Errorf("body %q: expected ErrInvalidJSON, got %v", body, err)
		}
	}
}
