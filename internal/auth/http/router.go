package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/portfolio-api/internal/auth/service"
	commonhttp "github.com/AlibekovAA/portfolio-api/internal/common/http"
	"github.com/AlibekovAA/portfolio-api/internal/common/logger"
)

type AuthService interface {
	Register(ctx context.Context, input service.RegisterInput) (service.AuthResult, error)
	Login(ctx context.Context, input service.LoginInput) (service.AuthResult, error)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Handler struct {
	auth   AuthService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

// NewHandler returns the /api/auth sub-router.
func NewHandler(auth AuthService, log *logger.Logger, requestTimeout time.Duration) http.Handler {
	h := &Handler{
		auth:   auth,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}

	r := chi.NewRouter()
	r.Use(commonhttp.WithTimeout(requestTimeout))
	r.NotFound(commonhttp.NotFoundHandler)
	r.MethodNotAllowed(commonhttp.MethodNotAllowedHandler)
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	return r
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "register_invalid_json"}).Warnf("register failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login_invalid_json"}).Warnf("login failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result service.AuthResult) authResponse {
	return authResponse{
		Token:     result.Token,
		Username:  result.Username,
		Email:     result.Email,
		ExpiresAt: result.ExpiresAt,
	}
}
