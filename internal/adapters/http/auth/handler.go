// Package auth exposes the operator login and logout endpoints.
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	appauth "arthakarya/ms_coretax_exporter/internal/application/auth"
	httperrors "arthakarya/ms_coretax_exporter/internal/infrastructure/http"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/http/middleware"
)

// Handler bridges HTTP traffic with the auth application service.
type Handler struct {
	service *appauth.Service
	// secureCookies marks session cookies Secure; disabled for local
	// development over plain HTTP.
	secureCookies bool
	log           *slog.Logger
}

// NewHandler creates a new auth HTTP handler.
func NewHandler(service *appauth.Service, secureCookies bool, log *slog.Logger) *Handler {
	return &Handler{service: service, secureCookies: secureCookies, log: log}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captcha_token"`
}

// LoginResponse represents a successful login response.
type LoginResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /auth/login requests.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var reqBody LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Validation error", []string{"Request body is not valid JSON"}, h.log)
		return
	}

	session, err := h.service.Login(r.Context(), reqBody.Username, reqBody.Password, reqBody.CaptchaToken)
	if err != nil {
		h.writeLoginError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	httperrors.WriteJSON(w, http.StatusOK, LoginResponse{
		Username:  reqBody.Username,
		ExpiresAt: session.ExpiresAt,
	}, h.log)
}

// Logout handles POST /auth/logout requests by expiring the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appauth.ErrCaptchaRejected):
		httperrors.WriteError(w, http.StatusUnauthorized, "Unauthorized", []string{"Captcha verification failed"}, h.log)
	case errors.Is(err, appauth.ErrInvalidCredentials):
		httperrors.WriteError(w, http.StatusUnauthorized, "Unauthorized", []string{"Invalid credentials"}, h.log)
	default:
		h.log.Error("login failed", "error", err)
		httperrors.WriteError(w, http.StatusInternalServerError, "Internal server error", []string{"Could not process the login request"}, h.log)
	}
}
