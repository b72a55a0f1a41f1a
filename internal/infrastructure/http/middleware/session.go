package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"arthakarya/ms_coretax_exporter/internal/infrastructure/config"
	ctxutil "arthakarya/ms_coretax_exporter/internal/infrastructure/context"
	httperrors "arthakarya/ms_coretax_exporter/internal/infrastructure/http"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "__session"

// SessionAuthenticator validates the session cookie on inbound requests.
// Session tokens are HMAC-signed JWTs issued by the auth service with the
// configured session secret.
type SessionAuthenticator struct {
	cfg        config.AuthSettings
	log        *slog.Logger
	bypassPath map[string]struct{}
}

func NewSessionAuthenticator(cfg config.AuthSettings, log *slog.Logger) *SessionAuthenticator {
	auth := &SessionAuthenticator{
		cfg:        cfg,
		log:        log,
		bypassPath: make(map[string]struct{}),
	}
	for _, path := range cfg.BypassPaths {
		if path != "" {
			auth.bypassPath[path] = struct{}{}
		}
	}
	return auth
}

// Middleware enforces a valid session on inbound requests.
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	if !a.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.shouldBypass(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			httperrors.WriteError(w, http.StatusUnauthorized, "Unauthorized", []string{"Please login first."}, a.log)
			return
		}

		username, err := a.verify(cookie.Value)
		if err != nil {
			a.log.Warn("rejected session token", "path", r.URL.Path, "error", err)
			httperrors.WriteError(w, http.StatusUnauthorized, "Unauthorized", []string{"Session is invalid or expired."}, a.log)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxutil.WithUsername(r.Context(), username)))
	})
}

// verify parses and validates a session token, returning the subject.
// The token must be HMAC-signed with the session secret, unexpired, and
// its subject must match the configured operator username.
func (a *SessionAuthenticator) verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(a.cfg.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("read subject: %w", err)
	}
	if subject != a.cfg.Username {
		return "", fmt.Errorf("unknown session user")
	}

	return subject, nil
}

func (a *SessionAuthenticator) shouldBypass(path string) bool {
	_, ok := a.bypassPath[path]
	return ok
}
