// Package auth implements the operator login use case: captcha
// verification, credential check and session token issuance.
package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"arthakarya/ms_coretax_exporter/internal/infrastructure/config"
)

var (
	// ErrInvalidCredentials indicates the username or password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCaptchaRejected indicates the captcha token failed verification.
	ErrCaptchaRejected = errors.New("captcha verification failed")
)

// Verifier checks a captcha challenge token.
type Verifier interface {
	// Verify reports whether the token passes server-side verification.
	Verify(ctx context.Context, token string) (bool, error)
}

// Session is an issued session token and its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Service handles operator authentication.
type Service struct {
	cfg      config.AuthSettings
	verifier Verifier // optional: nil skips captcha verification
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new auth service. A nil verifier disables the
// captcha step, which is useful for local development.
func NewService(cfg config.AuthSettings, verifier Verifier, log *slog.Logger) *Service {
	return &Service{
		cfg:      cfg,
		verifier: verifier,
		log:      log,
		now:      time.Now,
	}
}

// Login verifies the captcha token and the operator credentials, then
// issues a signed session token.
func (s *Service) Login(ctx context.Context, username, password, captchaToken string) (Session, error) {
	if s.verifier != nil {
		ok, err := s.verifier.Verify(ctx, captchaToken)
		if err != nil {
			return Session{}, fmt.Errorf("verify captcha: %w", err)
		}
		if !ok {
			s.log.Warn("login rejected by captcha", "username", username)
			return Session{}, ErrCaptchaRejected
		}
	}

	if username != s.cfg.Username {
		s.log.Warn("login attempt for unknown user", "username", username)
		return Session{}, ErrInvalidCredentials
	}

	hash, err := base64.StdEncoding.DecodeString(s.cfg.PasswordHash)
	if err != nil {
		return Session{}, fmt.Errorf("decode password hash: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		s.log.Warn("login attempt with wrong password", "username", username)
		return Session{}, ErrInvalidCredentials
	}

	session, err := s.issueSession(username)
	if err != nil {
		return Session{}, err
	}

	s.log.Info("operator logged in", "username", username)
	return session, nil
}

func (s *Service) issueSession(username string) (Session, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.cfg.SessionTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}

	return Session{Token: signed, ExpiresAt: expiresAt}, nil
}
