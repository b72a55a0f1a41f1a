package server

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	authhandler "arthakarya/ms_coretax_exporter/internal/adapters/http/auth"
	exporthandler "arthakarya/ms_coretax_exporter/internal/adapters/http/export"
	healthhandler "arthakarya/ms_coretax_exporter/internal/adapters/http/health"
	appauth "arthakarya/ms_coretax_exporter/internal/application/auth"
	appexport "arthakarya/ms_coretax_exporter/internal/application/export"
	apphealth "arthakarya/ms_coretax_exporter/internal/application/health"
	"arthakarya/ms_coretax_exporter/internal/core/invoice"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/config"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/http/middleware"
	"arthakarya/ms_coretax_exporter/internal/testutil"
)

const (
	testUsername = "operator"
	testPassword = "correct horse battery staple"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}

	cfg := config.AppConfig{
		HTTP: config.HTTPSettings{
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Auth: config.AuthSettings{
			Enabled:       true,
			Username:      testUsername,
			PasswordHash:  base64.StdEncoding.EncodeToString(hash),
			SessionSecret: "test-session-secret",
			SessionTTL:    time.Hour,
			BypassPaths:   []string{"/health", "/auth/login", "/auth/logout"},
		},
	}

	log := testutil.NewNullLogger()

	provider := &testutil.MockProvider{
		GetInvoicesFunc: func(ctx context.Context, query invoice.Query) ([]invoice.Invoice, error) {
			return []invoice.Invoice{}, nil
		},
	}
	exportSvc := appexport.NewService(appexport.Options{Provider: provider, Logger: log})
	authSvc := appauth.NewService(cfg.Auth, nil, log)
	healthSvc := apphealth.NewService(apphealth.Metadata{Service: "test", Version: "0", Environment: "test"})

	srv, err := New(Options{
		Config:        cfg,
		Logger:        log,
		AuthHandler:   authhandler.NewHandler(authSvc, false, log),
		ExportHandler: exporthandler.NewHandler(exportSvc, "Test Co", log),
		HealthHandler: healthhandler.NewHandler(healthSvc),
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func TestHealthBypassesAuth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestProtectedRouteRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestLoginThenAccessProtectedRoute(t *testing.T) {
	srv := newTestServer(t)

	loginReq := testutil.CreateRequest(http.MethodPost, "/auth/login", authhandler.LoginRequest{
		Username: testUsername,
		Password: testPassword,
	}, nil)
	loginRec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(loginRec, loginReq)

	if loginRec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", loginRec.Code, loginRec.Body.String())
	}

	var session *http.Cookie
	for _, c := range loginRec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	if session == nil {
		t.Fatal("expected session cookie from login")
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	listReq.AddCookie(session)
	listRec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(listRec, listReq)

	if listRec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with session, got %d: %s", listRec.Code, listRec.Body.String())
	}
}

func TestLoginMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	// Login is POST only.
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", w.Code)
	}
}

func TestNewRequiresLogger(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error when logger is missing")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	srv := newTestServer(t)
	srv.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error from Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}
