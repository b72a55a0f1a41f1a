package turnstile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"arthakarya/ms_coretax_exporter/internal/testutil"
)

func TestClient_Verify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     bool
	}{
		{name: "accepted", response: `{"success":true}`, want: true},
		{name: "rejected", response: `{"success":false,"error-codes":["invalid-input-response"]}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if err := r.ParseForm(); err != nil {
					t.Fatalf("failed to parse form: %v", err)
				}
				if r.PostForm.Get("secret") != "secret-key" {
					t.Errorf("expected secret in form, got %q", r.PostForm.Get("secret"))
				}
				if r.PostForm.Get("response") != "captcha-token" {
					t.Errorf("expected response token in form, got %q", r.PostForm.Get("response"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client := NewClient(server.URL, "secret-key", http.DefaultClient, testutil.NewNullLogger())

			ok, err := client.Verify(context.Background(), "captcha-token")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.want {
				t.Errorf("expected %v, got %v", tt.want, ok)
			}
		})
	}
}

func TestClient_Verify_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", http.DefaultClient, testutil.NewNullLogger())

	if _, err := client.Verify(context.Background(), "captcha-token"); err == nil {
		t.Fatal("expected error when siteverify is unavailable")
	}
}
