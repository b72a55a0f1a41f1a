package http

import (
	"net/http"
	"time"
)

// Client is the minimal HTTP client surface adapters depend on. Both
// *http.Client and test doubles satisfy it.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient creates an HTTP client with the given timeout. A zero timeout
// falls back to 30 seconds.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
