// Package turnstile verifies captcha tokens against the Cloudflare
// Turnstile siteverify endpoint.
package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	httpinfra "arthakarya/ms_coretax_exporter/internal/infrastructure/http"
)

// Client verifies captcha response tokens issued to the login form.
type Client struct {
	verifyURL  string
	secretKey  string
	httpClient httpinfra.Client
	log        *slog.Logger
}

// NewClient creates a new Turnstile verification client.
func NewClient(verifyURL, secretKey string, httpClient httpinfra.Client, log *slog.Logger) *Client {
	return &Client{
		verifyURL:  verifyURL,
		secretKey:  secretKey,
		httpClient: httpClient,
		log:        log,
	}
}

// siteverifyResponse is the subset of the siteverify payload we act on.
type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a captcha response token. A false return with nil error
// means the token was rejected; errors indicate the verification service
// itself could not be reached.
func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("siteverify returned status %d: %s", resp.StatusCode, string(body))
	}

	var outcome siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}

	if !outcome.Success {
		c.log.Warn("captcha verification rejected", "error_codes", outcome.ErrorCodes)
	}
	return outcome.Success, nil
}
