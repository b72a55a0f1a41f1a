// Package ninja implements the invoice.Provider interface against an
// Invoice Ninja compatible API.
package ninja

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"arthakarya/ms_coretax_exporter/internal/core/invoice"
	httpinfra "arthakarya/ms_coretax_exporter/internal/infrastructure/http"
)

// apiTokenHeader authenticates every request; the token is static and
// configured per deployment.
const apiTokenHeader = "X-Api-Token"

// Client implements the invoice.Provider interface for Invoice Ninja.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpinfra.Client
	log        *slog.Logger
}

// NewClient creates a new Invoice Ninja API client.
func NewClient(baseURL, apiKey string, httpClient httpinfra.Client, log *slog.Logger) invoice.Provider {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log,
	}
}

// envelope is the JSON wrapper the API puts around every collection.
type envelope[T any] struct {
	Data []T `json:"data"`
}

// GetCompanies retrieves the company records visible to the API token.
func (c *Client) GetCompanies(ctx context.Context) ([]invoice.Company, error) {
	return get[invoice.Company](ctx, c, "/companies", nil)
}

// GetInvoices retrieves invoices for a given query.
func (c *Client) GetInvoices(ctx context.Context, query invoice.Query) ([]invoice.Invoice, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(query.PerPage))
	}
	if query.UpdatedAt != "" {
		params.Set("updated_at", query.UpdatedAt)
	}
	if query.Include != "" {
		params.Set("include", query.Include)
	}
	return get[invoice.Invoice](ctx, c, "/invoices", params)
}

func get[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiTokenHeader, c.apiKey)

	c.log.Debug("calling upstream invoicing API", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("upstream %s returned status %d: %s", path, resp.StatusCode, string(body))
	}

	var wrapped envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&wrapped); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return wrapped.Data, nil
}
