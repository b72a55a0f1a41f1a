package invoice

import "context"

// Query represents the query parameters for retrieving invoices.
type Query struct {
	Page      int
	PerPage   int
	UpdatedAt string // YYYY-MM-DD; restricts results to invoices updated that day
	Include   string // related resources to embed, e.g. "client"
}

// Provider defines the interface for upstream invoicing services.
// This abstraction keeps the export pipeline decoupled from the concrete
// invoicing API so other providers can be plugged in later.
type Provider interface {
	// GetCompanies retrieves the company records visible to the API token.
	// Returns an error if the provider is unavailable.
	GetCompanies(ctx context.Context) ([]Company, error)
	// GetInvoices retrieves invoices for a given query.
	// Returns an error if the provider is unavailable or the query is invalid.
	GetInvoices(ctx context.Context, query Query) ([]Invoice, error)
}
