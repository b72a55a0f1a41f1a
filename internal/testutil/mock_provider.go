package testutil

import (
	"context"

	"arthakarya/ms_coretax_exporter/internal/core/invoice"
)

// MockProvider is a mock implementation of invoice.Provider for testing.
type MockProvider struct {
	GetCompaniesFunc func(ctx context.Context) ([]invoice.Company, error)
	GetInvoicesFunc  func(ctx context.Context, query invoice.Query) ([]invoice.Invoice, error)
}

// GetCompanies calls the mock function if set, otherwise returns empty slice.
func (m *MockProvider) GetCompanies(ctx context.Context) ([]invoice.Company, error) {
	if m.GetCompaniesFunc != nil {
		return m.GetCompaniesFunc(ctx)
	}
	return []invoice.Company{}, nil
}

// GetInvoices calls the mock function if set, otherwise returns empty slice.
func (m *MockProvider) GetInvoices(ctx context.Context, query invoice.Query) ([]invoice.Invoice, error) {
	if m.GetInvoicesFunc != nil {
		return m.GetInvoicesFunc(ctx, query)
	}
	return []invoice.Invoice{}, nil
}

// Ensure MockProvider implements invoice.Provider interface.
var _ invoice.Provider = (*MockProvider)(nil)
