package export

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appexport "arthakarya/ms_coretax_exporter/internal/application/export"
	"arthakarya/ms_coretax_exporter/internal/core/invoice"
	"arthakarya/ms_coretax_exporter/internal/testutil"
)

func testInvoices() []invoice.Invoice {
	return []invoice.Invoice{{
		ID:         "inv-1",
		Amount:     224000,
		TotalTaxes: 19800,
		Date:       "2026-03-15",
		Client: invoice.Client{
			Name:      "Acme Corp",
			VATNumber: "9988776655443322",
			Contacts:  []invoice.Contact{{Email: "billing@acme.example"}},
		},
		LineItems: []invoice.LineItem{{
			ProductKey: "Consulting",
			Cost:       100000,
			Quantity:   2,
			Discount:   10,
		}},
	}}
}

func newHandler(provider *testutil.MockProvider) *Handler {
	service := appexport.NewService(appexport.Options{
		Provider: provider,
		Logger:   testutil.NewNullLogger(),
		Now:      func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) },
	})
	return NewHandler(service, "Arthakarya Studio", testutil.NewNullLogger())
}

func TestList(t *testing.T) {
	provider := &testutil.MockProvider{
		GetInvoicesFunc: func(ctx context.Context, query invoice.Query) ([]invoice.Invoice, error) {
			return testInvoices(), nil
		},
	}
	handler := newHandler(provider)

	req := testutil.CreateRequest(http.MethodGet, "/api/v1/invoices", nil, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	var response ListResponse
	testutil.ReadJSONResponse(t, w, &response)

	if response.Total != 1 {
		t.Fatalf("expected 1 invoice, got %d", response.Total)
	}
	if response.Company != "Arthakarya Studio" {
		t.Errorf("expected configured company name, got %q", response.Company)
	}
	if response.Data[0].ID != "inv-1" || response.Data[0].Client != "Acme Corp" {
		t.Errorf("unexpected preview row: %+v", response.Data[0])
	}
}

func TestListUpstreamError(t *testing.T) {
	provider := &testutil.MockProvider{
		GetInvoicesFunc: func(ctx context.Context, query invoice.Query) ([]invoice.Invoice, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	handler := newHandler(provider)

	req := testutil.CreateRequest(http.MethodGet, "/api/v1/invoices", nil, nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}

func TestExportSuccess(t *testing.T) {
	provider := &testutil.MockProvider{
		GetCompaniesFunc: func(ctx context.Context) ([]invoice.Company, error) {
			return []invoice.Company{{Settings: invoice.CompanySettings{
				Name:      "Arthakarya Studio",
				VATNumber: "0123456789012345",
			}}}, nil
		},
		GetInvoicesFunc: func(ctx context.Context, query invoice.Query) ([]invoice.Invoice, error) {
			return testInvoices(), nil
		},
	}
	handler := newHandler(provider)

	req := testutil.CreateRequest(http.MethodPost, "/api/v1/invoices/export", ExportRequest{IDs: []string{"inv-1"}}, nil)
	w := httptest.NewRecorder()

	handler.Export(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/xml" {
		t.Errorf("expected application/xml, got %q", ct)
	}
	disposition := w.Header().Get("Content-Disposition")
	if disposition != `attachment; filename="invoices_2026-03-15.xml"` {
		t.Errorf("unexpected content disposition: %q", disposition)
	}
	if !strings.Contains(w.Body.String(), "<TaxInvoiceBulk") {
		t.Error("expected rendered document in body")
	}
}

func TestExportErrors(t *testing.T) {
	badInvoices := testInvoices()
	badInvoices[0].Client.VATNumber = ""

	tests := []struct {
		name       string
		ids        []string
		invoices   []invoice.Invoice
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation failure",
			ids:        []string{"inv-1"},
			invoices:   badInvoices,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Client Acme Corp does not have a VAT number",
		},
		{
			name:       "empty selection",
			ids:        nil,
			invoices:   testInvoices(),
			wantStatus: http.StatusBadRequest,
			wantError:  "No invoices selected for export",
		},
		{
			name:       "no matching invoices",
			ids:        []string{"inv-99"},
			invoices:   testInvoices(),
			wantStatus: http.StatusBadRequest,
			wantError:  "No invoices selected for export",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &testutil.MockProvider{
				GetCompaniesFunc: func(ctx context.Context) ([]invoice.Company, error) {
					return []invoice.Company{{Settings: invoice.CompanySettings{
						Name:      "Arthakarya Studio",
						VATNumber: "0123456789012345",
					}}}, nil
				},
				GetInvoicesFunc: func(ctx context.Context, query invoice.Query) ([]invoice.Invoice, error) {
					return tt.invoices, nil
				},
			}
			handler := newHandler(provider)

			req := testutil.CreateRequest(http.MethodPost, "/api/v1/invoices/export", ExportRequest{IDs: tt.ids}, nil)
			w := httptest.NewRecorder()

			handler.Export(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			response := testutil.ReadErrorResponse(t, w)
			errs, _ := response["errors"].([]interface{})
			if len(errs) != 1 || errs[0] != tt.wantError {
				t.Errorf("unexpected errors: %v", response["errors"])
			}
		})
	}
}

func TestExportMalformedBody(t *testing.T) {
	handler := newHandler(&testutil.MockProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/export", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Export(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestExportUpstreamError(t *testing.T) {
	provider := &testutil.MockProvider{
		GetCompaniesFunc: func(ctx context.Context) ([]invoice.Company, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	handler := newHandler(provider)

	req := testutil.CreateRequest(http.MethodPost, "/api/v1/invoices/export", ExportRequest{IDs: []string{"inv-1"}}, nil)
	w := httptest.NewRecorder()

	handler.Export(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}
