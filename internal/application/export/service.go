// Package export orchestrates the preview and export use cases: it pulls
// company and invoice data from the upstream invoicing provider, runs the
// tax-document pipeline, and records export attempts in the audit trail.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"arthakarya/ms_coretax_exporter/internal/core/audit"
	coreexport "arthakarya/ms_coretax_exporter/internal/core/export"
	"arthakarya/ms_coretax_exporter/internal/core/invoice"
	"arthakarya/ms_coretax_exporter/internal/infrastructure/cache"
	ctxutil "arthakarya/ms_coretax_exporter/internal/infrastructure/context"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Preview is one row of the dashboard invoice table. Amount and
// TotalTaxes come pre-computed from upstream and are display-only.
type Preview struct {
	ID         string  `json:"id"`
	Client     string  `json:"client"`
	Amount     float64 `json:"amount"`
	TotalTaxes float64 `json:"total_taxes"`
	Date       string  `json:"date"`
}

// Result is a finished export: the rendered bulk document plus the
// metadata the HTTP layer needs to deliver it as a file download.
type Result struct {
	Lot          string
	Date         string
	Filename     string
	XML          string
	InvoiceCount int
}

// Service orchestrates export-related use cases.
type Service struct {
	provider        invoice.Provider
	auditRepo       audit.Repository // optional: nil disables the audit trail
	companyCache    *cache.CompanyCache
	companyCacheTTL time.Duration
	previewPageSize int
	log             *slog.Logger
	now             func() time.Time
}

// Options configures a Service. Provider and Logger are required;
// everything else has sensible defaults.
type Options struct {
	Provider        invoice.Provider
	AuditRepo       audit.Repository
	PreviewPageSize int
	CompanyCacheTTL time.Duration
	Logger          *slog.Logger
	Now             func() time.Time
}

// NewService creates a new export service.
func NewService(opts Options) *Service {
	if opts.PreviewPageSize <= 0 {
		opts.PreviewPageSize = 10
	}
	if opts.CompanyCacheTTL <= 0 {
		opts.CompanyCacheTTL = 10 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		provider:        opts.Provider,
		auditRepo:       opts.AuditRepo,
		companyCache:    cache.NewCompanyCache(),
		companyCacheTTL: opts.CompanyCacheTTL,
		previewPageSize: opts.PreviewPageSize,
		log:             opts.Logger,
		now:             opts.Now,
	}
}

// Company returns the seller company record, served from cache when the
// cached copy is still fresh.
func (s *Service) Company(ctx context.Context) (invoice.Company, error) {
	if company, ok := s.companyCache.Get(); ok {
		return company, nil
	}

	companies, err := s.provider.GetCompanies(ctx)
	if err != nil {
		return invoice.Company{}, fmt.Errorf("fetch companies: %w", err)
	}
	if len(companies) == 0 {
		return invoice.Company{}, coreexport.ErrNoCompany
	}

	// Only the first company record participates in exports.
	company := companies[0]
	s.companyCache.Set(company, s.companyCacheTTL)
	return company, nil
}

// Preview returns today's invoices that carry taxes, in upstream order.
func (s *Service) Preview(ctx context.Context) ([]Preview, error) {
	invoices, err := s.fetchTodaysInvoices(ctx)
	if err != nil {
		return nil, err
	}

	previews := make([]Preview, 0, len(invoices))
	for _, inv := range invoices {
		if inv.TotalTaxes <= 0 {
			continue
		}
		previews = append(previews, Preview{
			ID:         inv.ID,
			Client:     inv.Client.Name,
			Amount:     inv.Amount,
			TotalTaxes: inv.TotalTaxes,
			Date:       inv.Date,
		})
	}
	return previews, nil
}

// Export runs the full pipeline for the selected invoice ids and returns
// the rendered bulk document. The whole selection succeeds or fails as
// one batch; validation errors pass through unwrapped so the transport
// layer can map them.
func (s *Service) Export(ctx context.Context, ids []string) (Result, error) {
	if len(ids) == 0 {
		return Result{}, coreexport.ErrEmptySelection
	}

	started := s.now()
	lot := uuid.New().String()

	company, err := s.Company(ctx)
	if err != nil {
		return Result{}, err
	}

	invoices, err := s.fetchTodaysInvoices(ctx)
	if err != nil {
		return Result{}, err
	}

	selected := filterByID(invoices, ids)
	if len(selected) == 0 {
		return Result{}, coreexport.ErrEmptySelection
	}

	payload, err := coreexport.BuildPayload(company, selected, started)
	if err != nil {
		outcome := audit.OutcomeError
		var verr *coreexport.ValidationError
		if errors.As(err, &verr) {
			outcome = audit.OutcomeValidationFailed
		}
		s.recordAudit(ctx, lot, ids, len(selected), outcome, err.Error(), started)
		return Result{}, err
	}

	xml := coreexport.GenerateXML(payload)
	s.recordAudit(ctx, lot, ids, len(selected), audit.OutcomeSuccess, "", started)

	date := started.Format(dateLayout)
	return Result{
		Lot:          lot,
		Date:         date,
		Filename:     fmt.Sprintf("invoices_%s.xml", date),
		XML:          xml,
		InvoiceCount: len(selected),
	}, nil
}

// fetchTodaysInvoices pulls the first page of invoices updated today,
// with client records embedded.
func (s *Service) fetchTodaysInvoices(ctx context.Context) ([]invoice.Invoice, error) {
	invoices, err := s.provider.GetInvoices(ctx, invoice.Query{
		Page:      1,
		PerPage:   s.previewPageSize,
		UpdatedAt: s.now().Format(dateLayout),
		Include:   "client",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch invoices: %w", err)
	}
	return invoices, nil
}

func filterByID(invoices []invoice.Invoice, ids []string) []invoice.Invoice {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	selected := make([]invoice.Invoice, 0, len(ids))
	for _, inv := range invoices {
		if _, ok := wanted[inv.ID]; ok {
			selected = append(selected, inv)
		}
	}
	return selected
}

// recordAudit saves an export attempt. Audit failures are logged, never
// propagated: an export must not fail because the trail is unavailable.
func (s *Service) recordAudit(ctx context.Context, lot string, ids []string, count int, outcome, errMsg string, started time.Time) {
	if s.auditRepo == nil {
		return
	}

	record := audit.ExportRecord{
		Lot:          lot,
		Actor:        ctxutil.GetUsername(ctx),
		InvoiceIDs:   ids,
		InvoiceCount: count,
		Outcome:      outcome,
		ErrorMessage: errMsg,
		DurationMs:   s.now().Sub(started).Milliseconds(),
	}
	if err := s.auditRepo.Save(ctx, record); err != nil {
		s.log.Warn("failed to save export audit record", "lot", lot, "error", err)
	}
}
