package audit

import (
	"context"
	"time"
)

// Outcome values recorded for an export attempt.
const (
	OutcomeSuccess          = "SUCCESS"
	OutcomeValidationFailed = "VALIDATION_FAILED"
	OutcomeError            = "ERROR"
)

// ExportRecord represents one export attempt. It captures who exported
// what and how it ended, for compliance and debugging.
type ExportRecord struct {
	ID           int64
	Lot          string // unique id assigned to the export attempt
	Actor        string // operator username from the session
	InvoiceIDs   []string
	InvoiceCount int
	Outcome      string
	ErrorMessage string
	DurationMs   int64
	CreatedAt    time.Time
}

// Repository defines the contract for persisting and retrieving export
// audit records.
type Repository interface {
	// Save persists an export record to storage.
	Save(ctx context.Context, record ExportRecord) error

	// FindByLot retrieves the audit records for a given export lot.
	FindByLot(ctx context.Context, lot string) ([]ExportRecord, error)
}
