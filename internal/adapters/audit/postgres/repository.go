package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"arthakarya/ms_coretax_exporter/internal/core/audit"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the audit.Repository interface using PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewRepository creates a new PostgreSQL audit repository.
func NewRepository(pool *pgxpool.Pool, log *slog.Logger) audit.Repository {
	return &Repository{pool: pool, log: log}
}

// Save persists an export audit record to the database.
func (r *Repository) Save(ctx context.Context, record audit.ExportRecord) error {
	query := `
		INSERT INTO export_audit_log (
			lot, actor, invoice_ids, invoice_count, outcome, error_message, duration_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		record.Lot,
		record.Actor,
		record.InvoiceIDs,
		record.InvoiceCount,
		record.Outcome,
		record.ErrorMessage,
		record.DurationMs,
	)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to insert export audit record",
				"lot", record.Lot,
				"actor", record.Actor,
				"outcome", record.Outcome,
				"error", err,
			)
		}
		return fmt.Errorf("insert export audit record: %w", err)
	}

	if r.log != nil {
		r.log.Debug("export audit record saved",
			"lot", record.Lot,
			"outcome", record.Outcome,
			"invoice_count", record.InvoiceCount,
		)
	}
	return nil
}

// FindByLot retrieves the audit records for a given export lot.
func (r *Repository) FindByLot(ctx context.Context, lot string) ([]audit.ExportRecord, error) {
	query := `
		SELECT id, lot, actor, invoice_ids, invoice_count, outcome, error_message, duration_ms, created_at
		FROM export_audit_log
		WHERE lot = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, lot)
	if err != nil {
		return nil, fmt.Errorf("query export audit records: %w", err)
	}
	defer rows.Close()

	var records []audit.ExportRecord
	for rows.Next() {
		var record audit.ExportRecord
		if err := rows.Scan(
			&record.ID,
			&record.Lot,
			&record.Actor,
			&record.InvoiceIDs,
			&record.InvoiceCount,
			&record.Outcome,
			&record.ErrorMessage,
			&record.DurationMs,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan export audit record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export audit records: %w", err)
	}

	return records, nil
}
