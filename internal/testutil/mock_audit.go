package testutil

import (
	"context"
	"sync"

	"arthakarya/ms_coretax_exporter/internal/core/audit"
)

// MockAuditRepository is an in-memory implementation of audit.Repository
// for testing. It records every saved entry for later inspection.
type MockAuditRepository struct {
	mu      sync.Mutex
	Records []audit.ExportRecord
	SaveErr error
}

// Save appends the record, or returns SaveErr if set.
func (m *MockAuditRepository) Save(ctx context.Context, record audit.ExportRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
	return nil
}

// FindByLot returns the recorded entries matching the given lot.
func (m *MockAuditRepository) FindByLot(ctx context.Context, lot string) ([]audit.ExportRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []audit.ExportRecord
	for _, r := range m.Records {
		if r.Lot == lot {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// Ensure MockAuditRepository implements audit.Repository interface.
var _ audit.Repository = (*MockAuditRepository)(nil)
