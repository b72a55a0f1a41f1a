package cache

import (
	"sync"
	"time"

	"arthakarya/ms_coretax_exporter/internal/core/invoice"
)

// CompanyCache provides thread-safe caching of the upstream company record
// with TTL support. The company record is immutable for the duration of an
// export, so a short TTL keeps preview and export requests from refetching
// it on every call.
type CompanyCache struct {
	mu        sync.RWMutex
	company   invoice.Company
	populated bool
	expiresAt time.Time
}

// NewCompanyCache creates a new thread-safe company cache.
func NewCompanyCache() *CompanyCache {
	return &CompanyCache{}
}

// Get returns the cached company record if it's still valid.
func (c *CompanyCache) Get() (invoice.Company, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated || time.Now().After(c.expiresAt) {
		return invoice.Company{}, false
	}
	return c.company, true
}

// Set stores a company record with the specified TTL.
func (c *CompanyCache) Set(company invoice.Company, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.company = company
	c.populated = true
	c.expiresAt = time.Now().Add(ttl)
}

// Clear removes the cached company record.
func (c *CompanyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.company = invoice.Company{}
	c.populated = false
	c.expiresAt = time.Time{}
}
