package repo

import (
	"context"
	"sync"

	"github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"
)

// MemoryDirectory is a simple in-memory implementation suitable for tests and early development.
type MemoryDirectory struct {
	mu   sync.RWMutex
	byID map[int64]service.Tenant
}

// NewMemoryDirectory constructs a MemoryDirectory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{byID: make(map[int64]service.Tenant)}
}

// Seed inserts or replaces a tenant record.
func (d *MemoryDirectory) Seed(t service.Tenant) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID[t.TenantID] = t
}

func (d *MemoryDirectory) Get(ctx context.Context, tenantID int64) (service.Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.byID[tenantID]
	if !ok {
		return service.Tenant{}, service.ErrNotFound
	}
	return t, nil
}

func (d *MemoryDirectory) UpdateStatus(ctx context.Context, tenantID int64, status service.Status, updatedBy string) (service.StatusUpdate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.byID[tenantID]
	if !ok {
		return service.StatusUpdate{}, service.ErrNotFound
	}
	t.Status = status
	d.byID[tenantID] = t

	return service.StatusUpdate{TenantID: tenantID, Status: status, UpdatedBy: updatedBy}, nil
}

// Ensure interface compliance.
var _ service.Directory = (*MemoryDirectory)(nil)
