package repo

import (
	"context"
	"sync"

	"github.com/custodia-cloud/tenant-activation/domains/credentials/be/service"
)

type memoryKey struct {
	ownerID int64
	kind    service.Kind
}

// MemoryDirectory is a simple in-memory implementation suitable for tests and early development.
type MemoryDirectory struct {
	mu   sync.RWMutex
	data map[memoryKey]service.Credential
}

// NewMemoryDirectory constructs a MemoryDirectory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{data: make(map[memoryKey]service.Credential)}
}

func (d *MemoryDirectory) Get(ctx context.Context, q service.GetQuery) (service.Credential, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.data[memoryKey{ownerID: q.OwnerID, kind: q.Kind}]
	if !ok {
		return service.Credential{}, service.ErrNotFound
	}
	if q.ID != "" && c.ID != q.ID {
		return service.Credential{}, service.ErrNotFound
	}
	return c, nil
}

func (d *MemoryDirectory) Put(ctx context.Context, c service.Credential) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.data[memoryKey{ownerID: c.OwnerID, kind: c.Kind}] = c
	return nil
}

// Ensure interface compliance.
var _ service.Directory = (*MemoryDirectory)(nil)
