package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"
)

func TestMemoryDirectoryUpdateStatus(t *testing.T) {
	dir := NewMemoryDirectory()
	dir.Seed(service.Tenant{TenantID: 42, ClientName: "Acme", AdminUsername: "admin", Status: service.StatusPending})

	update, err := dir.UpdateStatus(context.Background(), 42, service.StatusActive, "system")
	require.NoError(t, err)
	require.Equal(t, service.StatusActive, update.Status)
	require.Equal(t, "system", update.UpdatedBy)

	got, err := dir.Get(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, service.StatusActive, got.Status)
}

func TestMemoryDirectoryNotFound(t *testing.T) {
	dir := NewMemoryDirectory()

	_, err := dir.Get(context.Background(), 1)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = dir.UpdateStatus(context.Background(), 1, service.StatusActive, "system")
	require.ErrorIs(t, err, service.ErrNotFound)
}
