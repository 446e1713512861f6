package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"
)

// PostgresDirectory implements the tenant directory on the shared pgx pool.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory constructs a directory backed by the tenants table.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	if pool == nil {
		panic("tenant directory requires pool")
	}
	return &PostgresDirectory{pool: pool}
}

func (d *PostgresDirectory) Get(ctx context.Context, tenantID int64) (service.Tenant, error) {
	var (
		t      service.Tenant
		status string
	)
	err := d.pool.QueryRow(ctx, `
		SELECT tenant_id, client_name, client_uri, comment, scope, contacts, redirect_uris,
		       admin_username, admin_first_name, admin_last_name, admin_email, requester_email, status
		FROM tenants WHERE tenant_id = $1`, tenantID).Scan(
		&t.TenantID, &t.ClientName, &t.ClientURI, &t.Comment, &t.Scope, &t.Contacts, &t.RedirectURIs,
		&t.AdminUsername, &t.AdminFirstName, &t.AdminLastName, &t.AdminEmail, &t.RequesterEmail, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.Tenant{}, service.ErrNotFound
		}
		return service.Tenant{}, fmt.Errorf("get tenant: %w", err)
	}
	t.Status = service.StatusFromString(status)
	return t, nil
}

// Create inserts a tenant profile record. AdminPassword is intentionally not stored.
func (d *PostgresDirectory) Create(ctx context.Context, t service.Tenant) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO tenants (tenant_id, client_name, client_uri, comment, scope, contacts, redirect_uris,
		                     admin_username, admin_first_name, admin_last_name, admin_email, requester_email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		t.TenantID, t.ClientName, t.ClientURI, t.Comment, t.Scope, t.Contacts, t.RedirectURIs,
		t.AdminUsername, t.AdminFirstName, t.AdminLastName, t.AdminEmail, t.RequesterEmail, string(t.Status))
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}
	return nil
}

func (d *PostgresDirectory) UpdateStatus(ctx context.Context, tenantID int64, status service.Status, updatedBy string) (service.StatusUpdate, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE tenants SET status = $2, updated_by = $3, updated_at = now() WHERE tenant_id = $1`,
		tenantID, string(status), updatedBy)
	if err != nil {
		return service.StatusUpdate{}, fmt.Errorf("update tenant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.StatusUpdate{}, service.ErrNotFound
	}
	return service.StatusUpdate{TenantID: tenantID, Status: status, UpdatedBy: updatedBy}, nil
}

// Ensure interface compliance.
var _ service.Directory = (*PostgresDirectory)(nil)
