package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-cloud/tenant-activation/domains/credentials/be/service"
)

// PostgresDirectory implements the credential directory on the shared pgx pool.
// The credentials table keys on (owner_id, kind), so Put is an upsert and the
// single-credential-per-kind invariant is enforced by the primary key.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory constructs a directory backed by the credentials table.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	if pool == nil {
		panic("credential directory requires pool")
	}
	return &PostgresDirectory{pool: pool}
}

func (d *PostgresDirectory) Get(ctx context.Context, q service.GetQuery) (service.Credential, error) {
	query := `SELECT owner_id, kind, client_id, client_secret FROM credentials WHERE owner_id = $1 AND kind = $2`
	args := []any{q.OwnerID, string(q.Kind)}
	if q.ID != "" {
		query += ` AND client_id = $3`
		args = append(args, q.ID)
	}

	var (
		c    service.Credential
		kind string
	)
	if err := d.pool.QueryRow(ctx, query, args...).Scan(&c.OwnerID, &kind, &c.ID, &c.Secret); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.Credential{}, service.ErrNotFound
		}
		return service.Credential{}, fmt.Errorf("get credential: %w", err)
	}
	c.Kind = service.Kind(kind)
	return c, nil
}

func (d *PostgresDirectory) Put(ctx context.Context, c service.Credential) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO credentials (owner_id, kind, client_id, client_secret, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (owner_id, kind)
		DO UPDATE SET client_id = EXCLUDED.client_id, client_secret = EXCLUDED.client_secret, updated_at = now()`,
		c.OwnerID, string(c.Kind), c.ID, c.Secret)
	if err != nil {
		return fmt.Errorf("put credential: %w", err)
	}
	return nil
}

// Ensure interface compliance.
var _ service.Directory = (*PostgresDirectory)(nil)
