// Package service defines the credential directory consumed by the tenant
// activation pipeline: secrets keyed by (owner, kind), at most one per pair.
package service

import (
	"context"
	"errors"
)

// Errors returned by the credential directory.
var (
	ErrNotFound = errors.New("credential not found")
)

// Kind identifies what a stored credential is for.
type Kind string

const (
	// KindIndividual is a human login credential (tenant admin password).
	KindIndividual Kind = "INDIVIDUAL"
	// KindIAM is the client id/secret issued by the identity provider for a tenant realm.
	KindIAM Kind = "IAM"
	// KindCustos is the calling identity this system presents when administering the identity provider.
	KindCustos Kind = "CUSTOS"
	// KindCILogon is the federation client credential for the external identity broker.
	KindCILogon Kind = "CILOGON"
)

// Credential is a secret owned by a tenant. For INDIVIDUAL credentials ID is
// the username; for client credentials it is the issued client id.
type Credential struct {
	OwnerID int64
	Kind    Kind
	ID      string
	Secret  string
}

// GetQuery selects a credential. ID is optional; when empty the lookup matches
// the single credential of the given kind for the owner.
type GetQuery struct {
	OwnerID int64
	Kind    Kind
	ID      string
}

// Directory stores and retrieves credentials. Put overwrites any existing
// credential of the same (owner, kind).
type Directory interface {
	Get(ctx context.Context, q GetQuery) (Credential, error)
	Put(ctx context.Context, c Credential) error
}
