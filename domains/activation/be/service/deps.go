package service

import (
	"context"

	credentials "github.com/custodia-cloud/tenant-activation/domains/credentials/be/service"
	tenants "github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"
	"github.com/custodia-cloud/tenant-activation/platform/go/federation"
	"github.com/custodia-cloud/tenant-activation/platform/go/idp"
	"github.com/custodia-cloud/tenant-activation/platform/go/sharing"
)

// IdentityProvider administers per-tenant realms on the identity provider.
type IdentityProvider interface {
	CreateTenantRealm(ctx context.Context, req idp.SetupRequest) (idp.ClientCredentials, error)
	UpdateTenantRealm(ctx context.Context, req idp.SetupRequest) (idp.ClientCredentials, error)
	ConfigureFederatedIDP(ctx context.Context, cfg idp.FederatedIDPConfig) error
	BaseURL() string
}

// AccessControl bootstraps tenant-scoped permission and entity type vocabularies.
type AccessControl interface {
	CreatePermissionType(ctx context.Context, t sharing.Type, tenantID int64) error
	CreateEntityType(ctx context.Context, t sharing.Type, tenantID int64) error
}

// FederationRegistrar registers federation clients with the external identity broker.
type FederationRegistrar interface {
	RegisterClient(ctx context.Context, meta federation.ClientMetadata) (federation.ClientCredentials, error)
}

// Dependencies groups every collaborator the activation workflow calls.
// Federation may be nil while federated client registration is disabled.
type Dependencies struct {
	Credentials      credentials.Directory
	Tenants          tenants.Directory
	IdentityProvider IdentityProvider
	AccessControl    AccessControl
	Federation       FederationRegistrar
}
