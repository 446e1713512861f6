// Package service implements the tenant activation stage: the ordered
// provisioning workflow and the pipeline trigger that drives it.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	credentials "github.com/custodia-cloud/tenant-activation/domains/credentials/be/service"
	tenants "github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"
	"github.com/custodia-cloud/tenant-activation/platform/go/federation"
	"github.com/custodia-cloud/tenant-activation/platform/go/idp"
	"github.com/custodia-cloud/tenant-activation/platform/go/sharing"
)

const (
	// SystemActor is recorded as the performer of system-driven transitions.
	SystemActor = "system"

	// defaultComment annotates registrations for tenants that supplied none.
	defaultComment = "Created by custos"
)

// WorkflowConfig carries the workflow feature switches.
type WorkflowConfig struct {
	// FederatedRegistration enables submitting the assembled federation client
	// metadata to the registrar and wiring the resulting broker client into
	// the tenant realm. Off by default: the upstream product decision on this
	// path is still open, so the metadata is built but not submitted.
	FederatedRegistration bool
}

// Workflow runs the ordered tenant activation sequence. Steps are causally
// dependent and execute synchronously; a failing step aborts the remainder
// and already-completed side effects are not undone.
type Workflow struct {
	deps   Dependencies
	cfg    WorkflowConfig
	logger *zap.Logger
}

// NewWorkflow constructs a Workflow with required collaborators.
func NewWorkflow(deps Dependencies, cfg WorkflowConfig, logger *zap.Logger) *Workflow {
	if deps.Credentials == nil {
		panic("workflow requires credential directory")
	}
	if deps.Tenants == nil {
		panic("workflow requires tenant directory")
	}
	if deps.IdentityProvider == nil {
		panic("workflow requires identity provider")
	}
	if deps.AccessControl == nil {
		panic("workflow requires access control client")
	}
	if cfg.FederatedRegistration && deps.Federation == nil {
		panic("federated registration enabled without registrar")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{deps: deps, cfg: cfg, logger: logger}
}

// Activate provisions (or updates) the tenant's identity-provider realm,
// persists the issued credentials, bootstraps access-control vocabularies on
// first activation, and transitions the tenant to ACTIVE.
func (w *Workflow) Activate(ctx context.Context, tenant tenants.Tenant, performedBy string, isUpdate bool) (tenants.StatusUpdate, error) {
	custosCred, err := w.deps.Credentials.Get(ctx, credentials.GetQuery{
		OwnerID: tenant.TenantID,
		Kind:    credentials.KindCustos,
	})
	if err != nil {
		return tenants.StatusUpdate{}, fmt.Errorf("get custos credential for tenant %d: %w", tenant.TenantID, err)
	}

	setup := idp.SetupRequest{
		TenantID:       tenant.TenantID,
		TenantName:     tenant.ClientName,
		TenantURL:      tenant.ClientURI,
		AdminUsername:  tenant.AdminUsername,
		AdminFirstName: tenant.AdminFirstName,
		AdminLastName:  tenant.AdminLastName,
		AdminEmail:     tenant.AdminEmail,
		AdminPassword:  tenant.AdminPassword,
		RequesterEmail: tenant.RequesterEmail,
		RedirectURIs:   tenant.RedirectURIs,
		CustosClientID: custosCred.ID,
	}

	var issued idp.ClientCredentials
	if isUpdate {
		issued, err = w.deps.IdentityProvider.UpdateTenantRealm(ctx, setup)
	} else {
		issued, err = w.deps.IdentityProvider.CreateTenantRealm(ctx, setup)
	}
	if err != nil {
		return tenants.StatusUpdate{}, fmt.Errorf("set up tenant realm %d: %w", tenant.TenantID, err)
	}

	if err := w.deps.Credentials.Put(ctx, credentials.Credential{
		OwnerID: tenant.TenantID,
		Kind:    credentials.KindIAM,
		ID:      issued.ClientID,
		Secret:  issued.ClientSecret,
	}); err != nil {
		return tenants.StatusUpdate{}, fmt.Errorf("store iam credential for tenant %d: %w", tenant.TenantID, err)
	}

	comment := tenant.Comment
	if strings.TrimSpace(comment) == "" {
		comment = defaultComment
	}

	scopes := strings.Fields(tenant.Scope)

	cilogonCred, err := w.deps.Credentials.Get(ctx, credentials.GetQuery{
		OwnerID: tenant.TenantID,
		Kind:    credentials.KindCILogon,
	})
	if err != nil {
		return tenants.StatusUpdate{}, fmt.Errorf("get cilogon credential for tenant %d: %w", tenant.TenantID, err)
	}

	brokerRedirectURI := fmt.Sprintf("%s/realms/%d/broker/oidc/endpoint",
		strings.TrimRight(w.deps.IdentityProvider.BaseURL(), "/"), tenant.TenantID)

	meta := federation.ClientMetadata{
		TenantID:     tenant.TenantID,
		TenantName:   tenant.ClientName,
		TenantURI:    tenant.ClientURI,
		Comment:      comment,
		Scope:        scopes,
		RedirectURIs: []string{brokerRedirectURI},
		Contacts:     tenant.Contacts,
		PerformedBy:  performedBy,
		ClientID:     cilogonCred.ID,
	}

	if !isUpdate {
		if w.cfg.FederatedRegistration {
			if err := w.registerFederationClient(ctx, tenant, meta); err != nil {
				return tenants.StatusUpdate{}, err
			}
		} else {
			w.logger.Warn("federated client registration disabled; metadata assembled but not submitted",
				zap.Int64("tenant_id", tenant.TenantID))
		}

		if err := w.deps.AccessControl.CreatePermissionType(ctx, sharing.Type{
			ID:          "OWNER",
			Name:        "OWNER",
			Description: "Owner permission type",
		}, tenant.TenantID); err != nil {
			return tenants.StatusUpdate{}, fmt.Errorf("bootstrap permission type for tenant %d: %w", tenant.TenantID, err)
		}

		if err := w.deps.AccessControl.CreateEntityType(ctx, sharing.Type{
			ID:          "SECRET",
			Name:        "SECRET",
			Description: "Secret entity type",
		}, tenant.TenantID); err != nil {
			return tenants.StatusUpdate{}, fmt.Errorf("bootstrap entity type for tenant %d: %w", tenant.TenantID, err)
		}
	}

	result, err := w.deps.Tenants.UpdateStatus(ctx, tenant.TenantID, tenants.StatusActive, performedBy)
	if err != nil {
		return tenants.StatusUpdate{}, fmt.Errorf("activate tenant %d: %w", tenant.TenantID, err)
	}
	return result, nil
}

// registerFederationClient submits the broker client metadata, stores the
// issued CILOGON credential, and attaches the broker to the tenant realm.
func (w *Workflow) registerFederationClient(ctx context.Context, tenant tenants.Tenant, meta federation.ClientMetadata) error {
	regCreds, err := w.deps.Federation.RegisterClient(ctx, meta)
	if err != nil {
		return fmt.Errorf("register federation client for tenant %d: %w", tenant.TenantID, err)
	}

	if err := w.deps.Credentials.Put(ctx, credentials.Credential{
		OwnerID: tenant.TenantID,
		Kind:    credentials.KindCILogon,
		ID:      regCreds.ClientID,
		Secret:  regCreds.ClientSecret,
	}); err != nil {
		return fmt.Errorf("store cilogon credential for tenant %d: %w", tenant.TenantID, err)
	}

	if err := w.deps.IdentityProvider.ConfigureFederatedIDP(ctx, idp.FederatedIDPConfig{
		TenantID:       tenant.TenantID,
		ClientID:       regCreds.ClientID,
		ClientSecret:   regCreds.ClientSecret,
		Scope:          tenant.Scope,
		RequesterEmail: tenant.RequesterEmail,
		Provider:       idp.ProviderCILogon,
	}); err != nil {
		return fmt.Errorf("configure federated idp for tenant %d: %w", tenant.TenantID, err)
	}
	return nil
}
