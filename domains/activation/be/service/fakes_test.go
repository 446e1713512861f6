package service

import (
	"context"
	"sync"

	credentials "github.com/custodia-cloud/tenant-activation/domains/credentials/be/service"
	tenants "github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"
	"github.com/custodia-cloud/tenant-activation/platform/go/federation"
	"github.com/custodia-cloud/tenant-activation/platform/go/idp"
	"github.com/custodia-cloud/tenant-activation/platform/go/sharing"
)

type credKey struct {
	ownerID int64
	kind    credentials.Kind
}

// fakeCredentials records every directory call and keeps credentials in a map.
type fakeCredentials struct {
	mu       sync.Mutex
	data     map[credKey]credentials.Credential
	getCalls []credentials.GetQuery
	puts     []credentials.Credential
	putErr   error
}

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{data: make(map[credKey]credentials.Credential)}
}

func (f *fakeCredentials) seed(c credentials.Credential) {
	f.data[credKey{ownerID: c.OwnerID, kind: c.Kind}] = c
}

func (f *fakeCredentials) Get(ctx context.Context, q credentials.GetQuery) (credentials.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, q)

	c, ok := f.data[credKey{ownerID: q.OwnerID, kind: q.Kind}]
	if !ok {
		return credentials.Credential{}, credentials.ErrNotFound
	}
	if q.ID != "" && c.ID != q.ID {
		return credentials.Credential{}, credentials.ErrNotFound
	}
	return c, nil
}

func (f *fakeCredentials) Put(ctx context.Context, c credentials.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, c)
	if f.putErr != nil {
		return f.putErr
	}
	f.data[credKey{ownerID: c.OwnerID, kind: c.Kind}] = c
	return nil
}

func (f *fakeCredentials) putsOfKind(kind credentials.Kind) []credentials.Credential {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []credentials.Credential
	for _, c := range f.puts {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// fakeTenants is an in-memory tenant directory that records status updates.
type fakeTenants struct {
	mu        sync.Mutex
	data      map[int64]tenants.Tenant
	getCalls  int
	updates   []tenants.StatusUpdate
	updateErr error
}

func newFakeTenants() *fakeTenants {
	return &fakeTenants{data: make(map[int64]tenants.Tenant)}
}

func (f *fakeTenants) seed(t tenants.Tenant) { f.data[t.TenantID] = t }

func (f *fakeTenants) Get(ctx context.Context, tenantID int64) (tenants.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	t, ok := f.data[tenantID]
	if !ok {
		return tenants.Tenant{}, tenants.ErrNotFound
	}
	return t, nil
}

func (f *fakeTenants) UpdateStatus(ctx context.Context, tenantID int64, status tenants.Status, updatedBy string) (tenants.StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return tenants.StatusUpdate{}, f.updateErr
	}
	if _, ok := f.data[tenantID]; !ok {
		return tenants.StatusUpdate{}, tenants.ErrNotFound
	}
	t := f.data[tenantID]
	t.Status = status
	f.data[tenantID] = t
	update := tenants.StatusUpdate{TenantID: tenantID, Status: status, UpdatedBy: updatedBy}
	f.updates = append(f.updates, update)
	return update, nil
}

// fakeIDP records realm operations and returns canned client credentials.
type fakeIDP struct {
	baseURL    string
	creds      idp.ClientCredentials
	created    []idp.SetupRequest
	updated    []idp.SetupRequest
	configured []idp.FederatedIDPConfig
	createErr  error
	updateErr  error
}

func (f *fakeIDP) CreateTenantRealm(ctx context.Context, req idp.SetupRequest) (idp.ClientCredentials, error) {
	f.created = append(f.created, req)
	if f.createErr != nil {
		return idp.ClientCredentials{}, f.createErr
	}
	return f.creds, nil
}

func (f *fakeIDP) UpdateTenantRealm(ctx context.Context, req idp.SetupRequest) (idp.ClientCredentials, error) {
	f.updated = append(f.updated, req)
	if f.updateErr != nil {
		return idp.ClientCredentials{}, f.updateErr
	}
	return f.creds, nil
}

func (f *fakeIDP) ConfigureFederatedIDP(ctx context.Context, cfg idp.FederatedIDPConfig) error {
	f.configured = append(f.configured, cfg)
	return nil
}

func (f *fakeIDP) BaseURL() string { return f.baseURL }

// fakeAccessControl records type bootstrap calls.
type fakeAccessControl struct {
	permissionTypes []sharing.Type
	entityTypes     []sharing.Type
	permErr         error
	entityErr       error
}

func (f *fakeAccessControl) CreatePermissionType(ctx context.Context, t sharing.Type, tenantID int64) error {
	f.permissionTypes = append(f.permissionTypes, t)
	return f.permErr
}

func (f *fakeAccessControl) CreateEntityType(ctx context.Context, t sharing.Type, tenantID int64) error {
	f.entityTypes = append(f.entityTypes, t)
	return f.entityErr
}

// fakeRegistrar records federation client registrations.
type fakeRegistrar struct {
	registered []federation.ClientMetadata
	creds      federation.ClientCredentials
	err        error
}

func (f *fakeRegistrar) RegisterClient(ctx context.Context, meta federation.ClientMetadata) (federation.ClientCredentials, error) {
	f.registered = append(f.registered, meta)
	if f.err != nil {
		return federation.ClientCredentials{}, f.err
	}
	return f.creds, nil
}

// captureSink collects every reported error.
type captureSink struct {
	mu   sync.Mutex
	errs []error
}

func (s *captureSink) Report(ctx context.Context, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}
