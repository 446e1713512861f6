// Package service defines the tenant directory: tenant profile records and
// their lifecycle status. The activation pipeline reads tenants and requests
// status transitions; it never writes profile fields.
package service

import (
	"context"
	"errors"
)

// Errors returned by the tenant directory.
var (
	ErrNotFound = errors.New("tenant not found")
)

// Status is the tenant lifecycle state.
type Status string

const (
	StatusUnknown     Status = "UNKNOWN"
	StatusRequested   Status = "REQUESTED"
	StatusCreated     Status = "CREATED"
	StatusPending     Status = "PENDING"
	StatusActive      Status = "ACTIVE"
	StatusDeactivated Status = "DEACTIVATED"
	StatusDenied      Status = "DENIED"
)

// StatusFromString converts a stored string to Status; defaults to unknown.
func StatusFromString(s string) Status {
	switch Status(s) {
	case StatusRequested, StatusCreated, StatusPending, StatusActive, StatusDeactivated, StatusDenied:
		return Status(s)
	default:
		return StatusUnknown
	}
}

// Tenant is the profile record for a logical customer/organization unit.
// AdminPassword is transient: it is populated from the credential directory
// during activation and never persisted on this record.
type Tenant struct {
	TenantID       int64
	ClientName     string
	ClientURI      string
	Comment        string
	Scope          string
	Contacts       []string
	RedirectURIs   []string
	AdminUsername  string
	AdminFirstName string
	AdminLastName  string
	AdminEmail     string
	AdminPassword  string
	RequesterEmail string
	Status         Status
}

// StatusUpdate reports a completed status transition and the actor that performed it.
type StatusUpdate struct {
	TenantID  int64
	Status    Status
	UpdatedBy string
}

// Directory stores tenant records and owns their status transitions.
type Directory interface {
	Get(ctx context.Context, tenantID int64) (Tenant, error)
	UpdateStatus(ctx context.Context, tenantID int64, status Status, updatedBy string) (StatusUpdate, error)
}
