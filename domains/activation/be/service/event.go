package service

import tenants "github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"

// Event is the closed set of inputs the activation trigger accepts. The
// unexported marker keeps the union sealed to this package.
type Event interface {
	isEvent()
}

// StatusChangedEvent notifies the stage that a tenant's status update was
// requested upstream. It is the only variant the trigger processes.
type StatusChangedEvent struct {
	TenantID int64
	Status   tenants.Status
}

func (StatusChangedEvent) isEvent() {}
