package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	credentials "github.com/custodia-cloud/tenant-activation/domains/credentials/be/service"
	tenants "github.com/custodia-cloud/tenant-activation/domains/tenants/be/service"
	"github.com/custodia-cloud/tenant-activation/platform/go/logging"
	"github.com/custodia-cloud/tenant-activation/platform/go/pipeline"
)

// Next forwards an activation result to the following pipeline stage.
type Next func(ctx context.Context, result tenants.StatusUpdate) error

// activator is the workflow seam consumed by the trigger.
type activator interface {
	Activate(ctx context.Context, tenant tenants.Tenant, performedBy string, isUpdate bool) (tenants.StatusUpdate, error)
}

// Trigger is the pipeline entry point for tenant activation. It validates the
// incoming event, loads prerequisite data, selects the create-or-update
// branch, and delegates to the workflow. Invoke never raises past this
// boundary; every failure is delivered to the error sink exactly once.
type Trigger struct {
	credentials credentials.Directory
	tenants     tenants.Directory
	workflow    activator
	next        Next
	sink        pipeline.ErrorSink
	logger      *zap.Logger
}

// NewTrigger constructs a Trigger with required dependencies.
func NewTrigger(creds credentials.Directory, dir tenants.Directory, workflow *Workflow, next Next, sink pipeline.ErrorSink, logger *zap.Logger) *Trigger {
	if creds == nil {
		panic("trigger requires credential directory")
	}
	if dir == nil {
		panic("trigger requires tenant directory")
	}
	if workflow == nil {
		panic("trigger requires workflow")
	}
	if next == nil {
		panic("trigger requires next stage")
	}
	if sink == nil {
		panic("trigger requires error sink")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trigger{
		credentials: creds,
		tenants:     dir,
		workflow:    workflow,
		next:        next,
		sink:        sink,
		logger:      logger,
	}
}

// Invoke consumes one pipeline input. On success the workflow result is
// forwarded to the next stage; on failure the sink receives a single wrapped
// error. Nothing is retried and no error escapes.
func (t *Trigger) Invoke(ctx context.Context, event Event) {
	if _, ok := pipeline.TraceID(ctx); !ok {
		ctx = pipeline.WithTraceID(ctx, "")
	}

	ev, ok := event.(StatusChangedEvent)
	if !ok {
		t.sink.Report(ctx, fmt.Errorf("%w: expected status-change notification, got %T", ErrInvalidPayload, event))
		return
	}

	if err := t.process(ctx, ev); err != nil {
		t.sink.Report(ctx, err)
	}
}

func (t *Trigger) process(ctx context.Context, ev StatusChangedEvent) error {
	logger := logging.FromContextOr(ctx, t.logger).With(zap.Int64("tenant_id", ev.TenantID))
	logger.Debug("invoking tenant activation")

	tenant, err := t.tenants.Get(ctx, ev.TenantID)
	if err != nil {
		if errors.Is(err, tenants.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrTenantNotFound, ev.TenantID)
		}
		return fmt.Errorf("load tenant %d: %w", ev.TenantID, err)
	}

	adminCred, err := t.credentials.Get(ctx, credentials.GetQuery{
		OwnerID: ev.TenantID,
		Kind:    credentials.KindIndividual,
		ID:      tenant.AdminUsername,
	})
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return fmt.Errorf("%w: admin %q of tenant %d", ErrMissingAdminCredential, tenant.AdminUsername, ev.TenantID)
		}
		return fmt.Errorf("load admin credential for tenant %d: %w", ev.TenantID, err)
	}
	if adminCred.Secret == "" {
		return fmt.Errorf("%w: admin %q of tenant %d", ErrMissingAdminCredential, tenant.AdminUsername, ev.TenantID)
	}

	// Travels into the workflow call only; never persisted on the record.
	tenant.AdminPassword = adminCred.Secret

	// An existing IAM credential means the realm was provisioned before, so
	// the activation is an update and the one-time bootstrap is skipped.
	isUpdate := false
	iamCred, err := t.credentials.Get(ctx, credentials.GetQuery{
		OwnerID: ev.TenantID,
		Kind:    credentials.KindIAM,
	})
	switch {
	case err == nil:
		isUpdate = iamCred.ID != ""
	case errors.Is(err, credentials.ErrNotFound):
	default:
		return fmt.Errorf("load iam credential for tenant %d: %w", ev.TenantID, err)
	}

	result, err := t.workflow.Activate(ctx, tenant, SystemActor, isUpdate)
	if err != nil {
		return fmt.Errorf("tenant %d activation failed: %w", ev.TenantID, err)
	}

	if err := t.next(ctx, result); err != nil {
		return fmt.Errorf("forward activation result for tenant %d: %w", ev.TenantID, err)
	}

	logger.Info("tenant activated", zap.Bool("update", isUpdate), zap.String("status", string(result.Status)))
	return nil
}
