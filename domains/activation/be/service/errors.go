package service

import "errors"

// Errors reported by the activation trigger. Collaborator failures are not
// enumerated here; they propagate wrapped with their originating step.
var (
	ErrInvalidPayload         = errors.New("invalid activation payload")
	ErrTenantNotFound         = errors.New("tenant not found")
	ErrMissingAdminCredential = errors.New("admin credential missing or empty")
)
