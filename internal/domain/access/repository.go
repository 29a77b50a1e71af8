package access

import (
	"context"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrPermissionSetNotFound is returned when a permission set belongs to
// another agency. Foreign sets are reported as missing, not forbidden.
var ErrPermissionSetNotFound = shared.NewDomainError(shared.CodeNotFound, "Permission set not found")

// GrantRepository defines the interface for permission grant persistence.
// Every call is scoped to one agency.
type GrantRepository interface {
	// FindByPermissionSet loads the agency's grants of a permission set.
	// A set owned by another agency yields an empty GrantSet.
	FindByPermissionSet(ctx context.Context, agencyID uuid.UUID, permissionSetID string) (GrantSet, error)

	// ClaimPermissionSet records agencyID as the owner of a set on first use.
	// It returns ErrPermissionSetNotFound when another agency owns the set.
	ClaimPermissionSet(ctx context.Context, agencyID uuid.UUID, permissionSetID string) error

	// Upsert inserts the grant or, when its (permission set, sub-account,
	// option) triple already exists, overwrites Access. Last write wins.
	// The returned grant carries the id of the stored row.
	Upsert(ctx context.Context, agencyID uuid.UUID, grant PermissionGrant) (PermissionGrant, error)
}

// AuditLogRepository defines the interface for the agency activity trail
type AuditLogRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error

	// FindRecent returns the newest entries first
	FindRecent(ctx context.Context, agencyID uuid.UUID, limit int) ([]AuditEntry, error)
}
