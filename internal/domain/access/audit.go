package access

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one line of an agency's activity trail
type AuditEntry struct {
	ID           uuid.UUID
	AgencyID     uuid.UUID
	SubAccountID string
	Description  string
	CreatedAt    time.Time
}

// NewToggleAuditEntry describes a permission toggle for the activity trail
func NewToggleAuditEntry(e *PermissionToggledEvent) *AuditEntry {
	verb := "revoked"
	if e.Access {
		verb = "granted"
	}
	target := e.OptionName
	if target == "" {
		target = e.SidebarOptionID
	}
	return &AuditEntry{
		ID:           uuid.New(),
		AgencyID:     e.AgencyID(),
		SubAccountID: e.SubAccountID,
		Description:  fmt.Sprintf("Updated access to %s for sub-account %s: %s", target, e.SubAccountID, verb),
		CreatedAt:    e.OccurredAt(),
	}
}
