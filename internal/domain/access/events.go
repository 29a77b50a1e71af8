package access

import (
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for permission grants
const AggregateTypePermissionGrant = "PermissionGrant"

// EventTypePermissionToggled is emitted after a grant change is persisted
const EventTypePermissionToggled = "PermissionToggled"

// PermissionToggledEvent is published when a sub-account gains or loses
// access to a sidebar option
type PermissionToggledEvent struct {
	shared.BaseDomainEvent
	PermissionSetID string `json:"permission_set_id"`
	SubAccountID    string `json:"sub_account_id"`
	SidebarOptionID string `json:"sidebar_option_id"`
	OptionName      string `json:"option_name,omitempty"`
	Access          bool   `json:"access"`
}

// NewPermissionToggledEvent creates a new PermissionToggledEvent
func NewPermissionToggledEvent(agencyID uuid.UUID, grant PermissionGrant, optionName string) *PermissionToggledEvent {
	return &PermissionToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePermissionToggled, AggregateTypePermissionGrant, grant.ID, agencyID),
		PermissionSetID: grant.PermissionSetID,
		SubAccountID:    grant.SubAccountID,
		SidebarOptionID: grant.SidebarOptionID,
		OptionName:      optionName,
		Access:          grant.Access,
	}
}
