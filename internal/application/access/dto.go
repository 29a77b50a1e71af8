package access

import (
	"time"

	"github.com/agency/backend/internal/domain/access"
)

// ToggleRequest sets the access of a sub-account to a sidebar option
type ToggleRequest struct {
	PermissionSetID string `json:"permission_set_id" binding:"required"`
	SubAccountID    string `json:"sub_account_id" binding:"required"`
	SidebarOptionID string `json:"sidebar_option_id" binding:"required"`
	// pointer so that an explicit false passes the required check
	Access *bool `json:"access" binding:"required"`
}

// GrantResponse represents a permission grant
type GrantResponse struct {
	ID              string `json:"id"`
	PermissionSetID string `json:"permission_set_id"`
	SubAccountID    string `json:"sub_account_id"`
	SidebarOptionID string `json:"sidebar_option_id"`
	Access          bool   `json:"access"`
}

// ToggleResponse carries the changed grant and the resulting set
type ToggleResponse struct {
	Grant  GrantResponse   `json:"grant"`
	Grants []GrantResponse `json:"grants"`
}

// CheckAccessResponse is the answer to an access check
type CheckAccessResponse struct {
	PermissionSetID string `json:"permission_set_id"`
	SubAccountID    string `json:"sub_account_id"`
	SidebarOptionID string `json:"sidebar_option_id"`
	Granted         bool   `json:"granted"`
}

// AuditEntryResponse is one line of the activity trail
type AuditEntryResponse struct {
	ID           string    `json:"id"`
	SubAccountID string    `json:"sub_account_id,omitempty"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToGrantResponse converts a domain grant to a response DTO
func ToGrantResponse(g access.PermissionGrant) GrantResponse {
	return GrantResponse{
		ID:              g.ID,
		PermissionSetID: g.PermissionSetID,
		SubAccountID:    g.SubAccountID,
		SidebarOptionID: g.SidebarOptionID,
		Access:          g.Access,
	}
}

// ToGrantResponses converts a grant set to response DTOs
func ToGrantResponses(grants access.GrantSet) []GrantResponse {
	out := make([]GrantResponse, 0, len(grants))
	for _, g := range grants {
		out = append(out, ToGrantResponse(g))
	}
	return out
}

// ToAuditEntryResponses converts audit entries to response DTOs
func ToAuditEntryResponses(entries []access.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:           e.ID.String(),
			SubAccountID: e.SubAccountID,
			Description:  e.Description,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out
}
