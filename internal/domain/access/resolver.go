package access

import (
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IsGranted reports whether the sub-account may open the sidebar option.
// Unknown pairs are denied.
func IsGranted(grants GrantSet, subAccountID, sidebarOptionID string) bool {
	g, ok := grants.Find(subAccountID, sidebarOptionID)
	return ok && g.Access
}

// ApplyToggle sets access for one (permission set, sub-account, option) triple.
//
// It returns a new set with the change applied and the grant that was created
// or updated. The input set is left untouched. A grant is created on the first
// toggle of a triple whichever value is requested.
func ApplyToggle(grants GrantSet, permissionSetID, subAccountID, sidebarOptionID string, desired bool) (GrantSet, PermissionGrant, error) {
	if subAccountID == "" {
		return grants, PermissionGrant{}, shared.NewDomainError(shared.CodeInvalidArgument, "sub account id is required")
	}
	if sidebarOptionID == "" {
		return grants, PermissionGrant{}, shared.NewDomainError(shared.CodeInvalidArgument, "sidebar option id is required")
	}

	updated := grants.Clone()
	for i := range updated {
		g := &updated[i]
		if g.PermissionSetID == permissionSetID && g.matches(subAccountID, sidebarOptionID) {
			g.Access = desired
			return updated, *g, nil
		}
	}

	created := PermissionGrant{
		ID:              uuid.NewString(),
		PermissionSetID: permissionSetID,
		SubAccountID:    subAccountID,
		SidebarOptionID: sidebarOptionID,
		Access:          desired,
	}
	return append(updated, created), created, nil
}
