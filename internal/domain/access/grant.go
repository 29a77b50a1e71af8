package access

// PermissionGrant records whether a sub-account may open one sidebar option
// under a permission set. A missing grant means access is denied.
type PermissionGrant struct {
	ID              string
	PermissionSetID string
	SubAccountID    string
	SidebarOptionID string
	Access          bool
}

// GrantSet is the grants of a single permission set. At most one grant
// exists per (PermissionSetID, SubAccountID, SidebarOptionID).
type GrantSet []PermissionGrant

// matches reports whether the grant is keyed by the given sub-account and option
func (g PermissionGrant) matches(subAccountID, sidebarOptionID string) bool {
	return g.SubAccountID == subAccountID && g.SidebarOptionID == sidebarOptionID
}

// Clone returns an independent copy of the set
func (s GrantSet) Clone() GrantSet {
	out := make(GrantSet, len(s))
	copy(out, s)
	return out
}

// Find returns the grant for the sub-account and option, if any
func (s GrantSet) Find(subAccountID, sidebarOptionID string) (PermissionGrant, bool) {
	for _, g := range s {
		if g.matches(subAccountID, sidebarOptionID) {
			return g, true
		}
	}
	return PermissionGrant{}, false
}

// Replace returns a copy of the set where g stands in for the grant with the
// same sub-account and option. g is appended when no such grant exists.
func (s GrantSet) Replace(g PermissionGrant) GrantSet {
	out := s.Clone()
	for i := range out {
		if out[i].matches(g.SubAccountID, g.SidebarOptionID) {
			out[i] = g
			return out
		}
	}
	return append(out, g)
}

// GrantedOptions returns the ids of options the sub-account may open
func (s GrantSet) GrantedOptions(subAccountID string) map[string]bool {
	out := make(map[string]bool)
	for _, g := range s {
		if g.SubAccountID == subAccountID && g.Access {
			out[g.SidebarOptionID] = true
		}
	}
	return out
}
