package handler

import (
	"context"
	"strings"

	accessapp "github.com/agency/backend/internal/application/access"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PermissionService is the application API the access endpoints need
type PermissionService interface {
	ListGrants(ctx context.Context, agencyID uuid.UUID, permissionSetID string) ([]accessapp.GrantResponse, error)
	CheckAccess(ctx context.Context, agencyID uuid.UUID, permissionSetID, subAccountID, sidebarOptionID string) (*accessapp.CheckAccessResponse, error)
	Toggle(ctx context.Context, agencyID uuid.UUID, req accessapp.ToggleRequest) (*accessapp.ToggleResponse, error)
	ListAuditLog(ctx context.Context, agencyID uuid.UUID, limit int) ([]accessapp.AuditEntryResponse, error)
}

// AccessHandler serves sub-account permission grants
type AccessHandler struct {
	BaseHandler
	service PermissionService
}

// NewAccessHandler creates a new AccessHandler
func NewAccessHandler(service PermissionService) *AccessHandler {
	return &AccessHandler{service: service}
}

// CheckAccessQuery names the grant to look up
type CheckAccessQuery struct {
	PermissionSetID string `form:"permission_set_id" binding:"required"`
	SubAccountID    string `form:"sub_account_id" binding:"required"`
	SidebarOptionID string `form:"sidebar_option_id" binding:"required"`
}

// AuditLogQuery bounds the audit listing
type AuditLogQuery struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=500"`
}

// ListGrants returns the agency's grants of a permission set.
// GET /access/permission-sets/:id/grants
func (h *AccessHandler) ListGrants(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	permissionSetID := strings.TrimSpace(c.Param("id"))
	if permissionSetID == "" {
		h.BadRequest(c, "Permission set ID is required")
		return
	}

	grants, err := h.service.ListGrants(c.Request.Context(), agencyID, permissionSetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grants)
}

// CheckAccess reports whether a sub-account may open an option.
// GET /access/check
func (h *AccessHandler) CheckAccess(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var q CheckAccessQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.CheckAccess(c.Request.Context(), agencyID, q.PermissionSetID, q.SubAccountID, q.SidebarOptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Toggle grants or revokes a sub-account's access to an option.
// PUT /access/grants
func (h *AccessHandler) Toggle(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req accessapp.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListAuditLog returns the agency's newest permission changes.
// GET /access/audit-log?limit=
func (h *AccessHandler) ListAuditLog(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var q AuditLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	entries, err := h.service.ListAuditLog(c.Request.Context(), agencyID, q.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
