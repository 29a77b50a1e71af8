package handler

import (
	"context"

	sidebarapp "github.com/agency/backend/internal/application/sidebar"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SidebarService is the application API the sidebar endpoints need
type SidebarService interface {
	GetTree(ctx context.Context, agencyID uuid.UUID) ([]sidebarapp.MenuNodeResponse, error)
	GetGrouped(ctx context.Context, agencyID uuid.UUID) ([]sidebarapp.CategoryGroupResponse, error)
	GetVisibleTree(ctx context.Context, agencyID uuid.UUID, permissionSetID, subAccountID string) ([]sidebarapp.MenuNodeResponse, error)
	CreateOption(ctx context.Context, agencyID uuid.UUID, req sidebarapp.CreateOptionRequest) (*sidebarapp.OptionResponse, error)
	UpdateOption(ctx context.Context, agencyID uuid.UUID, id string, req sidebarapp.UpdateOptionRequest) (*sidebarapp.OptionResponse, error)
	DeleteOption(ctx context.Context, agencyID uuid.UUID, id string) error
}

// SidebarHandler serves the agency navigation menu
type SidebarHandler struct {
	BaseHandler
	service SidebarService
}

// NewSidebarHandler creates a new SidebarHandler
func NewSidebarHandler(service SidebarService) *SidebarHandler {
	return &SidebarHandler{service: service}
}

// VisibleTreeQuery selects whose view of the menu is returned
type VisibleTreeQuery struct {
	PermissionSetID string `form:"permission_set_id" binding:"required"`
	SubAccountID    string `form:"sub_account_id" binding:"required"`
}

// GetTree returns the agency's full option tree.
// GET /sidebar/tree
func (h *SidebarHandler) GetTree(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	tree, err := h.service.GetTree(c.Request.Context(), agencyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// GetGroups returns the top-level options grouped by display category.
// GET /sidebar/groups
func (h *SidebarHandler) GetGroups(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	groups, err := h.service.GetGrouped(c.Request.Context(), agencyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// GetVisibleTree returns the tree pruned to what a sub-account may open.
// GET /sidebar/tree/visible?permission_set_id=&sub_account_id=
func (h *SidebarHandler) GetVisibleTree(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var q VisibleTreeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	tree, err := h.service.GetVisibleTree(c.Request.Context(), agencyID, q.PermissionSetID, q.SubAccountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tree)
}

// CreateOption adds an option to the agency menu.
// POST /sidebar/options
func (h *SidebarHandler) CreateOption(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req sidebarapp.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	option, err := h.service.CreateOption(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, option)
}

// UpdateOption replaces an option's fields.
// PUT /sidebar/options/:id
func (h *SidebarHandler) UpdateOption(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req sidebarapp.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	option, err := h.service.UpdateOption(c.Request.Context(), agencyID, c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, option)
}

// DeleteOption removes an option; its children move to the top level.
// DELETE /sidebar/options/:id
func (h *SidebarHandler) DeleteOption(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	if err := h.service.DeleteOption(c.Request.Context(), agencyID, c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
