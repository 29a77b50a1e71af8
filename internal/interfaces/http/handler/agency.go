package handler

import (
	"context"

	agencyapp "github.com/agency/backend/internal/application/agency"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AgencyService is the application API the agency endpoints need
type AgencyService interface {
	RegisterAgency(ctx context.Context, req agencyapp.RegisterAgencyRequest) (*agencyapp.AgencyResponse, error)
	GetAgency(ctx context.Context, agencyID uuid.UUID) (*agencyapp.AgencyResponse, error)
	CreateSubAccount(ctx context.Context, agencyID uuid.UUID, req agencyapp.CreateSubAccountRequest) (*agencyapp.SubAccountResponse, error)
	ListSubAccounts(ctx context.Context, agencyID uuid.UUID) ([]agencyapp.SubAccountResponse, error)
}

// AgencyHandler serves agencies and their sub-accounts
type AgencyHandler struct {
	BaseHandler
	service AgencyService
}

// NewAgencyHandler creates a new AgencyHandler
func NewAgencyHandler(service AgencyService) *AgencyHandler {
	return &AgencyHandler{service: service}
}

// Register creates an agency with the default sidebar.
// POST /agencies
func (h *AgencyHandler) Register(c *gin.Context) {
	var req agencyapp.RegisterAgencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	agency, err := h.service.RegisterAgency(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, agency)
}

// Get returns the current agency.
// GET /agency
func (h *AgencyHandler) Get(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	agency, err := h.service.GetAgency(c.Request.Context(), agencyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, agency)
}

// CreateSubAccount adds a sub-account to the current agency.
// POST /agency/sub-accounts
func (h *AgencyHandler) CreateSubAccount(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	var req agencyapp.CreateSubAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	subAccount, err := h.service.CreateSubAccount(c.Request.Context(), agencyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, subAccount)
}

// ListSubAccounts returns the current agency's sub-accounts.
// GET /agency/sub-accounts
func (h *AgencyHandler) ListSubAccounts(c *gin.Context) {
	agencyID, err := getAgencyID(c)
	if err != nil {
		h.InvalidTenant(c)
		return
	}

	subAccounts, err := h.service.ListSubAccounts(c.Request.Context(), agencyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, subAccounts)
}
