package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	accessapp "github.com/agency/backend/internal/application/access"
	agencyapp "github.com/agency/backend/internal/application/agency"
	sidebarapp "github.com/agency/backend/internal/application/sidebar"
	"github.com/agency/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockSidebarService struct {
	mock.Mock
}

func (m *mockSidebarService) GetTree(ctx context.Context, agencyID uuid.UUID) ([]sidebarapp.MenuNodeResponse, error) {
	args := m.Called(ctx, agencyID)
	tree, _ := args.Get(0).([]sidebarapp.MenuNodeResponse)
	return tree, args.Error(1)
}

func (m *mockSidebarService) GetGrouped(ctx context.Context, agencyID uuid.UUID) ([]sidebarapp.CategoryGroupResponse, error) {
	args := m.Called(ctx, agencyID)
	groups, _ := args.Get(0).([]sidebarapp.CategoryGroupResponse)
	return groups, args.Error(1)
}

func (m *mockSidebarService) GetVisibleTree(ctx context.Context, agencyID uuid.UUID, permissionSetID, subAccountID string) ([]sidebarapp.MenuNodeResponse, error) {
	args := m.Called(ctx, agencyID, permissionSetID, subAccountID)
	tree, _ := args.Get(0).([]sidebarapp.MenuNodeResponse)
	return tree, args.Error(1)
}

func (m *mockSidebarService) CreateOption(ctx context.Context, agencyID uuid.UUID, req sidebarapp.CreateOptionRequest) (*sidebarapp.OptionResponse, error) {
	args := m.Called(ctx, agencyID, req)
	option, _ := args.Get(0).(*sidebarapp.OptionResponse)
	return option, args.Error(1)
}

func (m *mockSidebarService) UpdateOption(ctx context.Context, agencyID uuid.UUID, id string, req sidebarapp.UpdateOptionRequest) (*sidebarapp.OptionResponse, error) {
	args := m.Called(ctx, agencyID, id, req)
	option, _ := args.Get(0).(*sidebarapp.OptionResponse)
	return option, args.Error(1)
}

func (m *mockSidebarService) DeleteOption(ctx context.Context, agencyID uuid.UUID, id string) error {
	return m.Called(ctx, agencyID, id).Error(0)
}

type mockPermissionService struct {
	mock.Mock
}

func (m *mockPermissionService) ListGrants(ctx context.Context, agencyID uuid.UUID, permissionSetID string) ([]accessapp.GrantResponse, error) {
	args := m.Called(ctx, agencyID, permissionSetID)
	grants, _ := args.Get(0).([]accessapp.GrantResponse)
	return grants, args.Error(1)
}

func (m *mockPermissionService) CheckAccess(ctx context.Context, agencyID uuid.UUID, permissionSetID, subAccountID, sidebarOptionID string) (*accessapp.CheckAccessResponse, error) {
	args := m.Called(ctx, agencyID, permissionSetID, subAccountID, sidebarOptionID)
	resp, _ := args.Get(0).(*accessapp.CheckAccessResponse)
	return resp, args.Error(1)
}

func (m *mockPermissionService) Toggle(ctx context.Context, agencyID uuid.UUID, req accessapp.ToggleRequest) (*accessapp.ToggleResponse, error) {
	args := m.Called(ctx, agencyID, req)
	resp, _ := args.Get(0).(*accessapp.ToggleResponse)
	return resp, args.Error(1)
}

func (m *mockPermissionService) ListAuditLog(ctx context.Context, agencyID uuid.UUID, limit int) ([]accessapp.AuditEntryResponse, error) {
	args := m.Called(ctx, agencyID, limit)
	entries, _ := args.Get(0).([]accessapp.AuditEntryResponse)
	return entries, args.Error(1)
}

type mockAgencyService struct {
	mock.Mock
}

func (m *mockAgencyService) RegisterAgency(ctx context.Context, req agencyapp.RegisterAgencyRequest) (*agencyapp.AgencyResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*agencyapp.AgencyResponse)
	return resp, args.Error(1)
}

func (m *mockAgencyService) GetAgency(ctx context.Context, agencyID uuid.UUID) (*agencyapp.AgencyResponse, error) {
	args := m.Called(ctx, agencyID)
	resp, _ := args.Get(0).(*agencyapp.AgencyResponse)
	return resp, args.Error(1)
}

func (m *mockAgencyService) CreateSubAccount(ctx context.Context, agencyID uuid.UUID, req agencyapp.CreateSubAccountRequest) (*agencyapp.SubAccountResponse, error) {
	args := m.Called(ctx, agencyID, req)
	resp, _ := args.Get(0).(*agencyapp.SubAccountResponse)
	return resp, args.Error(1)
}

func (m *mockAgencyService) ListSubAccounts(ctx context.Context, agencyID uuid.UUID) ([]agencyapp.SubAccountResponse, error) {
	args := m.Called(ctx, agencyID)
	resp, _ := args.Get(0).([]agencyapp.SubAccountResponse)
	return resp, args.Error(1)
}

// newTestEngine mounts the request id and tenant middleware the real router uses
func newTestEngine() *gin.Engine {
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.TenantMiddleware())
	return engine
}

// serve sends a request as agencyID; uuid.Nil sends no tenant header
func serve(engine *gin.Engine, method, path string, agencyID uuid.UUID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if agencyID != uuid.Nil {
		req.Header.Set(middleware.TenantHeaderKey, agencyID.String())
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

var anyCtx = mock.Anything

// serveWithHeader sends a GET with a raw tenant header value
func serveWithHeader(engine *gin.Engine, path, tenant string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set(middleware.TenantHeaderKey, tenant)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}
