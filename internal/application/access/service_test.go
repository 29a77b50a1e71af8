package access

import (
	"context"
	"errors"
	"testing"

	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/domain/agency"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/agency/backend/internal/infrastructure/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	grants      *MockGrantRepository
	auditLog    *MockAuditLogRepository
	options     *MockOptionRepository
	subAccounts *MockSubAccountRepository
	publisher   *MockEventPublisher
	metrics     *metrics.Metrics
	service     *PermissionService

	agencyID   uuid.UUID
	subAccount *agency.SubAccount
	option     *sidebar.MenuOption
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	agencyID := uuid.New()
	sub, err := agency.NewSubAccount(agencyID, "Corner Store", "")
	require.NoError(t, err)

	f := &fixture{
		grants:      new(MockGrantRepository),
		auditLog:    new(MockAuditLogRepository),
		options:     new(MockOptionRepository),
		subAccounts: new(MockSubAccountRepository),
		publisher:   new(MockEventPublisher),
		metrics:     metrics.New("test"),
		agencyID:    agencyID,
		subAccount:  sub,
		option:      &sidebar.MenuOption{ID: "opt-billing", Name: "Billing", Link: "/billing"},
	}
	f.service = NewPermissionService(f.grants, f.auditLog, f.options, f.subAccounts, f.publisher, f.metrics, zap.NewNop())
	t.Cleanup(func() {
		f.grants.AssertExpectations(t)
		f.auditLog.AssertExpectations(t)
		f.options.AssertExpectations(t)
		f.subAccounts.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})
	return f
}

func (f *fixture) expectTargets() {
	f.subAccounts.On("FindByID", mock.Anything, f.agencyID, f.subAccount.ID).Return(f.subAccount, nil)
	f.options.On("FindByID", mock.Anything, f.agencyID, f.option.ID).Return(f.option, nil)
	f.grants.On("ClaimPermissionSet", mock.Anything, f.agencyID, "set-1").Return(nil)
}

func boolPtr(b bool) *bool { return &b }

func (f *fixture) request(desired bool) ToggleRequest {
	return ToggleRequest{
		PermissionSetID: "set-1",
		SubAccountID:    f.subAccount.ID.String(),
		SidebarOptionID: f.option.ID,
		Access:          boolPtr(desired),
	}
}

func TestPermissionService_Toggle_CreatesGrant(t *testing.T) {
	f := newFixture(t)
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
	f.expectTargets()
	f.grants.On("Upsert", mock.Anything, f.agencyID, mock.MatchedBy(func(g access.PermissionGrant) bool {
		return g.ID != "" && g.PermissionSetID == "set-1" && g.SidebarOptionID == f.option.ID && g.Access
	})).Return(nil, nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		if len(events) != 1 {
			return false
		}
		e, ok := events[0].(*access.PermissionToggledEvent)
		return ok && e.OptionName == "Billing" && e.Access && e.AgencyID() == f.agencyID
	})).Return(nil)

	resp, err := f.service.Toggle(context.Background(), f.agencyID, f.request(true))
	require.NoError(t, err)

	assert.True(t, resp.Grant.Access)
	assert.Len(t, resp.Grants, 1)
	count, err := testutil.GatherAndCount(f.metrics.Registry(), "test_access_toggles_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPermissionService_Toggle_UpdatesExistingGrant(t *testing.T) {
	f := newFixture(t)
	existing := access.PermissionGrant{
		ID:              "grant-1",
		PermissionSetID: "set-1",
		SubAccountID:    f.subAccount.ID.String(),
		SidebarOptionID: f.option.ID,
		Access:          true,
	}
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{existing}, nil)
	f.expectTargets()

	want := existing
	want.Access = false
	f.grants.On("Upsert", mock.Anything, f.agencyID, want).Return(nil, nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Toggle(context.Background(), f.agencyID, f.request(false))
	require.NoError(t, err)
	assert.Equal(t, "grant-1", resp.Grant.ID)
	assert.False(t, resp.Grant.Access)
	require.Len(t, resp.Grants, 1)
	assert.False(t, resp.Grants[0].Access)
}

func TestPermissionService_Toggle_InvalidArgument(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ToggleRequest)
		loads  bool
	}{
		{"missing access", func(r *ToggleRequest) { r.Access = nil }, false},
		{"missing permission set", func(r *ToggleRequest) { r.PermissionSetID = "" }, false},
		{"missing sub-account", func(r *ToggleRequest) { r.SubAccountID = "" }, true},
		{"missing option", func(r *ToggleRequest) { r.SidebarOptionID = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.loads {
				f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
			}
			req := f.request(true)
			tt.mutate(&req)

			resp, err := f.service.Toggle(context.Background(), f.agencyID, req)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, shared.ErrInvalidArgument)
			f.grants.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPermissionService_Toggle_MalformedSubAccountID(t *testing.T) {
	f := newFixture(t)
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
	req := f.request(true)
	req.SubAccountID = "not-a-uuid"

	_, err := f.service.Toggle(context.Background(), f.agencyID, req)
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestPermissionService_Toggle_ForeignSubAccount(t *testing.T) {
	f := newFixture(t)
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
	f.subAccounts.On("FindByID", mock.Anything, f.agencyID, f.subAccount.ID).Return(nil, shared.ErrNotFound)

	_, err := f.service.Toggle(context.Background(), f.agencyID, f.request(true))
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.grants.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestPermissionService_Toggle_UnknownOption(t *testing.T) {
	f := newFixture(t)
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
	f.subAccounts.On("FindByID", mock.Anything, f.agencyID, f.subAccount.ID).Return(f.subAccount, nil)
	f.options.On("FindByID", mock.Anything, f.agencyID, f.option.ID).Return(nil, shared.ErrNotFound)

	_, err := f.service.Toggle(context.Background(), f.agencyID, f.request(true))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPermissionService_Toggle_PersistenceFailurePublishesNothing(t *testing.T) {
	f := newFixture(t)
	dbErr := errors.New("deadlock detected")
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
	f.expectTargets()
	f.grants.On("Upsert", mock.Anything, f.agencyID, mock.Anything).Return(nil, dbErr)

	_, err := f.service.Toggle(context.Background(), f.agencyID, f.request(true))
	assert.ErrorIs(t, err, dbErr)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPermissionService_Toggle_PublishFailureIsNotReturned(t *testing.T) {
	f := newFixture(t)
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
	f.expectTargets()
	f.grants.On("Upsert", mock.Anything, f.agencyID, mock.Anything).Return(nil, nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("event bus stopped"))

	resp, err := f.service.Toggle(context.Background(), f.agencyID, f.request(true))
	require.NoError(t, err)
	assert.True(t, resp.Grant.Access)
}

func TestPermissionService_Toggle_ForeignPermissionSet(t *testing.T) {
	f := newFixture(t)
	// the scoped lookup hides every grant another agency keeps in the set
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
	f.subAccounts.On("FindByID", mock.Anything, f.agencyID, f.subAccount.ID).Return(f.subAccount, nil)
	f.options.On("FindByID", mock.Anything, f.agencyID, f.option.ID).Return(f.option, nil)
	f.grants.On("ClaimPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.ErrPermissionSetNotFound)

	resp, err := f.service.Toggle(context.Background(), f.agencyID, f.request(true))

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.grants.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPermissionService_Toggle_ReportsStoredGrantID(t *testing.T) {
	f := newFixture(t)
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{}, nil)
	f.expectTargets()
	// a concurrent first toggle stored the triple under its own id
	f.grants.On("Upsert", mock.Anything, f.agencyID, mock.Anything).Return(access.PermissionGrant{
		ID:              "stored-1",
		PermissionSetID: "set-1",
		SubAccountID:    f.subAccount.ID.String(),
		SidebarOptionID: f.option.ID,
		Access:          true,
	}, nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].AggregateID() == "stored-1"
	})).Return(nil)

	resp, err := f.service.Toggle(context.Background(), f.agencyID, f.request(true))
	require.NoError(t, err)

	assert.Equal(t, "stored-1", resp.Grant.ID)
	require.Len(t, resp.Grants, 1)
	assert.Equal(t, "stored-1", resp.Grants[0].ID)
}

func TestPermissionService_CheckAccess(t *testing.T) {
	f := newFixture(t)
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{
		{ID: "g1", PermissionSetID: "set-1", SubAccountID: "sub-1", SidebarOptionID: "opt-1", Access: true},
		{ID: "g2", PermissionSetID: "set-1", SubAccountID: "sub-1", SidebarOptionID: "opt-2", Access: false},
	}, nil)

	ctx := context.Background()
	granted, err := f.service.CheckAccess(ctx, f.agencyID, "set-1", "sub-1", "opt-1")
	require.NoError(t, err)
	assert.True(t, granted.Granted)

	denied, err := f.service.CheckAccess(ctx, f.agencyID, "set-1", "sub-1", "opt-2")
	require.NoError(t, err)
	assert.False(t, denied.Granted)

	missing, err := f.service.CheckAccess(ctx, f.agencyID, "set-1", "sub-1", "opt-3")
	require.NoError(t, err)
	assert.False(t, missing.Granted)

	_, err = f.service.CheckAccess(ctx, f.agencyID, "set-1", "", "opt-1")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestPermissionService_ListGrants(t *testing.T) {
	f := newFixture(t)
	f.grants.On("FindByPermissionSet", mock.Anything, f.agencyID, "set-1").Return(access.GrantSet{
		{ID: "g1", PermissionSetID: "set-1", SubAccountID: "sub-1", SidebarOptionID: "opt-1", Access: true},
	}, nil)

	grants, err := f.service.ListGrants(context.Background(), f.agencyID, "set-1")
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "g1", grants[0].ID)

	_, err = f.service.ListGrants(context.Background(), f.agencyID, " ")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestPermissionService_ListAuditLog_ClampsLimit(t *testing.T) {
	f := newFixture(t)
	entry := access.AuditEntry{ID: uuid.New(), AgencyID: f.agencyID, Description: "Updated access"}
	f.auditLog.On("FindRecent", mock.Anything, f.agencyID, DefaultAuditLimit).Return([]access.AuditEntry{entry}, nil).Once()
	f.auditLog.On("FindRecent", mock.Anything, f.agencyID, MaxAuditLimit).Return([]access.AuditEntry{}, nil).Once()

	entries, err := f.service.ListAuditLog(context.Background(), f.agencyID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID.String(), entries[0].ID)

	entries, err = f.service.ListAuditLog(context.Background(), f.agencyID, 10_000)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
