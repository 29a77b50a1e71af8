package access

import (
	"context"

	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/domain/agency"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGrantRepository is a mock implementation of access.GrantRepository
type MockGrantRepository struct {
	mock.Mock
}

func (m *MockGrantRepository) FindByPermissionSet(ctx context.Context, agencyID uuid.UUID, permissionSetID string) (access.GrantSet, error) {
	args := m.Called(ctx, agencyID, permissionSetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(access.GrantSet), args.Error(1)
}

func (m *MockGrantRepository) ClaimPermissionSet(ctx context.Context, agencyID uuid.UUID, permissionSetID string) error {
	return m.Called(ctx, agencyID, permissionSetID).Error(0)
}

// Upsert echoes the grant back when the expectation returns nil
func (m *MockGrantRepository) Upsert(ctx context.Context, agencyID uuid.UUID, grant access.PermissionGrant) (access.PermissionGrant, error) {
	args := m.Called(ctx, agencyID, grant)
	if args.Get(0) == nil {
		return grant, args.Error(1)
	}
	return args.Get(0).(access.PermissionGrant), args.Error(1)
}

// MockAuditLogRepository is a mock implementation of access.AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *access.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) FindRecent(ctx context.Context, agencyID uuid.UUID, limit int) ([]access.AuditEntry, error) {
	args := m.Called(ctx, agencyID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]access.AuditEntry), args.Error(1)
}

// MockOptionRepository is a mock implementation of sidebar.OptionRepository
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) FindByAgency(ctx context.Context, agencyID uuid.UUID) ([]sidebar.MenuOption, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sidebar.MenuOption), args.Error(1)
}

func (m *MockOptionRepository) FindByID(ctx context.Context, agencyID uuid.UUID, id string) (*sidebar.MenuOption, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sidebar.MenuOption), args.Error(1)
}

func (m *MockOptionRepository) Save(ctx context.Context, agencyID uuid.UUID, option *sidebar.MenuOption) error {
	return m.Called(ctx, agencyID, option).Error(0)
}

func (m *MockOptionRepository) Delete(ctx context.Context, agencyID uuid.UUID, id string) error {
	return m.Called(ctx, agencyID, id).Error(0)
}

// MockSubAccountRepository is a mock implementation of agency.SubAccountRepository
type MockSubAccountRepository struct {
	mock.Mock
}

func (m *MockSubAccountRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*agency.SubAccount, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agency.SubAccount), args.Error(1)
}

func (m *MockSubAccountRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID) ([]*agency.SubAccount, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agency.SubAccount), args.Error(1)
}

func (m *MockSubAccountRepository) Save(ctx context.Context, subAccount *agency.SubAccount) error {
	return m.Called(ctx, subAccount).Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
