package sidebar

import (
	"context"

	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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
	args := m.Called(ctx, agencyID, option)
	return args.Error(0)
}

func (m *MockOptionRepository) Delete(ctx context.Context, agencyID uuid.UUID, id string) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

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

func (m *MockGrantRepository) Upsert(ctx context.Context, agencyID uuid.UUID, grant access.PermissionGrant) (access.PermissionGrant, error) {
	args := m.Called(ctx, agencyID, grant)
	return grant, args.Error(0)
}

// MockOptionCache is a mock implementation of sidebar.OptionCache
type MockOptionCache struct {
	mock.Mock
}

func (m *MockOptionCache) Get(ctx context.Context, agencyID uuid.UUID) ([]sidebar.MenuOption, bool, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]sidebar.MenuOption), args.Bool(1), args.Error(2)
}

func (m *MockOptionCache) Set(ctx context.Context, agencyID uuid.UUID, options []sidebar.MenuOption) error {
	args := m.Called(ctx, agencyID, options)
	return args.Error(0)
}

func (m *MockOptionCache) Invalidate(ctx context.Context, agencyID uuid.UUID) error {
	args := m.Called(ctx, agencyID)
	return args.Error(0)
}
