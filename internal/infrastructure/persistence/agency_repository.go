package persistence

import (
	"context"
	"errors"

	"github.com/agency/backend/internal/domain/agency"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAgencyRepository implements agency.AgencyRepository using GORM
type GormAgencyRepository struct {
	db *gorm.DB
}

// NewGormAgencyRepository creates a new GormAgencyRepository
func NewGormAgencyRepository(db *gorm.DB) *GormAgencyRepository {
	return &GormAgencyRepository{db: db}
}

// FindByID finds an agency by ID
func (r *GormAgencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*agency.Agency, error) {
	var model models.AgencyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an agency
func (r *GormAgencyRepository) Save(ctx context.Context, a *agency.Agency) error {
	return r.db.WithContext(ctx).Save(models.AgencyModelFromDomain(a)).Error
}

// GormSubAccountRepository implements agency.SubAccountRepository using GORM
type GormSubAccountRepository struct {
	db *gorm.DB
}

// NewGormSubAccountRepository creates a new GormSubAccountRepository
func NewGormSubAccountRepository(db *gorm.DB) *GormSubAccountRepository {
	return &GormSubAccountRepository{db: db}
}

// FindByID finds a sub-account within an agency
func (r *GormSubAccountRepository) FindByID(ctx context.Context, agencyID, id uuid.UUID) (*agency.SubAccount, error) {
	var model models.SubAccountModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForAgency lists the agency's sub-accounts ordered by name
func (r *GormSubAccountRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID) ([]*agency.SubAccount, error) {
	var rows []models.SubAccountModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*agency.SubAccount, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a sub-account
func (r *GormSubAccountRepository) Save(ctx context.Context, s *agency.SubAccount) error {
	return r.db.WithContext(ctx).Save(models.SubAccountModelFromDomain(s)).Error
}

var (
	_ agency.AgencyRepository     = (*GormAgencyRepository)(nil)
	_ agency.SubAccountRepository = (*GormSubAccountRepository)(nil)
)
