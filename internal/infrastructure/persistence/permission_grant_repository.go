package persistence

import (
	"context"
	"time"

	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPermissionGrantRepository implements access.GrantRepository using GORM
type GormPermissionGrantRepository struct {
	db *gorm.DB
}

// NewGormPermissionGrantRepository creates a new GormPermissionGrantRepository
func NewGormPermissionGrantRepository(db *gorm.DB) *GormPermissionGrantRepository {
	return &GormPermissionGrantRepository{db: db}
}

// FindByPermissionSet loads the agency's grants of a permission set
func (r *GormPermissionGrantRepository) FindByPermissionSet(ctx context.Context, agencyID uuid.UUID, permissionSetID string) (access.GrantSet, error) {
	var rows []models.PermissionGrantModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND permission_set_id = ?", agencyID, permissionSetID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	grants := make(access.GrantSet, len(rows))
	for i := range rows {
		grants[i] = rows[i].ToDomain()
	}
	return grants, nil
}

// ClaimPermissionSet makes agencyID the owner of an unclaimed set and
// rejects a set that is already owned by another agency
func (r *GormPermissionGrantRepository) ClaimPermissionSet(ctx context.Context, agencyID uuid.UUID, permissionSetID string) error {
	db := r.db.WithContext(ctx)
	set := &models.PermissionSetModel{ID: permissionSetID, AgencyID: agencyID, CreatedAt: time.Now()}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(set).Error; err != nil {
		return err
	}

	var owner models.PermissionSetModel
	if err := db.Select("id", "agency_id").
		Where("id = ?", permissionSetID).
		Take(&owner).Error; err != nil {
		return err
	}
	if owner.AgencyID != agencyID {
		return access.ErrPermissionSetNotFound
	}
	return nil
}

// Upsert inserts the grant or overwrites Access on the existing row for the
// same triple. The existing row keeps its id, which is returned.
func (r *GormPermissionGrantRepository) Upsert(ctx context.Context, agencyID uuid.UUID, grant access.PermissionGrant) (access.PermissionGrant, error) {
	model := models.PermissionGrantModelFromDomain(agencyID, grant)
	model.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{
				{Name: "permission_set_id"},
				{Name: "sub_account_id"},
				{Name: "sidebar_option_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"access", "updated_at"}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "id"}}},
	).Create(model).Error; err != nil {
		return access.PermissionGrant{}, err
	}
	return model.ToDomain(), nil
}

var _ access.GrantRepository = (*GormPermissionGrantRepository)(nil)
