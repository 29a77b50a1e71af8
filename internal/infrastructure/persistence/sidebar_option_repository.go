package persistence

import (
	"context"
	"errors"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/agency/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSidebarOptionRepository implements sidebar.OptionRepository using GORM
type GormSidebarOptionRepository struct {
	db *gorm.DB
}

// NewGormSidebarOptionRepository creates a new GormSidebarOptionRepository
func NewGormSidebarOptionRepository(db *gorm.DB) *GormSidebarOptionRepository {
	return &GormSidebarOptionRepository{db: db}
}

// FindByAgency returns every option of the agency in creation order
func (r *GormSidebarOptionRepository) FindByAgency(ctx context.Context, agencyID uuid.UUID) ([]sidebar.MenuOption, error) {
	var rows []models.SidebarOptionModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	options := make([]sidebar.MenuOption, len(rows))
	for i := range rows {
		options[i] = rows[i].ToDomain()
	}
	return options, nil
}

// FindByID finds one option of the agency
func (r *GormSidebarOptionRepository) FindByID(ctx context.Context, agencyID uuid.UUID, id string) (*sidebar.MenuOption, error) {
	var row models.SidebarOptionModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND id = ?", agencyID, id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	option := row.ToDomain()
	return &option, nil
}

// Save inserts the option or updates its display fields and parent
func (r *GormSidebarOptionRepository) Save(ctx context.Context, agencyID uuid.UUID, option *sidebar.MenuOption) error {
	model := models.SidebarOptionModelFromDomain(agencyID, option)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"parent_id", "name", "link", "icon", "sort_order", "updated_at"}),
	}).Create(model).Error
}

// Delete detaches the direct children of the option and removes it in one
// transaction
func (r *GormSidebarOptionRepository) Delete(ctx context.Context, agencyID uuid.UUID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SidebarOptionModel{}).
			Where("agency_id = ? AND parent_id = ?", agencyID, id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("agency_id = ? AND id = ?", agencyID, id).
			Delete(&models.SidebarOptionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ sidebar.OptionRepository = (*GormSidebarOptionRepository)(nil)
