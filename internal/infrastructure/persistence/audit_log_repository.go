package persistence

import (
	"context"

	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxAuditLogLimit = 500

// GormAuditLogRepository implements access.AuditLogRepository using GORM
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append writes one entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *access.AuditEntry) error {
	return r.db.WithContext(ctx).Create(models.AuditLogModelFromDomain(entry)).Error
}

// FindRecent returns up to limit entries of the agency, newest first.
// The limit is clamped to 1..500.
func (r *GormAuditLogRepository) FindRecent(ctx context.Context, agencyID uuid.UUID, limit int) ([]access.AuditEntry, error) {
	limit = max(1, min(limit, maxAuditLogLimit))

	var rows []models.AuditLogModel
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]access.AuditEntry, len(rows))
	for i := range rows {
		entries[i] = rows[i].ToDomain()
	}
	return entries, nil
}

var _ access.AuditLogRepository = (*GormAuditLogRepository)(nil)
