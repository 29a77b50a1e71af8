package models

import (
	"time"

	"github.com/agency/backend/internal/domain/access"
	"github.com/google/uuid"
)

// PermissionSetModel records which agency owns a permission set
type PermissionSetModel struct {
	ID        string    `gorm:"type:varchar(64);primary_key"`
	AgencyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PermissionSetModel) TableName() string {
	return "permission_sets"
}

// PermissionGrantModel is the persistence model for the permission_grants table.
// The unique index on the triple backs GrantRepository.Upsert.
type PermissionGrantModel struct {
	ID              string    `gorm:"type:varchar(64);primary_key"`
	AgencyID        uuid.UUID `gorm:"type:uuid;not null;index:idx_permission_grants_agency_set,priority:1"`
	PermissionSetID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_permission_grants_triple,priority:1;index:idx_permission_grants_agency_set,priority:2"`
	SubAccountID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_permission_grants_triple,priority:2"`
	SidebarOptionID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_permission_grants_triple,priority:3"`
	Access          bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PermissionGrantModel) TableName() string {
	return "permission_grants"
}

// ToDomain converts the model to a domain PermissionGrant
func (m *PermissionGrantModel) ToDomain() access.PermissionGrant {
	return access.PermissionGrant{
		ID:              m.ID,
		PermissionSetID: m.PermissionSetID,
		SubAccountID:    m.SubAccountID,
		SidebarOptionID: m.SidebarOptionID,
		Access:          m.Access,
	}
}

// PermissionGrantModelFromDomain creates a persistence model for a grant of the agency
func PermissionGrantModelFromDomain(agencyID uuid.UUID, g access.PermissionGrant) *PermissionGrantModel {
	now := time.Now()
	return &PermissionGrantModel{
		ID:              g.ID,
		AgencyID:        agencyID,
		PermissionSetID: g.PermissionSetID,
		SubAccountID:    g.SubAccountID,
		SidebarOptionID: g.SidebarOptionID,
		Access:          g.Access,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AuditLogModel is the persistence model for the audit_logs table
type AuditLogModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	AgencyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_agency_created,priority:1"`
	SubAccountID string    `gorm:"type:varchar(64)"`
	Description  string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null;index:idx_audit_logs_agency_created,priority:2"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the model to a domain AuditEntry
func (m *AuditLogModel) ToDomain() access.AuditEntry {
	return access.AuditEntry{
		ID:           m.ID,
		AgencyID:     m.AgencyID,
		SubAccountID: m.SubAccountID,
		Description:  m.Description,
		CreatedAt:    m.CreatedAt,
	}
}

// AuditLogModelFromDomain creates a persistence model from a domain AuditEntry
func AuditLogModelFromDomain(e *access.AuditEntry) *AuditLogModel {
	return &AuditLogModel{
		ID:           e.ID,
		AgencyID:     e.AgencyID,
		SubAccountID: e.SubAccountID,
		Description:  e.Description,
		CreatedAt:    e.CreatedAt,
	}
}
