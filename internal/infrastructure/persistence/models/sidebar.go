package models

import (
	"time"

	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/google/uuid"
)

// SidebarOptionModel is the persistence model for the sidebar_options table.
// Ids are opaque strings so options imported from other systems keep theirs.
type SidebarOptionModel struct {
	ID        string    `gorm:"type:varchar(64);primary_key"`
	AgencyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ParentID  *string   `gorm:"type:varchar(64);index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Link      string    `gorm:"type:varchar(500);not null"`
	Icon      string    `gorm:"type:varchar(100)"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SidebarOptionModel) TableName() string {
	return "sidebar_options"
}

// ToDomain converts the model to a domain MenuOption
func (m *SidebarOptionModel) ToDomain() sidebar.MenuOption {
	return sidebar.MenuOption{
		ID:       m.ID,
		ParentID: m.ParentID,
		Name:     m.Name,
		Link:     m.Link,
		Order:    m.SortOrder,
		Icon:     m.Icon,
	}
}

// SidebarOptionModelFromDomain creates a persistence model for an agency's option
func SidebarOptionModelFromDomain(agencyID uuid.UUID, o *sidebar.MenuOption) *SidebarOptionModel {
	now := time.Now()
	return &SidebarOptionModel{
		ID:        o.ID,
		AgencyID:  agencyID,
		ParentID:  o.ParentID,
		Name:      o.Name,
		Link:      o.Link,
		Icon:      o.Icon,
		SortOrder: o.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
