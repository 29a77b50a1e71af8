package models

import (
	"github.com/agency/backend/internal/domain/agency"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AgencyModel is the persistence model for the agencies table
type AgencyModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(200);not null"`
	CompanyEmail string `gorm:"type:varchar(255)"`
	CompanyPhone string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:varchar(255)"`
	City         string `gorm:"type:varchar(100)"`
	Country      string `gorm:"type:varchar(100)"`
	WhiteLabel   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AgencyModel) TableName() string {
	return "agencies"
}

// ToDomain converts the model to a domain Agency
func (m *AgencyModel) ToDomain() *agency.Agency {
	a := &agency.Agency{
		Name:         m.Name,
		CompanyEmail: m.CompanyEmail,
		CompanyPhone: m.CompanyPhone,
		Address:      m.Address,
		City:         m.City,
		Country:      m.Country,
		WhiteLabel:   m.WhiteLabel,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// AgencyModelFromDomain creates a persistence model from a domain Agency
func AgencyModelFromDomain(a *agency.Agency) *AgencyModel {
	m := &AgencyModel{
		Name:         a.Name,
		CompanyEmail: a.CompanyEmail,
		CompanyPhone: a.CompanyPhone,
		Address:      a.Address,
		City:         a.City,
		Country:      a.Country,
		WhiteLabel:   a.WhiteLabel,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}

// SubAccountModel is the persistence model for the sub_accounts table
type SubAccountModel struct {
	AggregateModel
	AgencyID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(200);not null"`
	CompanyEmail string    `gorm:"type:varchar(255)"`
	CompanyPhone string    `gorm:"type:varchar(50)"`
	Address      string    `gorm:"type:varchar(255)"`
	City         string    `gorm:"type:varchar(100)"`
	Country      string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (SubAccountModel) TableName() string {
	return "sub_accounts"
}

// ToDomain converts the model to a domain SubAccount
func (m *SubAccountModel) ToDomain() *agency.SubAccount {
	s := &agency.SubAccount{
		AgencyScoped: shared.AgencyScoped{AgencyID: m.AgencyID},
		Name:         m.Name,
		CompanyEmail: m.CompanyEmail,
		CompanyPhone: m.CompanyPhone,
		Address:      m.Address,
		City:         m.City,
		Country:      m.Country,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// SubAccountModelFromDomain creates a persistence model from a domain SubAccount
func SubAccountModelFromDomain(s *agency.SubAccount) *SubAccountModel {
	m := &SubAccountModel{
		AgencyID:     s.AgencyID,
		Name:         s.Name,
		CompanyEmail: s.CompanyEmail,
		CompanyPhone: s.CompanyPhone,
		Address:      s.Address,
		City:         s.City,
		Country:      s.Country,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
