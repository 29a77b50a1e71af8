package agency

import (
	"time"

	"github.com/agency/backend/internal/domain/agency"
)

// RegisterAgencyRequest creates a new agency (tenant)
type RegisterAgencyRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	CompanyEmail string `json:"company_email" binding:"required,email"`
	CompanyPhone string `json:"company_phone" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	City         string `json:"city" binding:"max=100"`
	Country      string `json:"country" binding:"max=100"`
}

// CreateSubAccountRequest adds a client store to an agency
type CreateSubAccountRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	CompanyEmail string `json:"company_email" binding:"omitempty,email"`
	CompanyPhone string `json:"company_phone" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	City         string `json:"city" binding:"max=100"`
	Country      string `json:"country" binding:"max=100"`
}

// AgencyResponse represents an agency
type AgencyResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CompanyEmail string    `json:"company_email"`
	CompanyPhone string    `json:"company_phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	WhiteLabel   bool      `json:"white_label"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubAccountResponse represents a sub-account
type SubAccountResponse struct {
	ID           string    `json:"id"`
	AgencyID     string    `json:"agency_id"`
	Name         string    `json:"name"`
	CompanyEmail string    `json:"company_email,omitempty"`
	CompanyPhone string    `json:"company_phone,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToAgencyResponse converts a domain agency to a response DTO
func ToAgencyResponse(a *agency.Agency) *AgencyResponse {
	return &AgencyResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		CompanyEmail: a.CompanyEmail,
		CompanyPhone: a.CompanyPhone,
		Address:      a.Address,
		City:         a.City,
		Country:      a.Country,
		WhiteLabel:   a.WhiteLabel,
		CreatedAt:    a.CreatedAt,
	}
}

// ToSubAccountResponse converts a domain sub-account to a response DTO
func ToSubAccountResponse(s *agency.SubAccount) SubAccountResponse {
	return SubAccountResponse{
		ID:           s.ID.String(),
		AgencyID:     s.AgencyID.String(),
		Name:         s.Name,
		CompanyEmail: s.CompanyEmail,
		CompanyPhone: s.CompanyPhone,
		City:         s.City,
		Country:      s.Country,
		CreatedAt:    s.CreatedAt,
	}
}
