package agency

import (
	"strings"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubAccount is a client store managed by an agency
type SubAccount struct {
	shared.AgencyScoped
	Name         string
	CompanyEmail string
	CompanyPhone string
	Address      string
	City         string
	Country      string
}

// NewSubAccount creates a sub-account owned by agencyID
func NewSubAccount(agencyID uuid.UUID, name, email string) (*SubAccount, error) {
	if agencyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Sub-account must belong to an agency")
	}
	s := &SubAccount{
		AgencyScoped: shared.NewAgencyScoped(agencyID),
		CompanyEmail: strings.TrimSpace(email),
	}
	if err := s.Rename(name); err != nil {
		return nil, err
	}
	s.Record(NewSubAccountCreatedEvent(s))
	return s, nil
}

// Rename changes the sub-account name
func (s *SubAccount) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Sub-account name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Sub-account name cannot exceed 200 characters")
	}
	s.Name = name
	s.Changed()
	return nil
}

// BelongsTo reports whether the sub-account is owned by agencyID
func (s *SubAccount) BelongsTo(agencyID uuid.UUID) bool {
	return s.AgencyID == agencyID
}
