package agency

import (
	"net/mail"
	"strings"
	"time"

	"github.com/agency/backend/internal/domain/shared"
)

// Agency is the tenant: it owns sub-accounts, sidebar options and
// permission sets. Its ID is the tenant id carried by every request.
type Agency struct {
	shared.BaseAggregateRoot
	Name         string
	CompanyEmail string
	CompanyPhone string
	Address      string
	City         string
	Country      string
	WhiteLabel   bool
}

// NewAgency creates a new agency
func NewAgency(name, email string) (*Agency, error) {
	a := &Agency{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WhiteLabel:        true,
	}
	if err := a.Rename(name); err != nil {
		return nil, err
	}
	if err := a.SetEmail(email); err != nil {
		return nil, err
	}
	a.Record(NewAgencyCreatedEvent(a))
	return a, nil
}

// Rename changes the agency display name
func (a *Agency) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Agency name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Agency name cannot exceed 200 characters")
	}
	a.Name = name
	a.Changed()
	return nil
}

// SetEmail sets the company email; empty clears it
func (a *Agency) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return shared.NewDomainError(shared.CodeInvalidInput, "Agency email is not a valid address")
		}
	}
	a.CompanyEmail = email
	a.UpdatedAt = time.Now()
	return nil
}

// SetContact updates postal and phone details
func (a *Agency) SetContact(phone, address, city, country string) {
	a.CompanyPhone = strings.TrimSpace(phone)
	a.Address = strings.TrimSpace(address)
	a.City = strings.TrimSpace(city)
	a.Country = strings.TrimSpace(country)
	a.Changed()
}
