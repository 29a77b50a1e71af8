package agency

import "github.com/agency/backend/internal/domain/shared"

const (
	AggregateTypeAgency     = "Agency"
	AggregateTypeSubAccount = "SubAccount"
)

const (
	EventTypeAgencyCreated     = "AgencyCreated"
	EventTypeSubAccountCreated = "SubAccountCreated"
)

// AgencyCreatedEvent is published when a new agency is registered
type AgencyCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewAgencyCreatedEvent creates a new AgencyCreatedEvent
func NewAgencyCreatedEvent(a *Agency) *AgencyCreatedEvent {
	return &AgencyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAgencyCreated, AggregateTypeAgency, a.ID.String(), a.ID),
		Name:            a.Name,
	}
}

// SubAccountCreatedEvent is published when an agency adds a sub-account
type SubAccountCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSubAccountCreatedEvent creates a new SubAccountCreatedEvent
func NewSubAccountCreatedEvent(s *SubAccount) *SubAccountCreatedEvent {
	return &SubAccountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubAccountCreated, AggregateTypeSubAccount, s.ID.String(), s.AgencyID),
		Name:            s.Name,
	}
}
