package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity holds the identity and timestamps every stored record has
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity returns an entity with a fresh id, created now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// BaseAggregateRoot adds an optimistic-locking version and the events
// recorded since the aggregate was loaded
type BaseAggregateRoot struct {
	BaseEntity
	Version      int
	domainEvents []DomainEvent
}

// NewBaseAggregateRoot starts a new aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// Changed marks a state change: bumps the version and UpdatedAt
func (a *BaseAggregateRoot) Changed() {
	a.Version++
	a.UpdatedAt = time.Now()
}

// Record queues an event for publication after the aggregate is saved
func (a *BaseAggregateRoot) Record(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// Events returns the queued events without clearing them
func (a *BaseAggregateRoot) Events() []DomainEvent {
	return a.domainEvents
}

// PullEvents returns the queued events and clears the queue
func (a *BaseAggregateRoot) PullEvents() []DomainEvent {
	events := a.domainEvents
	a.domainEvents = nil
	return events
}

// AgencyScoped is an aggregate owned by one agency
type AgencyScoped struct {
	BaseAggregateRoot
	AgencyID uuid.UUID
}

// NewAgencyScoped starts a new aggregate owned by agencyID
func NewAgencyScoped(agencyID uuid.UUID) AgencyScoped {
	return AgencyScoped{BaseAggregateRoot: NewBaseAggregateRoot(), AgencyID: agencyID}
}
