package agency

import (
	"context"

	"github.com/google/uuid"
)

// AgencyRepository defines the interface for agency persistence operations
type AgencyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Agency, error)
	Save(ctx context.Context, agency *Agency) error
}

// SubAccountRepository defines the interface for sub-account persistence operations
type SubAccountRepository interface {
	// FindByID finds a sub-account within an agency
	FindByID(ctx context.Context, agencyID, id uuid.UUID) (*SubAccount, error)

	// FindAllForAgency lists the agency's sub-accounts ordered by name
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID) ([]*SubAccount, error)

	Save(ctx context.Context, subAccount *SubAccount) error
}
