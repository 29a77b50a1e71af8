package sidebar

import (
	"context"

	"github.com/google/uuid"
)

// OptionRepository stores the sidebar options of each agency.
// FindByAgency returns options in a stable order (creation time, then id)
// so that ties on Order resolve the same way on every load.
type OptionRepository interface {
	FindByAgency(ctx context.Context, agencyID uuid.UUID) ([]MenuOption, error)
	FindByID(ctx context.Context, agencyID uuid.UUID, id string) (*MenuOption, error)
	Save(ctx context.Context, agencyID uuid.UUID, option *MenuOption) error
	// Delete removes an option and moves its direct children to the top
	// level. Both happen or neither does.
	Delete(ctx context.Context, agencyID uuid.UUID, id string) error
}

// OptionCache holds the flat option list of an agency between loads.
// Get reports a miss with found == false and a nil error.
type OptionCache interface {
	Get(ctx context.Context, agencyID uuid.UUID) (options []MenuOption, found bool, err error)
	Set(ctx context.Context, agencyID uuid.UUID, options []MenuOption) error
	Invalidate(ctx context.Context, agencyID uuid.UUID) error
}
