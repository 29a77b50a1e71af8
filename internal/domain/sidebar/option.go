package sidebar

import (
	"strings"

	"github.com/agency/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MenuOption is one navigable sidebar entry as stored, before it is placed
// in a tree. ParentID is nil for top-level entries.
type MenuOption struct {
	ID       string
	ParentID *string
	Name     string
	Link     string
	Order    int
	Icon     string
}

// NewMenuOption validates the input and returns an option with a fresh id
func NewMenuOption(name, link, icon string, order int, parentID *string) (*MenuOption, error) {
	opt := &MenuOption{
		ID:    uuid.NewString(),
		Order: order,
		Icon:  strings.TrimSpace(icon),
	}
	if err := opt.Update(name, link, icon, order); err != nil {
		return nil, err
	}
	if err := opt.SetParent(parentID); err != nil {
		return nil, err
	}
	return opt, nil
}

// Update replaces the display fields of the option
func (o *MenuOption) Update(name, link, icon string, order int) error {
	name = strings.TrimSpace(name)
	link = strings.TrimSpace(link)
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Sidebar option name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Sidebar option name cannot exceed 100 characters")
	}
	if link == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Sidebar option link cannot be empty")
	}
	o.Name = name
	o.Link = link
	o.Icon = strings.TrimSpace(icon)
	o.Order = order
	return nil
}

// SetParent moves the option under parentID, or to the top level when nil
func (o *MenuOption) SetParent(parentID *string) error {
	if parentID == nil || strings.TrimSpace(*parentID) == "" {
		o.ParentID = nil
		return nil
	}
	pid := strings.TrimSpace(*parentID)
	if pid == o.ID {
		return shared.NewDomainError(shared.CodeInvalidInput, "Sidebar option cannot be its own parent")
	}
	o.ParentID = &pid
	return nil
}

// IsTopLevel reports whether the option declares no parent
func (o MenuOption) IsTopLevel() bool {
	return o.ParentID == nil
}

// clone copies the option so the ParentID pointer is not shared with the caller
func (o MenuOption) clone() MenuOption {
	if o.ParentID != nil {
		pid := *o.ParentID
		o.ParentID = &pid
	}
	return o
}
