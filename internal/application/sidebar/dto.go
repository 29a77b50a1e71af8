package sidebar

import (
	"github.com/agency/backend/internal/domain/sidebar"
)

// CreateOptionRequest represents a request to add a sidebar option
type CreateOptionRequest struct {
	Name     string  `json:"name" binding:"required,notblank,max=100"`
	Link     string  `json:"link" binding:"required,notblank"`
	Icon     string  `json:"icon" binding:"max=100"`
	Order    int     `json:"order"`
	ParentID *string `json:"parent_id"`
}

// UpdateOptionRequest replaces the editable fields of an option.
// A nil or empty ParentID moves the option to the top level.
type UpdateOptionRequest struct {
	Name     string  `json:"name" binding:"required,notblank,max=100"`
	Link     string  `json:"link" binding:"required,notblank"`
	Icon     string  `json:"icon" binding:"max=100"`
	Order    int     `json:"order"`
	ParentID *string `json:"parent_id"`
}

// OptionResponse is the flat representation of an option
type OptionResponse struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id,omitempty"`
	Name     string  `json:"name"`
	Link     string  `json:"link"`
	Order    int     `json:"order"`
	Icon     string  `json:"icon"`
}

// MenuNodeResponse is an option with its ordered children
type MenuNodeResponse struct {
	OptionResponse
	Children []MenuNodeResponse `json:"children"`
}

// CategoryGroupResponse is one display section with its top-level entries
type CategoryGroupResponse struct {
	Name    string             `json:"name"`
	Options []MenuNodeResponse `json:"options"`
}

// ToOptionResponse converts a domain option to a response DTO
func ToOptionResponse(o sidebar.MenuOption) OptionResponse {
	return OptionResponse{
		ID:       o.ID,
		ParentID: o.ParentID,
		Name:     o.Name,
		Link:     o.Link,
		Order:    o.Order,
		Icon:     o.Icon,
	}
}

// ToMenuNodeResponses converts a built forest to response DTOs.
// Children is always a non-nil slice so it encodes as [].
func ToMenuNodeResponses(nodes []*sidebar.MenuNode) []MenuNodeResponse {
	out := make([]MenuNodeResponse, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, MenuNodeResponse{
			OptionResponse: ToOptionResponse(node.Option),
			Children:       ToMenuNodeResponses(node.Children),
		})
	}
	return out
}
