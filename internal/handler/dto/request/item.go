package request

import (
	"shareit/internal/usecase/commands"
)

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

func (r CreateItemRequest) ToParams() commands.CreateItemParams {
	return commands.CreateItemParams{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}

// UpdateItemRequest is a partial update; absent fields stay untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

func (r UpdateItemRequest) ToPatch() commands.ItemPatch {
	return commands.ItemPatch{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
