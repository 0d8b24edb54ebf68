package request

import (
	"shareit/internal/usecase/commands"
)

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (r CreateUserRequest) ToParams() commands.CreateUserParams {
	return commands.CreateUserParams{
		Name:  r.Name,
		Email: r.Email,
	}
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (r UpdateUserRequest) ToPatch() commands.UserPatch {
	return commands.UserPatch{
		Name:  r.Name,
		Email: r.Email,
	}
}
