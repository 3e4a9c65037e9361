package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/resumify/resumify-api/internal/model"
	"github.com/resumify/resumify-api/internal/usage"
)

type UserDTO struct {
	ID        uuid.UUID    `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Plan      model.Plan   `json:"plan"`
	Quota     *usage.Quota `json:"quota,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewUserDTO(u *model.User, quota *usage.Quota) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Plan:      u.Plan,
		Quota:     quota,
		CreatedAt: u.CreatedAt,
	}
}
