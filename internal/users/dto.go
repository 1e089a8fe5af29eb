package users

import (
	"time"

	"github.com/craftloop/craftloop-backend/pkg/db/models"
)

type UpdateUserRequest struct {
	DisplayName *string   `json:"display_name" validate:"omitempty,min=1,max=100"`
	Location    *string   `json:"location" validate:"omitempty,max=200"`
	Interests   *[]string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type UserResponse struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Location    *string    `json:"location,omitempty"`
	Interests   []string   `json:"interests"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse strips credentials from the stored row.
func ToUserResponse(user *models.User) UserResponse {
	interests := []string(user.Interests)
	if interests == nil {
		interests = []string{}
	}
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Location:    user.Location,
		Interests:   interests,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
