package auth

import "github.com/craftloop/craftloop-backend/internal/users"

type RegisterRequest struct {
	Email       string   `json:"email" validate:"required,email,max=254"`
	Password    string   `json:"password" validate:"required,min=8,max=128"`
	DisplayName string   `json:"display_name" validate:"required,min=1,max=100"`
	Location    *string  `json:"location" validate:"omitempty,max=200"`
	Interests   []string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthResponse struct {
	User   users.UserResponse `json:"user"`
	Tokens TokenPair          `json:"tokens"`
}
