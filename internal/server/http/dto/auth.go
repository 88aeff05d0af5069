package dto

import "github.com/polkiloo/marketplace/internal/domain/model"

// RegisterRequest describes sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and the account.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}
