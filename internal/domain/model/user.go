package model

import "time"

// Role distinguishes marketplace actors.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid reports whether role is a known marketplace role.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User represents a registered buyer or seller.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the authenticated caller of an operation.
type Identity struct {
	UserID string
	Role   Role
}

// Authenticated reports whether identity carries a user.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}
