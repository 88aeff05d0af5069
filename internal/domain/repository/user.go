package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string, role model.Role) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
