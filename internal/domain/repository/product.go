package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// ProductRepository gives access to the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}
