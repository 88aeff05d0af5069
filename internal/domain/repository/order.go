package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetForBuyer(ctx context.Context, id, buyerID string) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.SellerOrder, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	// TransitionStatus moves the order to status only while it still has
	// status from. It returns ErrInvalidTransition when nothing matched.
	TransitionStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error)
}
