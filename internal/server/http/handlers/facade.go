package handlers

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/invoice"
	"github.com/polkiloo/marketplace/internal/notify"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, role model.Role, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, role model.Role, email, password string) (*model.User, string, error)
	ParseToken(token string) (model.Identity, error)
}

// ProductFacade exposes the catalog.
type ProductFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, identity model.Identity, in usecase.CreateProductInput) (*model.Product, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, identity model.Identity, in usecase.CreateOrderInput) (*model.Order, error)
	BuyerOrders(ctx context.Context, identity model.Identity) ([]model.Order, error)
	CancelOrder(ctx context.Context, identity model.Identity, orderID string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, identity model.Identity, orderID string, status model.OrderStatus) (*model.Order, error)
	Invoice(ctx context.Context, identity model.Identity, orderID string) (*invoice.File, error)
}

// SellerFacade provides the seller dashboard.
type SellerFacade interface {
	SellerOrders(ctx context.Context, identity model.Identity) ([]model.SellerOrder, error)
	SellerStats(ctx context.Context, identity model.Identity) (*model.SellerStats, error)
}

// StreamFacade tracks live seller connections.
type StreamFacade interface {
	Connect(sellerID string, conn notify.Conn)
	Disconnect(conn notify.Conn)
}

// HealthFacade reports dependency health.
type HealthFacade interface {
	Ping(ctx context.Context) error
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	ProductFacade
	OrderFacade
	SellerFacade
	StreamFacade
	HealthFacade
}
