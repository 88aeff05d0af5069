package app

import (
	"context"

	"go.uber.org/fx"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/invoice"
	"github.com/polkiloo/marketplace/internal/notify"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// FacadeParams lists MarketplaceFacade dependencies.
type FacadeParams struct {
	fx.In

	Auth     *usecase.AuthUseCase
	Products *usecase.ProductUseCase
	Orders   *usecase.OrderUseCase
	Stats    *usecase.StatsUseCase
	Invoices *usecase.InvoiceUseCase
	Registry *notify.Registry
	Health   HealthChecker
}

// MarketplaceFacade adapts use cases to the operations served over HTTP.
type MarketplaceFacade struct {
	auth     *usecase.AuthUseCase
	products *usecase.ProductUseCase
	orders   *usecase.OrderUseCase
	stats    *usecase.StatsUseCase
	invoices *usecase.InvoiceUseCase
	registry *notify.Registry
	health   HealthChecker
}

func NewMarketplaceFacade(p FacadeParams) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:     p.Auth,
		products: p.Products,
		orders:   p.Orders,
		stats:    p.Stats,
		invoices: p.Invoices,
		registry: p.Registry,
		health:   p.Health,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, role model.Role, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, role, name, email, password)
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, role model.Role, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, role, email, password)
}

func (f *MarketplaceFacade) ParseToken(token string) (model.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.products.List(ctx)
}

func (f *MarketplaceFacade) CreateProduct(ctx context.Context, identity model.Identity, in usecase.CreateProductInput) (*model.Product, error) {
	return f.products.Create(ctx, identity, in)
}

func (f *MarketplaceFacade) PlaceOrder(ctx context.Context, identity model.Identity, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, identity, in)
}

func (f *MarketplaceFacade) BuyerOrders(ctx context.Context, identity model.Identity) ([]model.Order, error) {
	if !identity.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}
	return f.orders.ListForBuyer(ctx, identity.UserID)
}

func (f *MarketplaceFacade) CancelOrder(ctx context.Context, identity model.Identity, orderID string) (*model.Order, error) {
	return f.orders.Cancel(ctx, identity, orderID)
}

func (f *MarketplaceFacade) UpdateOrderStatus(ctx context.Context, identity model.Identity, orderID string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, identity, orderID, status)
}

func (f *MarketplaceFacade) Invoice(ctx context.Context, identity model.Identity, orderID string) (*invoice.File, error) {
	return f.invoices.Render(ctx, identity, orderID)
}

func (f *MarketplaceFacade) SellerOrders(ctx context.Context, identity model.Identity) ([]model.SellerOrder, error) {
	if identity.Role != model.RoleSeller {
		return nil, domainErrors.ErrForbidden
	}
	return f.orders.ListForSeller(ctx, identity.UserID)
}

func (f *MarketplaceFacade) SellerStats(ctx context.Context, identity model.Identity) (*model.SellerStats, error) {
	if identity.Role != model.RoleSeller {
		return nil, domainErrors.ErrForbidden
	}
	return f.stats.ForSeller(ctx, identity.UserID)
}

// Connect registers the live channel of a seller.
func (f *MarketplaceFacade) Connect(sellerID string, conn notify.Conn) {
	f.registry.Register(sellerID, conn)
}

// Disconnect drops a live channel.
func (f *MarketplaceFacade) Disconnect(conn notify.Conn) {
	f.registry.Drop(conn)
}

func (f *MarketplaceFacade) Ping(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
