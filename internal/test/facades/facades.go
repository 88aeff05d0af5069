// Package facades holds configurable stubs of the HTTP facade used by handler and router tests.
package facades

import (
	"context"
	"sync"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/invoice"
	"github.com/polkiloo/marketplace/internal/notify"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// AuthFacadeStub allows overriding authentication flows.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, role model.Role, name, email, password string) (*model.User, string, error)
	AuthenticateFn func(ctx context.Context, role model.Role, email, password string) (*model.User, string, error)
	ParseFn        func(token string) (model.Identity, error)
}

// Register delegates to RegisterFn when provided.
func (s AuthFacadeStub) Register(ctx context.Context, role model.Role, name, email, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, role, name, email, password)
	}
	return &model.User{ID: "u1", Name: name, Email: email, Role: role}, "token", nil
}

// Authenticate delegates to AuthenticateFn when provided.
func (s AuthFacadeStub) Authenticate(ctx context.Context, role model.Role, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, role, email, password)
	}
	return &model.User{ID: "u1", Email: email, Role: role}, "token", nil
}

// ParseToken delegates to ParseFn when provided. The default token "token"
// resolves to buyer u1 and "seller-token" to seller s1.
func (s AuthFacadeStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if token == "seller-token" {
		return model.Identity{UserID: "s1", Role: model.RoleSeller}, nil
	}
	return model.Identity{UserID: "u1", Role: model.RoleBuyer}, nil
}

// ProductFacadeStub allows overriding catalog operations.
type ProductFacadeStub struct {
	ProductsFn func(ctx context.Context) ([]model.Product, error)
	CreateFn   func(ctx context.Context, identity model.Identity, in usecase.CreateProductInput) (*model.Product, error)
}

// Products delegates to ProductsFn when provided.
func (s ProductFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{}, nil
}

// CreateProduct delegates to CreateFn when provided.
func (s ProductFacadeStub) CreateProduct(ctx context.Context, identity model.Identity, in usecase.CreateProductInput) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, identity, in)
	}
	return &model.Product{ID: "p1", SellerID: identity.UserID, Name: in.Name, Price: in.Price}, nil
}

// OrderFacadeStub allows overriding order operations.
type OrderFacadeStub struct {
	PlaceFn   func(ctx context.Context, identity model.Identity, in usecase.CreateOrderInput) (*model.Order, error)
	ListFn    func(ctx context.Context, identity model.Identity) ([]model.Order, error)
	CancelFn  func(ctx context.Context, identity model.Identity, orderID string) (*model.Order, error)
	StatusFn  func(ctx context.Context, identity model.Identity, orderID string, status model.OrderStatus) (*model.Order, error)
	InvoiceFn func(ctx context.Context, identity model.Identity, orderID string) (*invoice.File, error)
}

// PlaceOrder delegates to PlaceFn when provided.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, identity model.Identity, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, identity, in)
	}
	return &model.Order{ID: "o1", BuyerID: identity.UserID, Items: LineItems(in.Items), TotalAmount: in.TotalAmount, Status: model.OrderStatusPending}, nil
}

// LineItems converts checkout lines without any catalog lookup.
func LineItems(lines []usecase.OrderLine) []model.OrderItem {
	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = line.Item()
	}
	return items
}

// BuyerOrders delegates to ListFn when provided.
func (s OrderFacadeStub) BuyerOrders(ctx context.Context, identity model.Identity) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, identity)
	}
	return []model.Order{}, nil
}

// CancelOrder delegates to CancelFn when provided.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, identity model.Identity, orderID string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, identity, orderID)
	}
	return &model.Order{ID: orderID, BuyerID: identity.UserID, Status: model.OrderStatusCancelled}, nil
}

// UpdateOrderStatus delegates to StatusFn when provided.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, identity model.Identity, orderID string, status model.OrderStatus) (*model.Order, error) {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, identity, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

// Invoice delegates to InvoiceFn when provided.
func (s OrderFacadeStub) Invoice(ctx context.Context, identity model.Identity, orderID string) (*invoice.File, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, identity, orderID)
	}
	return &invoice.File{Name: invoice.FileName(orderID), ContentType: invoice.ContentType, Data: []byte("%PDF-1.3")}, nil
}

// SellerFacadeStub allows overriding dashboard operations.
type SellerFacadeStub struct {
	OrdersFn func(ctx context.Context, identity model.Identity) ([]model.SellerOrder, error)
	StatsFn  func(ctx context.Context, identity model.Identity) (*model.SellerStats, error)
}

// SellerOrders delegates to OrdersFn when provided.
func (s SellerFacadeStub) SellerOrders(ctx context.Context, identity model.Identity) ([]model.SellerOrder, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, identity)
	}
	return []model.SellerOrder{}, nil
}

// SellerStats delegates to StatsFn when provided.
func (s SellerFacadeStub) SellerStats(ctx context.Context, identity model.Identity) (*model.SellerStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, identity)
	}
	return &model.SellerStats{SalesData: []model.SalesPoint{}}, nil
}

// StreamFacadeStub records live connections.
type StreamFacadeStub struct {
	mu           sync.Mutex
	Connected    map[string]notify.Conn
	Disconnected []notify.Conn
	connects     chan string
}

// NewStreamFacadeStub creates stub signalling each connect on Connects.
func NewStreamFacadeStub() *StreamFacadeStub {
	return &StreamFacadeStub{Connected: make(map[string]notify.Conn), connects: make(chan string, 8)}
}

// Connect records conn for sellerID.
func (s *StreamFacadeStub) Connect(sellerID string, conn notify.Conn) {
	s.mu.Lock()
	if s.Connected == nil {
		s.Connected = make(map[string]notify.Conn)
	}
	s.Connected[sellerID] = conn
	s.mu.Unlock()
	if s.connects != nil {
		select {
		case s.connects <- sellerID:
		default:
		}
	}
}

// Disconnect records conn removal.
func (s *StreamFacadeStub) Disconnect(conn notify.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Disconnected = append(s.Disconnected, conn)
	for id, c := range s.Connected {
		if c == conn {
			delete(s.Connected, id)
		}
	}
}

// Connects reports seller ids as they connect.
func (s *StreamFacadeStub) Connects() <-chan string {
	return s.connects
}

// Conn returns the connection registered for sellerID.
func (s *StreamFacadeStub) Conn(sellerID string) notify.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Connected[sellerID]
}

// DisconnectCount returns the number of Disconnect calls.
func (s *StreamFacadeStub) DisconnectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Disconnected)
}

// HealthFacadeStub returns Err from Ping.
type HealthFacadeStub struct {
	Err error
}

// Ping reports Err.
func (s HealthFacadeStub) Ping(context.Context) error {
	return s.Err
}

// MarketplaceFacadeStub combines every facade stub.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	ProductFacadeStub
	OrderFacadeStub
	SellerFacadeStub
	*StreamFacadeStub
	HealthFacadeStub
}
