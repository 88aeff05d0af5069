package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository seeded with users.
func NewUserRepositoryStub(users ...model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{Users: make(map[string]*model.User)}
	for i := range users {
		u := users[i]
		s.Users[u.ID] = &u
	}
	return s
}

// Create registers user unless email is taken for the role.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	for _, existing := range s.Users {
		if existing.Email == user.Email && existing.Role == user.Role {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	user.CreatedAt = time.Now()
	stored := user
	s.Users[user.ID] = &stored
	return &user, nil
}

// GetByEmail fetches user by email and role or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string, role model.Role) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.Email == email && u.Role == role {
			found := *u
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if u, ok := s.Users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub keeps catalog entries in memory.
type ProductRepositoryStub struct {
	mu       sync.Mutex
	Products map[string]*model.Product
	Err      error
}

// NewProductRepositoryStub constructs stub catalog.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[string]*model.Product)}
	for i := range products {
		p := products[i]
		s.Products[p.ID] = &p
	}
	return s
}

// Create stores product.
func (s *ProductRepositoryStub) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products == nil {
		s.Products = make(map[string]*model.Product)
	}
	product.CreatedAt = time.Now()
	stored := product
	s.Products[product.ID] = &stored
	return &product, nil
}

// GetByID returns product or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		found := *p
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns products newest first.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// OrderRepositoryStub is an in-memory order store. Buyers supplies joined
// buyer details for ListBySeller.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]*model.Order
	Buyers map[string]model.PartyInfo
	Err    error
	Now    func() time.Time

	CreateFn       func(context.Context, model.Order) (*model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)

	StatusUpdates []StatusUpdateCall
}

// StatusUpdateCall records UpdateStatus and TransitionStatus invocations.
type StatusUpdateCall struct {
	OrderID string
	From    model.OrderStatus
	To      model.OrderStatus
}

// NewOrderRepositoryStub constructs stub store seeded with orders.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[string]*model.Order), Buyers: make(map[string]model.PartyInfo)}
	for i := range orders {
		o := orders[i]
		s.Orders[o.ID] = &o
	}
	return s
}

func (s *OrderRepositoryStub) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create stores the order and stamps timestamps.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if _, exists := s.Orders[order.ID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt
	stored := order
	s.Orders[order.ID] = &stored
	return &order, nil
}

// GetByID returns stored order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if o, ok := s.Orders[id]; ok {
		found := *o
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetForBuyer returns the order only when buyerID owns it.
func (s *OrderRepositoryStub) GetForBuyer(ctx context.Context, id, buyerID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if o, ok := s.Orders[id]; ok && o.BuyerID == buyerID {
		found := *o
		return &found, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByBuyer returns buyer orders newest first.
func (s *OrderRepositoryStub) ListByBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.BuyerID == buyerID {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// ListBySeller returns seller orders newest first joined with buyer details.
func (s *OrderRepositoryStub) ListBySeller(ctx context.Context, sellerID string) ([]model.SellerOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.SellerOrder
	for _, o := range s.Orders {
		if o.SellerID == sellerID {
			result = append(result, model.SellerOrder{Order: *o, Buyer: s.Buyers[o.BuyerID]})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// UpdateStatus overwrites status unconditionally.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.StatusUpdates = append(s.StatusUpdates, StatusUpdateCall{OrderID: id, From: o.Status, To: status})
	o.Status = status
	o.UpdatedAt = s.now()
	found := *o
	return &found, nil
}

// TransitionStatus updates status only while the order still has from.
func (s *OrderRepositoryStub) TransitionStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Status != from {
		return nil, domainErrors.ErrInvalidTransition
	}
	s.StatusUpdates = append(s.StatusUpdates, StatusUpdateCall{OrderID: id, From: from, To: to})
	o.Status = to
	o.UpdatedAt = s.now()
	found := *o
	return &found, nil
}

// SetStatus changes a stored order behind the use case's back, simulating a
// concurrent writer.
func (s *OrderRepositoryStub) SetStatus(id string, status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		o.Status = status
	}
}

// Count returns the number of stored orders.
func (s *OrderRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Orders)
}
