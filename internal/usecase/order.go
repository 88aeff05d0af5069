package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/polkiloo/marketplace/internal/config"
	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// Dispatcher publishes lifecycle events. Dispatch must not fail the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind model.EventKind, order model.Order)
}

// OrderPolicy holds the configurable lifecycle rules.
type OrderPolicy struct {
	SellerTransitions      config.SellerTransitionPolicy
	EnforceSellerOwnership bool
	VerifyOrderTotal       bool
}

// PolicyFromConfig extracts lifecycle rules from configuration.
func PolicyFromConfig(cfg *config.Config) OrderPolicy {
	return OrderPolicy{
		SellerTransitions:      cfg.SellerTransitions,
		EnforceSellerOwnership: cfg.EnforceSellerOwnership,
		VerifyOrderTotal:       cfg.VerifyOrderTotal,
	}
}

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	Items       []OrderLine
	TotalAmount float64
	Customer    model.Customer
}

// OrderLine is a checkout line as submitted. A nil Name or Price was omitted
// by the client and is taken from the catalog; an explicit zero is kept.
type OrderLine struct {
	ProductID string
	Name      *string
	Price     *float64
	Quantity  int
}

// Item returns the line as an order item with omitted fields left zero.
func (l OrderLine) Item() model.OrderItem {
	item := model.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity}
	if l.Name != nil {
		item.Name = *l.Name
	}
	if l.Price != nil {
		item.Price = *l.Price
	}
	return item
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	dispatcher Dispatcher
	policy     OrderPolicy
	logger     *slog.Logger
	newID      func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	dispatcher Dispatcher,
	policy OrderPolicy,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:     orders,
		products:   products,
		dispatcher: dispatcher,
		policy:     policy,
		logger:     logger,
		newID:      uuid.NewString,
	}
}

// Create places a Pending order with the seller of the first item.
func (u *OrderUseCase) Create(ctx context.Context, identity model.Identity, in CreateOrderInput) (*model.Order, error) {
	if !identity.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	if in.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: negative total amount", domainErrors.ErrInvalidRequest)
	}

	items, sellerID, err := u.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	if u.policy.VerifyOrderTotal && !TotalMatches(in.TotalAmount, items) {
		return nil, fmt.Errorf("%w: total amount does not match items", domainErrors.ErrInvalidRequest)
	}

	order, err := u.orders.Create(ctx, model.Order{
		ID:          u.newID(),
		BuyerID:     identity.UserID,
		SellerID:    sellerID,
		Items:       items,
		TotalAmount: in.TotalAmount,
		Customer:    in.Customer,
		Status:      model.OrderStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	u.logger.Info("order created",
		slog.String("order", order.ID),
		slog.String("buyer", order.BuyerID),
		slog.String("seller", order.SellerID),
	)
	u.dispatcher.Dispatch(ctx, model.EventCreated, *order)
	return order, nil
}

// resolveItems looks up every referenced product, fills missing snapshot
// fields and returns the single seller owning all of them.
func (u *OrderUseCase) resolveItems(ctx context.Context, in []OrderLine) ([]model.OrderItem, string, error) {
	items := make([]model.OrderItem, len(in))
	for i, line := range in {
		items[i] = line.Item()
	}

	seen := make(map[string]*model.Product, len(items))
	var sellerID string
	for i := range items {
		product, ok := seen[items[i].ProductID]
		if !ok {
			p, err := u.products.GetByID(ctx, items[i].ProductID)
			if err != nil {
				return nil, "", err
			}
			product = p
			seen[p.ID] = p
		}

		if i == 0 {
			sellerID = product.SellerID
		} else if product.SellerID != sellerID {
			return nil, "", fmt.Errorf("%w: items belong to different sellers", domainErrors.ErrInvalidRequest)
		}

		if in[i].Name == nil {
			items[i].Name = product.Name
		}
		if in[i].Price == nil {
			items[i].Price = product.Price
		}
	}
	if sellerID == "" {
		return nil, "", fmt.Errorf("%w: product has no seller", domainErrors.ErrInvalidRequest)
	}
	return items, sellerID, nil
}

// UpdateStatus applies a seller status change.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, identity model.Identity, orderID string, status model.OrderStatus) (*model.Order, error) {
	if !identity.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}
	if identity.Role != model.RoleSeller {
		return nil, domainErrors.ErrForbidden
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q, expected one of %s", domainErrors.ErrInvalidRequest, status, statusList())
	}

	var (
		order *model.Order
		err   error
	)
	if u.policy.SellerTransitions == config.SellerTransitionsForward || u.policy.EnforceSellerOwnership {
		order, err = u.guardedUpdate(ctx, identity, orderID, status)
	} else {
		order, err = u.orders.UpdateStatus(ctx, orderID, status)
	}
	if err != nil {
		return nil, err
	}

	u.logger.Info("order status updated", slog.String("order", order.ID), slog.String("status", string(order.Status)))
	u.dispatcher.Dispatch(ctx, model.EventUpdated, *order)
	return order, nil
}

func (u *OrderUseCase) guardedUpdate(ctx context.Context, identity model.Identity, orderID string, status model.OrderStatus) (*model.Order, error) {
	current, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if u.policy.EnforceSellerOwnership && current.SellerID != identity.UserID {
		return nil, domainErrors.ErrForbidden
	}
	if u.policy.SellerTransitions != config.SellerTransitionsForward {
		return u.orders.UpdateStatus(ctx, orderID, status)
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s to %s", domainErrors.ErrInvalidTransition, current.Status, status)
	}
	return u.orders.TransitionStatus(ctx, orderID, current.Status, status)
}

// Cancel cancels a Pending order owned by the calling buyer.
func (u *OrderUseCase) Cancel(ctx context.Context, identity model.Identity, orderID string) (*model.Order, error) {
	if !identity.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}

	current, err := u.orders.GetForBuyer(ctx, orderID, identity.UserID)
	if err != nil {
		return nil, err
	}
	if current.Status != model.OrderStatusPending {
		return nil, fmt.Errorf("%w: cannot cancel order once it left Pending", domainErrors.ErrInvalidTransition)
	}

	order, err := u.orders.TransitionStatus(ctx, orderID, model.OrderStatusPending, model.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	u.logger.Info("order cancelled", slog.String("order", order.ID), slog.String("buyer", identity.UserID))
	u.dispatcher.Dispatch(ctx, model.EventCancelled, *order)
	return order, nil
}

// ListForBuyer returns buyer orders newest first.
func (u *OrderUseCase) ListForBuyer(ctx context.Context, buyerID string) ([]model.Order, error) {
	orders, err := u.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// ListForSeller returns seller orders newest first with buyer details.
func (u *OrderUseCase) ListForSeller(ctx context.Context, sellerID string) ([]model.SellerOrder, error) {
	orders, err := u.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.SellerOrder{}
	}
	return orders, nil
}

func statusList() string {
	statuses := model.OrderStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = strconv.Quote(string(s))
	}
	return strings.Join(names, ", ")
}
