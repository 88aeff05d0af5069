package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
	"github.com/polkiloo/marketplace/internal/invoice"
)

// InvoiceUseCase renders invoices for the buyer or seller of an order.
type InvoiceUseCase struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	renderer invoice.Renderer
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(orders repository.OrderRepository, users repository.UserRepository, renderer invoice.Renderer) *InvoiceUseCase {
	return &InvoiceUseCase{orders: orders, users: users, renderer: renderer}
}

// Document loads the order and its parties and builds the invoice document.
func (u *InvoiceUseCase) Document(ctx context.Context, identity model.Identity, orderID string) (*invoice.Document, error) {
	if !identity.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if identity.UserID != order.BuyerID && identity.UserID != order.SellerID {
		return nil, domainErrors.ErrForbidden
	}

	var buyer, seller *model.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		buyer, err = u.lookupUser(gctx, order.BuyerID)
		return err
	})
	g.Go(func() error {
		var err error
		seller, err = u.lookupUser(gctx, order.SellerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load invoice parties: %w", err)
	}

	doc := invoice.NewDocument(*order, buyer, seller)
	return &doc, nil
}

// Render produces the invoice file.
func (u *InvoiceUseCase) Render(ctx context.Context, identity model.Identity, orderID string) (*invoice.File, error) {
	doc, err := u.Document(ctx, identity, orderID)
	if err != nil {
		return nil, err
	}
	return u.renderer.Render(*doc)
}

// lookupUser treats a deleted account as absent rather than as a failure.
func (u *InvoiceUseCase) lookupUser(ctx context.Context, id string) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return usr, nil
}
