package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// CreateProductInput is the payload for listing a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
}

// ProductUseCase manages the catalog.
type ProductUseCase struct {
	products repository.ProductRepository
	newID    func() string
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products, newID: uuid.NewString}
}

// List returns the whole catalog newest first.
func (u *ProductUseCase) List(ctx context.Context) ([]model.Product, error) {
	products, err := u.products.List(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// Create lists a product owned by the calling seller.
func (u *ProductUseCase) Create(ctx context.Context, identity model.Identity, in CreateProductInput) (*model.Product, error) {
	if !identity.Authenticated() {
		return nil, domainErrors.ErrUnauthorized
	}
	if identity.Role != model.RoleSeller {
		return nil, domainErrors.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", domainErrors.ErrInvalidRequest)
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return nil, fmt.Errorf("%w: invalid price", domainErrors.ErrInvalidRequest)
	}

	return u.products.Create(ctx, model.Product{
		ID:          u.newID(),
		SellerID:    identity.UserID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Category:    in.Category,
	})
}
