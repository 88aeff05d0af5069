package usecase

import (
	"fmt"
	"math"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
)

// totalTolerance absorbs float rounding when comparing order totals.
const totalTolerance = 0.005

// ValidateItems checks the structural validity of order lines.
func ValidateItems(items []model.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no items in the order", domainErrors.ErrInvalidRequest)
	}
	for i, item := range items {
		switch {
		case item.ProductID == "":
			return fmt.Errorf("%w: item %d has no product", domainErrors.ErrInvalidRequest, i+1)
		case item.Quantity < 1:
			return fmt.Errorf("%w: item %d has quantity below 1", domainErrors.ErrInvalidRequest, i+1)
		case item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0):
			return fmt.Errorf("%w: item %d has invalid price", domainErrors.ErrInvalidRequest, i+1)
		}
	}
	return nil
}

// validateLines applies ValidateItems to submitted lines before any catalog
// lookup. An omitted price counts as zero here.
func validateLines(lines []OrderLine) error {
	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = line.Item()
	}
	return ValidateItems(items)
}

// TotalMatches reports whether total equals the sum of line totals.
func TotalMatches(total float64, items []model.OrderItem) bool {
	return math.Abs(total-model.Order{Items: items}.ItemsTotal()) <= totalTolerance
}
