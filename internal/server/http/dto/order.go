package dto

import (
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// OrderItemRequest is a checkout line. Name and price are optional and
// filled from the catalog when omitted; null counts as omitted.
type OrderItemRequest struct {
	Product  string   `json:"product"`
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Quantity int      `json:"quantity"`
}

// CreateOrderRequest describes checkout payload.
type CreateOrderRequest struct {
	Items       []OrderItemRequest `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
	Customer    model.Customer     `json:"customer"`
}

// ToLines converts request lines to use case input.
func (r CreateOrderRequest) ToLines() []usecase.OrderLine {
	lines := make([]usecase.OrderLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, usecase.OrderLine{
			ProductID: it.Product,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return lines
}

// StatusRequest describes a status change.
type StatusRequest struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
