package model

import "time"

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "Pending"
	OrderStatusConfirmed       OrderStatus = "Confirmed"
	OrderStatusPacking         OrderStatus = "Packing"
	OrderStatusReadyToDispatch OrderStatus = "Ready to Dispatch"
	OrderStatusShipped         OrderStatus = "Shipped"
	OrderStatusDelivered       OrderStatus = "Delivered"
	OrderStatusCancelled       OrderStatus = "Cancelled"
)

// orderStatusRank gives the fulfilment position of every known status.
// Cancelled is outside the forward chain.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:         0,
	OrderStatusConfirmed:       1,
	OrderStatusPacking:         2,
	OrderStatusReadyToDispatch: 3,
	OrderStatusShipped:         4,
	OrderStatusDelivered:       5,
	OrderStatusCancelled:       -1,
}

// OrderStatuses lists statuses in fulfilment order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPacking,
		OrderStatusReadyToDispatch,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// Valid reports whether status belongs to the fixed status set.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next keeps the status
// moving forward. Any non-terminal status may move to Cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !s.Valid() || !next.Valid() || s.Terminal() || s == next {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderStatusRank[next] > orderStatusRank[s]
}

// OrderItem is a snapshot of a purchased product line.
type OrderItem struct {
	ProductID string  `json:"product"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns price multiplied by quantity.
func (i OrderItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Customer holds contact and shipping details captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order describes a purchase placed by a buyer and fulfilled by a single seller.
type Order struct {
	ID          string      `json:"id"`
	BuyerID     string      `json:"buyer"`
	SellerID    string      `json:"seller"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Customer    Customer    `json:"customer"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ItemsTotal sums line totals of all items.
func (o Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	return total
}

// PartyInfo carries public identity fields joined onto an order.
type PartyInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SellerOrder is an order joined with its buyer's public details.
type SellerOrder struct {
	Order
	Buyer PartyInfo `json:"user"`
}
