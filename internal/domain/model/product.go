package model

import "time"

// Product is a catalog entry owned by a seller.
type Product struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}
