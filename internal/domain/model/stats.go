package model

// StatsSummary aggregates seller order counters.
type StatsSummary struct {
	TotalOrders int     `json:"totalOrders"`
	Pending     int     `json:"pending"`
	Delivered   int     `json:"delivered"`
	Cancelled   int     `json:"cancelled"`
	Revenue     float64 `json:"revenue"`
}

// SalesPoint is a single bucket of the monthly sales series.
type SalesPoint struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

// SellerStats is the seller dashboard payload.
type SellerStats struct {
	Summary   StatsSummary `json:"summary"`
	SalesData []SalesPoint `json:"salesData"`
}
