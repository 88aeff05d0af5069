package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/polkiloo/marketplace/internal/config"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// StatsUseCase builds seller dashboard figures.
type StatsUseCase struct {
	orders    repository.OrderRepository
	bucketing config.SalesBucketing
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(orders repository.OrderRepository, bucketing config.SalesBucketing) *StatsUseCase {
	return &StatsUseCase{orders: orders, bucketing: bucketing}
}

// ForSeller aggregates every order of sellerID.
func (u *StatsUseCase) ForSeller(ctx context.Context, sellerID string) (*model.SellerStats, error) {
	rows, err := u.orders.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller orders: %w", err)
	}
	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.Order)
	}
	stats := ComputeStats(orders, u.bucketing)
	return &stats, nil
}

type salesBucket struct {
	year  int
	month time.Month
}

// ComputeStats is a pure aggregation over orders. Revenue counts Delivered
// orders only; the sales series sums every order by creation month (UTC)
// and omits empty months.
func ComputeStats(orders []model.Order, bucketing config.SalesBucketing) model.SellerStats {
	stats := model.SellerStats{SalesData: []model.SalesPoint{}}
	sales := make(map[salesBucket]float64)

	for _, o := range orders {
		stats.Summary.TotalOrders++
		switch o.Status {
		case model.OrderStatusPending:
			stats.Summary.Pending++
		case model.OrderStatusDelivered:
			stats.Summary.Delivered++
			stats.Summary.Revenue += o.TotalAmount
		case model.OrderStatusCancelled:
			stats.Summary.Cancelled++
		}

		created := o.CreatedAt.UTC()
		key := salesBucket{month: created.Month()}
		if bucketing == config.BucketByYearMonth {
			key.year = created.Year()
		}
		sales[key] += o.TotalAmount
	}

	keys := make([]salesBucket, 0, len(sales))
	for k, v := range sales {
		if v != 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	for _, k := range keys {
		label := k.month.String()[:3]
		if bucketing == config.BucketByYearMonth {
			label = fmt.Sprintf("%s %d", label, k.year)
		}
		stats.SalesData = append(stats.SalesData, model.SalesPoint{Month: label, Sales: sales[k]})
	}
	return stats
}
