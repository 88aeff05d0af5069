package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/marketplace/internal/config"
	"github.com/polkiloo/marketplace/internal/domain/repository"
	"github.com/polkiloo/marketplace/internal/notify"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewProductUseCase,
	PolicyFromConfig,
	func(d *notify.Dispatcher) Dispatcher { return d },
	NewOrderUseCase,
	newStatsUseCase,
	NewInvoiceUseCase,
)

func newStatsUseCase(orders repository.OrderRepository, cfg *config.Config) *StatsUseCase {
	return NewStatsUseCase(orders, cfg.SalesBucketing)
}
