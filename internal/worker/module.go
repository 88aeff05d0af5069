package worker

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/marketplace/internal/config"
)

// Module provides the background task pool and ties it to the fx lifecycle.
var Module = fx.Options(
	fx.Provide(newPool),
	fx.Invoke(registerLifecycle),
)

type poolParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPool(p poolParams) *Pool {
	return NewPool(p.Config.EmailWorkers, p.Config.EmailQueueSize, p.Config.EmailTimeout, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, pool *Pool) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pool.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			pool.Stop()
			return nil
		},
	})
}
