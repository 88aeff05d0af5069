package notify

import (
	"go.uber.org/fx"

	"github.com/polkiloo/marketplace/internal/worker"
)

// Module provides the connection registry and the event dispatcher.
var Module = fx.Options(
	fx.Provide(
		NewRegistry,
		func(p *worker.Pool) TaskSubmitter { return p },
		NewDispatcher,
	),
)
