package logger

import "go.uber.org/fx"

// Module provides the service-wide JSON logger.
var Module = fx.Module("logger", fx.Provide(New))
