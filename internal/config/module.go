package config

import "go.uber.org/fx"

// Module loads configuration once per fx graph.
var Module = fx.Module("config", fx.Provide(Load))
