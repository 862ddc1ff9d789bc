package bootstrap

import (
	"booking-board/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.EngineConfig {
			return cfg.Engine
		},
	),
)
