package bootstrap

import (
	"booking-checkout/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	MetricsModule,
	StorageModule,
	components.GatewayModule,
	components.UseCaseModule,
	components.HandlerModule,
)
