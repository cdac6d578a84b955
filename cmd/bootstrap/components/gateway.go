package components

import (
	"log/slog"

	"booking-checkout/internal/infra/marketplace"
	"booking-checkout/internal/pkg/config"
	"booking-checkout/internal/usecase/checkout"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewMarketplaceClient,
			fx.As(new(checkout.Backend)),
		),
	),
)

func NewMarketplaceClient(cfg config.Config, logger *slog.Logger) *marketplace.Client {
	return marketplace.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
}
