package components

import (
	"context"
	"log/slog"

	"booking-checkout/internal/pkg/clock"
	"booking-checkout/internal/pkg/config"
	"booking-checkout/internal/pkg/metrics"
	"booking-checkout/internal/usecase/checkout"
	"booking-checkout/internal/usecase/draftstore"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		NewCheckoutOptions,
		NewRegistry,
		checkout.NewCheckoutUseCase,
	),
)

func NewCheckoutOptions(cfg config.Config, clk clock.Clock) (checkout.Options, error) {
	loc, err := cfg.Checkout.Location()
	if err != nil {
		return checkout.Options{}, err
	}
	return checkout.Options{
		BackendTimeout: cfg.Backend.Timeout,
		Location:       loc,
		IdleTTL:        cfg.Checkout.IdleTTL,
		Clock:          clk,
	}, nil
}

// NewRegistry waits for detached promotion usage calls on shutdown.
func NewRegistry(
	lc fx.Lifecycle,
	cfg config.Config,
	storage draftstore.Storage,
	backend checkout.Backend,
	logger *slog.Logger,
	m *metrics.CheckoutMetrics,
	opts checkout.Options,
) *checkout.Registry {
	r := checkout.NewRegistry(storage, backend, cfg.Draft.KeyPrefix, logger, m, opts)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			r.WaitBackground()
			return nil
		},
	})
	return r
}
