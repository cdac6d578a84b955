package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"booking-checkout/internal/infra/draftstorage"
	"booking-checkout/internal/pkg/clock"
	"booking-checkout/internal/pkg/config"
	"booking-checkout/internal/pkg/errs"
	"booking-checkout/internal/usecase/draftstore"

	"go.opentelemetry.io/otel"
	"go.uber.org/fx"
)

const startupTimeout = 10 * time.Second

var StorageModule = fx.Module("storage",
	fx.Provide(
		clock.NewRealClock,
		NewDraftStorage,
	),
)

// NewDraftStorage selects the draft backend named by DRAFT_BACKEND.
func NewDraftStorage(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (draftstore.Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	logger.Info("Draft storage selected", "backend", cfg.Draft.Backend, "ttl", cfg.Draft.TTL)

	switch cfg.Draft.Backend {
	case config.DraftBackendMemory:
		return draftstorage.NewMemory(clk, cfg.Draft.TTL), nil
	case config.DraftBackendFile:
		store, err := draftstorage.NewFile(cfg.Draft.FileDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DraftBackendRedis:
		client, err := NewRedis(ctx, lc, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return draftstorage.NewRedis(client, cfg.Draft.TTL, otel.Tracer("booking-checkout/draftstorage")), nil
	case config.DraftBackendPostgres:
		pool, err := NewDB(ctx, lc, cfg.DB)
		if err != nil {
			return nil, err
		}
		store := draftstorage.NewPostgres(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errs.Newf("unknown draft backend %q", cfg.Draft.Backend)
	}
}
