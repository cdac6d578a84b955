package components

import (
	"booking-checkout/internal/handler"
	"booking-checkout/internal/handler/api"
	"booking-checkout/internal/handler/middleware"
	"booking-checkout/internal/pkg/config"
	"booking-checkout/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(NewRouter),
)

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	m *metrics.CheckoutMetrics,
	gatherer prometheus.Gatherer,
	checkoutHandler *api.CheckoutHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	handler.NewRouter(engine, handler.RouterDeps{
		Config:          cfg,
		Logger:          logger,
		Metrics:         m,
		Gatherer:        gatherer,
		CheckoutHandler: checkoutHandler,
		AuthMiddleware:  authMiddleware,
	})
}
