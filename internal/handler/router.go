package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"booking-checkout/internal/handler/api"
	"booking-checkout/internal/handler/middleware"
	"booking-checkout/internal/pkg/config"
	"booking-checkout/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type RouterDeps struct {
	Config          config.Config
	Logger          *middleware.Logger
	Metrics         *metrics.CheckoutMetrics
	Gatherer        prometheus.Gatherer
	CheckoutHandler *api.CheckoutHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func NewRouter(engine *gin.Engine, deps RouterDeps) {
	setupMiddleware(engine, deps)
	setupRoutes(engine, deps)
}

func setupMiddleware(engine *gin.Engine, deps RouterDeps) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(deps.Config.CORS))
	engine.Use(deps.Logger.LoggingMiddleware())
	engine.Use(middleware.MetricsMiddleware(deps.Metrics))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, deps RouterDeps) {
	engine.GET("/health", healthCheck)
	if deps.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := deps.CheckoutHandler
	apiGroup := engine.Group("/api")
	{
		checkoutGroup := apiGroup.Group("/checkout")
		checkoutGroup.Use(deps.AuthMiddleware.RequireAuth())
		addRoutes(checkoutGroup, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Get},
			{Method: http.MethodDelete, Path: "", Handler: h.Discard},
			{Method: http.MethodPatch, Path: "/draft", Handler: h.PatchDraft},
			{Method: http.MethodPost, Path: "/next", Handler: h.Next},
			{Method: http.MethodPost, Path: "/back", Handler: h.Back},
			{Method: http.MethodPost, Path: "/promo", Handler: h.ApplyPromo},
			{Method: http.MethodDelete, Path: "/promo", Handler: h.RemovePromo},
			{Method: http.MethodPost, Path: "/submit", Handler: h.Submit},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		g.Handle(r.Method, r.Path, r.Handler)
	}
}
