package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"puente-core/internal/handler/api"
	"puente-core/internal/handler/middleware"
	"puente-core/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Products *api.ProductHandler
	Finance  *api.FinanceHandler
	Checkout *api.CheckoutHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, handlers Handlers, serviceAuth *middleware.ServiceAuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, serviceAuth)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogging(logger))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, serviceAuth *middleware.ServiceAuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(serviceAuth.RequireGateway())
	{
		addRoutes(apiGroup.Group("/products"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Products.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Products.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Products.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: h.Products.Update},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Products.Delete},
			{Method: http.MethodPost, Path: "/stock/reserve", Handler: h.Products.Reserve},
			{Method: http.MethodPost, Path: "/stock/release", Handler: h.Products.Release},
			{Method: http.MethodPost, Path: "/stock/confirm", Handler: h.Products.Confirm},
		})

		addRoutes(apiGroup.Group("/orders"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Finance.CreateOrder},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Finance.GetOrder},
			{Method: http.MethodPost, Path: "/:id/compensate", Handler: h.Finance.CompensateOrder},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Finance.CancelOrder},
			{Method: http.MethodPost, Path: "/:id/paid", Handler: h.Finance.MarkPaid},
			{Method: http.MethodPost, Path: "/:id/payment", Handler: h.Finance.GeneratePayment},
		})

		addRoutes(apiGroup.Group("/ledger"), []route{
			{Method: http.MethodPost, Path: "/deposits", Handler: h.Finance.AddFunds},
			{Method: http.MethodGet, Path: "/users/:userId/entries", Handler: h.Finance.ListLedger},
			{Method: http.MethodGet, Path: "/users/:userId/balance", Handler: h.Finance.Balance},
		})

		addRoutes(apiGroup.Group("/checkout"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Checkout.Start},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Checkout.Get},
			{Method: http.MethodPost, Path: "/:id/payment-outcome", Handler: h.Checkout.PaymentOutcome},
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
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
