package components

import (
	"puente-core/internal/handler"
	"puente-core/internal/handler/api"
	"puente-core/internal/handler/middleware"
	"puente-core/internal/pkg/config"
	"puente-core/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewProductHandler,
		api.NewFinanceHandler,
		api.NewCheckoutHandler,
		func(products *api.ProductHandler, finance *api.FinanceHandler, checkout *api.CheckoutHandler) handler.Handlers {
			return handler.Handlers{Products: products, Finance: finance, Checkout: checkout}
		},
		func(cfg config.Config, tokens *jwt.Service) *middleware.ServiceAuthMiddleware {
			return middleware.NewServiceAuthMiddleware(cfg.Gateway.SharedSecret, tokens)
		},
	),
	fx.Invoke(handler.NewRouter),
)
