package bootstrap

import (
	"puente-core/internal/pkg/config"
	"puente-core/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// The gateway signs service tokens with the same secret it forwards in X-Gateway-Secret.
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.Gateway.SharedSecret, cfg.Gateway.TokenTTL)
}
