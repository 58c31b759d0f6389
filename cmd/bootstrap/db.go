package bootstrap

import (
	"context"

	"puente-core/internal/infra/db"
	"puente-core/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool); err != nil {
		pool.Close()
		return nil, err
	}

	lc.Append(fx.StopHook(func(context.Context) error {
		pool.Close()
		return nil
	}))
	return pool, nil
}
