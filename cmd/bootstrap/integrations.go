package bootstrap

import (
	"context"
	"log/slog"

	"puente-core/internal/infra/cache"
	"puente-core/internal/infra/messaging"
	"puente-core/internal/infra/payment"
	"puente-core/internal/pkg/config"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/queries"
	"puente-core/internal/usecase/workers"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// IntegrationsModule provides the adapters to systems outside Postgres.
var IntegrationsModule = fx.Module("integrations",
	fx.Provide(
		NewProductCache,
		NewEventPublisher,
		fx.Annotate(
			payment.NewMercadoPagoClient,
			fx.As(new(commands.PaymentProvider)),
		),
		func(cfg config.Config) config.PaymentConfig {
			return cfg.Payment
		},
	),
)

func NewProductCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) queries.ProductCache {
	if cfg.Redis.Addr == "" {
		logger.Info("product cache disabled")
		return cache.NoopProductCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// a cold cache is not fatal
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis unreachable, product reads will miss", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisProductCache(client, cfg.Redis.ProductTTL)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) workers.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info("kafka brokers not configured, outbox events go to the log")
		return messaging.NewLogPublisher()
	}

	publisher := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
