package bootstrap

import (
	"context"
	"log/slog"

	"puente-core/internal/pkg/config"
	"puente-core/internal/pkg/tracing"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Invoke(StartTracing),
)

// StartTracing installs the Jaeger provider when enabled; otherwise spans go to the global no-op provider.
func StartTracing(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	if !cfg.Tracing.Enabled {
		return nil
	}

	tp, err := tracing.InitTracerProvider(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := tp.Shutdown(ctx); err != nil {
				logger.Warn("tracer shutdown failed", "error", err)
			}
			return nil
		},
	})
	return nil
}
