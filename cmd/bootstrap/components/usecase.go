package components

import (
	"puente-core/internal/pkg/clock"
	"puente-core/internal/pkg/config"
	"puente-core/internal/usecase/commands"
	"puente-core/internal/usecase/queries"
	"puente-core/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) commands.SagaSettings {
		return commands.SagaSettings{
			PaymentTimeout: cfg.Saga.PaymentTimeout,
			IdempotencyTTL: cfg.Saga.IdempotencyTTL,
			BatchSize:      cfg.Saga.SweepBatchSize,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewInventoryUseCase,
		commands.NewCheckoutUseCase,
		func(uow shared.UnitOfWork, payments commands.PaymentProvider, clk clock.Clock, cfg config.Config) commands.FinanceCommands {
			return commands.NewFinanceUseCase(uow, payments, clk, cfg.Server.IsProduction())
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewProductQueries,
		queries.NewFinanceQueries,
		queries.NewCheckoutQueries,
	),
)
