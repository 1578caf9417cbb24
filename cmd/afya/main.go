package main

import (
	"context"
	"log/slog"
	"os"

	"afya/config"
	"afya/internal/delivery"
	"afya/internal/delivery/http"
	"afya/internal/delivery/http/middleware"
	"afya/internal/delivery/http/router/handler"
	"afya/internal/domain/service"
	"afya/internal/infra/cache"
	logs "afya/internal/infra/log"
	"afya/internal/infra/persistence"
	"afya/internal/infra/persistence/postgres"
	"afya/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		postgres.NewStoreClient,
		newQueryCache,
	)
}

func newQueryCache(logger *slog.Logger) service.QueryCache {
	return cache.NewMemoryQueryCache(logger)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.NewPatientRepository,
			persistence.NewStaffRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthzService,
			impl.NewPatientService,
			impl.NewAdminService,
			impl.NewDashboardService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPatientHandler,
			handler.NewAdminHandler,
			handler.NewDashboardHandler,
			handler.NewAccountHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
