//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"mindmate/internal"
	"mindmate/internal/controllers"
	"mindmate/internal/gateway"
	"mindmate/internal/monitor"
	"mindmate/internal/providers"
	"mindmate/internal/services"
	"mindmate/internal/structures"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewInstrumentedCacheProvider,

	gateway.NewGateway,
	services.NewOperationService,
	services.NewMoodWorkflow,
	services.NewInsightAggregator,
	services.NewDailyView,
	services.NewWeeklyView,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		monitor.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitClient(cfg *structures.CliFlags) (*internal.Client, error) {

	wire.Build(
		coreSet,
		internal.NewClient,
	)

	return nil, nil
}
