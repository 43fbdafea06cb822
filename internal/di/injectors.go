//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/acknowledgment"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/controllers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/datasource"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/jobs"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/services"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/storage"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewHTTPClientProvider,
		providers.NewPostgresProvider,
		providers.NewRedisProvider,
		providers.NewObjectStorageProvider,

		storage.NewKeyValueProvider,
		datasource.NewSource,
		acknowledgment.NewStore,
		services.NewAlertsService,
		jobs.NewExporter,
		jobs.NewScheduler,
		controllers.NewAlertsController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
