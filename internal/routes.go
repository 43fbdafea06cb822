package internal

import (
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/controllers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"net/http"
)

func InitRoutes(alertsController *controllers.AlertsController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/alerts", http.HandlerFunc(alertsController.GetAlerts))
	routers.Post("/alerts/acknowledge", http.HandlerFunc(alertsController.Acknowledge))
	routers.Post("/alerts/refresh", http.HandlerFunc(alertsController.Refresh))
	routers.Get("/filter", http.HandlerFunc(alertsController.GetFilter))
	routers.Post("/filter", http.HandlerFunc(alertsController.SetFilter))
	routers.Post("/filters/external", http.HandlerFunc(alertsController.ExternalFilters))
	routers.Get("/notice", http.HandlerFunc(alertsController.GetNotice))
	routers.Get("/acknowledged/export", http.HandlerFunc(alertsController.ExportAcknowledged))
	return routers
}
