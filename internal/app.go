package internal

import (
	"context"
	"fmt"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/controllers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/jobs/interfaces"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	WebServer *http.Server
}

// newServeMux serves health and metrics directly; only the alerts API is instrumented.
func newServeMux(health *controllers.HealthController, conf *structures.Config, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *http.ServeMux {
	alertsAPI := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		alertsAPI.Handle(route.Url, route.Handler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", health.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", providers.MetricsMiddleware(metrics, alertsAPI))
	return mux
}

// NewApp loads the alerts, starts the refresh and export jobs, then serves until a signal arrives.
// On the way out it pushes one last acknowledged export.
func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s, loading alert rows and acknowledgments", conf.AppName)
	if err := scheduler.Restore(); err != nil {
		// health keeps answering 503 until a refresh succeeds
		logger.Errorf(providers.TypeApp, "Alerts not loaded at startup: %s", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      newServeMux(healthController, conf, router, metrics),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	if err := scheduler.Init(); err != nil {
		return nil, fmt.Errorf("refresh and export jobs: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Alerts dashboard API on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Infof(providers.TypeApp, "Received %s, stopping alerts jobs", sig)
	case err := <-serverErr:
		scheduler.Stop()
		return nil, fmt.Errorf("alerts API: %w", err)
	}
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}

	if err := scheduler.Persist(); err != nil {
		return nil, fmt.Errorf("final acknowledged export: %w", err)
	}
	logger.Infof(providers.TypeApp, "Alerts dashboard stopped")
	return app, nil
}
