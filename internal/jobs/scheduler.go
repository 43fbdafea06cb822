package jobs

import (
	"context"
	"fmt"
	"github.com/go-co-op/gocron/v2"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/jobs/interfaces"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/providers"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/services"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"sync"
)

const (
	JobRefresh = "alerts-refresh"
	JobExport  = "acknowledged-export"
)

type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	service  services.AlertsServiceInterface
	exporter Exporter
	metrics  providers.MetricsProviderInterface
	cron     gocron.Scheduler
	ctx      context.Context
	cancel   context.CancelFunc
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() error {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	s.cron = cron
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if interval := s.config.Source.RefreshInterval; interval > 0 {
		_, err = s.cron.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(s.refresh),
			gocron.WithName(JobRefresh),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("register %s job: %w", JobRefresh, err)
		}
		s.logger.Infof(providers.TypeApp, "Refreshing alerts every %s", interval)
	}

	if s.config.Export.Enabled && s.config.Export.Interval > 0 {
		_, err = s.cron.NewJob(
			gocron.DurationJob(s.config.Export.Interval),
			gocron.NewTask(s.export),
			gocron.WithName(JobExport),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("register %s job: %w", JobExport, err)
		}
		s.logger.Infof(providers.TypeApp, "Exporting acknowledged alerts every %s", s.config.Export.Interval)
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		if err := s.cron.Shutdown(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while stopping scheduler: %s", err)
		}
	}
}

// Restore loads rows and acknowledgments into the controller.
func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.service.Start(context.Background())
	if s.service.State() != services.StateReady {
		return fmt.Errorf("alerts controller stuck in %s", s.service.State())
	}
	return nil
}

// Persist pushes a final export of the acknowledged data.
func (s *Scheduler) Persist() error {
	if !s.config.Export.Enabled {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Exporting acknowledged alerts...")
	return s.runExport(context.Background())
}

func (s *Scheduler) refresh() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.service.Refresh(s.ctx)
	s.metrics.IncJobRuns(JobRefresh, err == nil)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while refreshing alerts: %s", err)
		return
	}
	s.logger.Debugf(providers.TypeApp, "Alerts refreshed")
}

func (s *Scheduler) export() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	_ = s.runExport(s.ctx)
}

func (s *Scheduler) runExport(ctx context.Context) error {
	name, err := s.exporter.Export(ctx, s.service.AcknowledgedExport())
	s.metrics.IncJobRuns(JobExport, err == nil)
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while exporting acknowledged alerts: %s", err)
		return err
	}
	s.logger.Infof(providers.TypeStore, "Exported acknowledged alerts to %s", name)
	return nil
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	service services.AlertsServiceInterface,
	exporter Exporter,
	metrics providers.MetricsProviderInterface,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		service:  service,
		exporter: exporter,
		metrics:  metrics,
	}
}
