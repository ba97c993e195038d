package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/warehouse/internal/config"
	"github.com/mamadbah2/warehouse/internal/domain/models"
	"github.com/mamadbah2/warehouse/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// Reporter is the reporting surface used by the daily job.
type Reporter interface {
	Summary(ctx context.Context, period models.Period) (string, error)
	SyncWarehouseSheet(ctx context.Context, period models.Period, sink reporting.SheetSink) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	reporter Reporter
	sink     reporting.SheetSink
	now      func() time.Time
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. sink may be nil, in which
// case the job only logs the month summary.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, sink reporting.SheetSink, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.CronSchedule,
		reporter: reporter,
		sink:     sink,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Start registers the daily report job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runDailyReport); err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
	}
}

// RunOnce mirrors the current month into the spreadsheet when one is
// configured and logs the month summary. A failed sync is logged and
// returned but does not suppress the summary.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	period := models.CurrentPeriod(s.now())

	var syncErr error
	if s.sink != nil {
		if err := s.reporter.SyncWarehouseSheet(ctx, period, s.sink); err != nil {
			s.logger.Error("warehouse sheet sync failed", zap.String("month", period.Key()), zap.Error(err))
			syncErr = fmt.Errorf("sync warehouse sheet: %w", err)
		}
	}

	summary, err := s.reporter.Summary(ctx, period)
	if err != nil {
		return errors.Join(syncErr, fmt.Errorf("build summary: %w", err))
	}

	s.logger.Info("daily report", zap.String("month", period.Key()), zap.String("summary", summary))
	return syncErr
}
