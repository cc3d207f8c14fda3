package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trading-journal/internal/journal/service"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RetryScheduler periodically drains both pending queues while online.
type RetryScheduler struct {
	conn      service.ConnectivityChecker
	sync      service.SyncService
	portfolio service.PortfolioService
	logger    *logger.Logger
	timeout   time.Duration
	cron      *cron.Cron
}

// NewRetryScheduler parses cronExpr (five-field cron or a descriptor such as
// "@every 5m") and registers the retry job.
func NewRetryScheduler(
	cronExpr string,
	timeout time.Duration,
	conn service.ConnectivityChecker,
	syncService service.SyncService,
	portfolio service.PortfolioService,
	log *logger.Logger,
) (*RetryScheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, apperror.NewValidationError("retry_cron", fmt.Sprintf("invalid cron expression %q: %v", cronExpr, err))
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := &RetryScheduler{
		conn:      conn,
		sync:      syncService,
		portfolio: portfolio,
		logger:    log,
		timeout:   timeout,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	s.cron.Schedule(schedule, cron.FuncJob(func() { s.RunOnce(context.Background()) }))
	return s, nil
}

// Start runs the cron loop until ctx is cancelled.
func (s *RetryScheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("Retry scheduler started")
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("Retry scheduler stopped")
}

// RunOnce drains the trade queue then the portfolio queue. It returns the
// number of trade records pushed.
func (s *RetryScheduler) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if !s.conn.IsOnline(ctx) {
		s.logger.Debug("Skipping pending retry while offline")
		return 0
	}

	synced, err := s.sync.ProcessPendingSync(ctx)
	if err != nil {
		s.logger.Error("Pending trade retry failed", logger.ErrorField(err))
	} else if synced > 0 {
		s.logger.Info("Pending trades synced", logger.IntField("count", synced))
	}

	if s.portfolio != nil {
		if _, err := s.portfolio.ProcessPendingPortfolioSync(ctx); err != nil && !errors.Is(err, apperror.ErrOffline) {
			s.logger.Error("Pending portfolio retry failed", logger.ErrorField(err))
		}
	}
	return synced
}
