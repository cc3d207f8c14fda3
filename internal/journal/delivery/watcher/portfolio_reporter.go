package watcher

import (
	"context"
	"fmt"
	"time"

	"trading-journal/internal/entity"
	"trading-journal/internal/journal/service"
	"trading-journal/pkg/apperror"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/telegram"
	"trading-journal/pkg/utils"

	"github.com/robfig/cron/v3"
)

// PortfolioReporter sends the portfolio summary with open positions to
// Telegram on a cron schedule.
type PortfolioReporter struct {
	portfolio service.PortfolioService
	journal   service.JournalService
	client    telegram.Notifier
	logger    *logger.Logger
	cron      *cron.Cron
}

// NewPortfolioReporter registers the report job for cronExpr.
func NewPortfolioReporter(
	cronExpr string,
	portfolio service.PortfolioService,
	journal service.JournalService,
	client telegram.Notifier,
	log *logger.Logger,
) (*PortfolioReporter, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, apperror.NewValidationError("report_cron", fmt.Sprintf("invalid cron expression %q: %v", cronExpr, err))
	}

	r := &PortfolioReporter{
		portfolio: portfolio,
		journal:   journal,
		client:    client,
		logger:    log,
		cron:      cron.New(cron.WithLocation(utils.LocationWIB())),
	}
	r.cron.Schedule(schedule, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Send(ctx); err != nil {
			r.logger.Error("Failed to send portfolio report", logger.ErrorField(err))
		}
	}))
	return r, nil
}

// Start runs the cron loop until ctx is cancelled.
func (r *PortfolioReporter) Start(ctx context.Context) {
	r.cron.Start()
	r.logger.Info("Portfolio reporter started")
	<-ctx.Done()
	<-r.cron.Stop().Done()
}

// Send formats and delivers the current summary.
func (r *PortfolioReporter) Send(ctx context.Context) error {
	open := r.journal.Positions(ctx, entity.PositionStatusOpen)
	text := telegram.FormatPortfolioSummary(r.portfolio.Summary(), open)
	return r.client.SendMessage(ctx, text)
}
