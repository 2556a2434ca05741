package service

import (
	"context"
	"fmt"

	"stock-portfolio-service/pkg/logger"

	"github.com/robfig/cron/v3"
)

// PriceRefreshScheduler runs the ledger price refresh on a cron schedule.
type PriceRefreshScheduler interface {
	Start(ctx context.Context)
	RunOnce(ctx context.Context)
}

// NewPriceRefreshScheduler parses cronExpr as a 5 field cron expression or descriptor such as @hourly.
func NewPriceRefreshScheduler(portfolioService PortfolioService, cronExpr string, logger *logger.Logger) (PriceRefreshScheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh cron %q: %w", cronExpr, err)
	}
	return &priceRefreshScheduler{
		portfolioService: portfolioService,
		cronExpr:         cronExpr,
		schedule:         schedule,
		logger:           logger,
	}, nil
}

type priceRefreshScheduler struct {
	portfolioService PortfolioService
	cronExpr         string
	schedule         cron.Schedule
	logger           *logger.Logger
}

// Start blocks until ctx is done. Runs never overlap.
func (s *priceRefreshScheduler) Start(ctx context.Context) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(s.schedule, cron.FuncJob(func() { s.RunOnce(ctx) }))
	c.Start()
	s.logger.Info("Price refresh scheduler started", logger.StringField("cron", s.cronExpr))

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("Price refresh scheduler stopping")
}

func (s *priceRefreshScheduler) RunOnce(ctx context.Context) {
	resp, err := s.portfolioService.RefreshPrices(ctx)
	if err != nil {
		s.logger.Error("Scheduled price refresh failed", logger.ErrorField(err))
		return
	}
	s.logger.Info("Scheduled price refresh done", logger.IntField("updated", resp.Count))
}
