package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/scheduler"
)

type schedulerService struct {
	scheduler *scheduler.Scheduler
	campaigns CampaignService
	logger    *zap.Logger
}

// NewSchedulerService builds the background dispatcher that fires due
// campaigns on a fixed interval.
func NewSchedulerService(
	cfg *config.Config,
	campaigns CampaignService,
	logger *zap.Logger,
) SchedulerService {
	interval := time.Duration(cfg.Scheduler.IntervalMinutes) * time.Minute

	svc := &schedulerService{
		campaigns: campaigns,
		logger:    logger,
	}

	svc.scheduler = scheduler.New(logger, interval, svc.dispatchDueCampaigns)
	return svc
}

func (s *schedulerService) Start() error {
	ctx := context.Background()
	return s.scheduler.Start(ctx)
}

func (s *schedulerService) Stop() error {
	return s.scheduler.Stop()
}

func (s *schedulerService) IsRunning() bool {
	return s.scheduler.IsRunning()
}

func (s *schedulerService) dispatchDueCampaigns(ctx context.Context) error {
	return s.campaigns.DispatchDue(ctx)
}
