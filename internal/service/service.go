package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/gateway"
	"github.com/dialdesk/dialdesk/internal/repository"
)

type Service struct {
	Contact   ContactService
	Message   MessageService
	Campaign  CampaignService
	Call      CallService
	Scheduler SchedulerService
	Health    HealthService
}

// NewService wires the service layer. In demo mode repo and redisClient
// may be nil; every service guards on cfg.DemoMode before touching them.
func NewService(
	cfg *config.Config,
	repo repository.Repository,
	gw gateway.Gateway,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	messageService := NewMessageService(cfg, repo, gw, redisClient, logger)
	campaignService := NewCampaignService(cfg, repo, messageService, logger)
	schedulerService := NewSchedulerService(cfg, campaignService, logger)
	healthService := NewHealthService(cfg, repo, redisClient, schedulerService, messageService)

	return &Service{
		Contact:   NewContactService(cfg, repo, logger),
		Message:   messageService,
		Campaign:  campaignService,
		Call:      NewCallService(cfg, repo, logger),
		Scheduler: schedulerService,
		Health:    healthService,
	}
}
