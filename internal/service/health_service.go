package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/repository"
)

type healthService struct {
	cfg              *config.Config
	repo             repository.Repository
	redisClient      *redis.Client
	schedulerService SchedulerService
	messageService   MessageService
}

func NewHealthService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	schedulerService SchedulerService,
	messageService MessageService,
) HealthService {
	return &healthService{
		cfg:              cfg,
		repo:             repo,
		redisClient:      redisClient,
		schedulerService: schedulerService,
		messageService:   messageService,
	}
}

func (s *healthService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status: api.Healthy,
	}

	if s.schedulerService.IsRunning() {
		status.SchedulerStatus = api.SchedulerRunning
	} else {
		status.SchedulerStatus = api.SchedulerStopped
	}

	status.DatabaseStatus = s.checkDatabaseHealth()
	status.RedisStatus = s.checkRedisHealth()

	state, requests, failures := s.messageService.GetCircuitBreakerStatus()
	status.CircuitBreakerState = state
	if requests > 0 {
		failureRate := float64(failures) / float64(requests) * 100
		status.CircuitBreakerStatus = fmt.Sprintf("Requests: %d, Failures: %d (%.1f%%)", requests, failures, failureRate)
	} else {
		status.CircuitBreakerStatus = "No requests yet"
	}

	// Demo mode runs without a store on purpose; report degraded, not dead.
	if s.cfg.DemoMode {
		status.Status = api.Degraded
		return status
	}

	if status.DatabaseStatus != api.Connected || status.RedisStatus == api.Disconnected {
		status.Status = api.Unhealthy
	}

	if state == api.Open {
		status.Status = api.Degraded
	}

	return status
}

func (s *healthService) checkDatabaseHealth() api.ComponentStatus {
	if s.cfg.DemoMode || s.repo == nil {
		return api.NotConfigured
	}
	if err := s.repo.Ping(); err != nil {
		return api.Disconnected
	}
	return api.Connected
}

func (s *healthService) checkRedisHealth() api.ComponentStatus {
	if s.redisClient == nil {
		return api.NotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return api.Disconnected
	}

	return api.Connected
}
