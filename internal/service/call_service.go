package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/models"
	"github.com/dialdesk/dialdesk/internal/repository"
)

const callLogLimit = 100

type callService struct {
	cfg    *config.Config
	repo   repository.Repository
	logger *zap.Logger
}

func NewCallService(cfg *config.Config, repo repository.Repository, logger *zap.Logger) CallService {
	return &callService{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
	}
}

func (s *callService) List() (*api.CallLogListResponse, error) {
	if s.cfg.DemoMode {
		return &api.CallLogListResponse{Data: sampleCallLogs()}, nil
	}

	logs, err := s.repo.CallLog().List(callLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list call logs: %w", err)
	}

	return &api.CallLogListResponse{Data: logs}, nil
}

func (s *callService) Create(req api.CreateCallLogRequest) (*models.CallLog, error) {
	if s.cfg.DemoMode {
		return nil, ErrNotConfigured
	}

	log := &models.CallLog{
		ContactID: req.ContactID,
		Duration:  req.Duration,
		Status:    req.Status,
		Notes:     nullString(req.Notes),
	}

	if err := s.repo.CallLog().Create(log); err != nil {
		return nil, fmt.Errorf("failed to create call log: %w", err)
	}

	// A logged call counts as an outreach touch.
	if err := s.repo.Contact().TouchLastContacted([]string{req.ContactID}); err != nil {
		s.logger.Warn("Failed to update last_contacted",
			zap.String("contactID", req.ContactID),
			zap.Error(err))
	}

	return log, nil
}
