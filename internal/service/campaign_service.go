package service

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/models"
	"github.com/dialdesk/dialdesk/internal/repository"
)

type campaignService struct {
	cfg      *config.Config
	repo     repository.Repository
	messages MessageService
	logger   *zap.Logger
}

func NewCampaignService(cfg *config.Config, repo repository.Repository, messages MessageService, logger *zap.Logger) CampaignService {
	return &campaignService{
		cfg:      cfg,
		repo:     repo,
		messages: messages,
		logger:   logger,
	}
}

func (s *campaignService) List() (*api.CampaignListResponse, error) {
	if s.cfg.DemoMode {
		return &api.CampaignListResponse{Data: sampleCampaigns()}, nil
	}

	campaigns, err := s.repo.Campaign().List()
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return &api.CampaignListResponse{Data: campaigns}, nil
}

func (s *campaignService) Create(req api.CreateCampaignRequest) (*models.Campaign, error) {
	if s.cfg.DemoMode {
		return nil, ErrNotConfigured
	}

	filter := req.ContactFilter
	if filter == "" {
		filter = models.AudienceAll
	}

	campaign := &models.Campaign{
		Name:            req.Name,
		Description:     nullString(req.Description),
		MessageTemplate: req.MessageTemplate,
		ContactFilter:   nullString(filter),
		SendTime:        nullString(req.SendTime),
		Status:          models.CampaignStatusDraft,
	}
	if req.NextSendDate != nil {
		campaign.NextSendDate = sql.NullTime{Time: *req.NextSendDate, Valid: true}
	}

	// Snapshot the audience size at creation so the UI shows reach before
	// the first send.
	audience, err := s.repo.Contact().ListByAudience(filter)
	if err != nil {
		s.logger.Warn("Failed to size campaign audience", zap.Error(err))
	} else {
		campaign.TotalContacts = len(audience)
	}

	if err := s.repo.Campaign().Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.logger.Info("Campaign created",
		zap.String("campaignID", campaign.ID),
		zap.String("filter", filter))

	return campaign, nil
}

func (s *campaignService) UpdateStatus(id, status string) error {
	if s.cfg.DemoMode {
		return ErrNotConfigured
	}

	if err := s.repo.Campaign().UpdateStatus(id, status); err != nil {
		return err
	}

	s.logger.Info("Campaign status updated",
		zap.String("campaignID", id),
		zap.String("status", status))

	return nil
}

// Execute sends a campaign's template to its audience right now,
// regardless of schedule.
func (s *campaignService) Execute(ctx context.Context, id string) (*api.SendReport, error) {
	if s.cfg.DemoMode {
		return nil, ErrNotConfigured
	}

	campaign, err := s.repo.Campaign().GetByID(id)
	if err != nil {
		return nil, err
	}

	audience := models.AudienceAll
	if campaign.ContactFilter.Valid && campaign.ContactFilter.String != "" {
		audience = campaign.ContactFilter.String
	}

	contacts, err := s.repo.Contact().ListByAudience(audience)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve campaign audience: %w", err)
	}
	if len(contacts) == 0 {
		return nil, ErrNoRecipients
	}

	report, err := s.messages.SendBatch(ctx, contacts, campaign.MessageTemplate, campaign.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Campaign executed",
		zap.String("campaignID", campaign.ID),
		zap.Int("sent", report.SentCount),
		zap.Int("failed", report.FailedCount))

	return report, nil
}

// DispatchDue runs every Active campaign whose next_send_date has passed
// and clears its schedule so it does not fire again. One campaign failing
// does not block the rest of the batch.
func (s *campaignService) DispatchDue(ctx context.Context) error {
	if s.cfg.DemoMode {
		return nil
	}

	due, err := s.repo.Campaign().ListDue(s.cfg.Scheduler.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list due campaigns: %w", err)
	}

	for _, campaign := range due {
		if _, err := s.Execute(ctx, campaign.ID); err != nil {
			s.logger.Error("Scheduled campaign failed",
				zap.String("campaignID", campaign.ID),
				zap.Error(err))
			continue
		}

		if err := s.repo.Campaign().ClearSchedule(campaign.ID); err != nil {
			s.logger.Error("Failed to clear campaign schedule",
				zap.String("campaignID", campaign.ID),
				zap.Error(err))
		}
	}

	return nil
}
