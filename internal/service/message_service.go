package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/gateway"
	"github.com/dialdesk/dialdesk/internal/models"
	"github.com/dialdesk/dialdesk/internal/phone"
	"github.com/dialdesk/dialdesk/internal/repository"
)

const namePlaceholder = "{{name}}"

type messageService struct {
	cfg            *config.Config
	repo           repository.Repository
	gateway        gateway.Gateway
	redisClient    *redis.Client
	logger         *zap.Logger
	circuitBreaker *CircuitBreaker
}

func NewMessageService(
	cfg *config.Config,
	repo repository.Repository,
	gw gateway.Gateway,
	redisClient *redis.Client,
	logger *zap.Logger,
) MessageService {
	cb := NewCircuitBreaker(&cfg.Gateway.CircuitBreaker, logger)

	return &messageService{
		cfg:            cfg,
		repo:           repo,
		gateway:        gw,
		redisClient:    redisClient,
		logger:         logger,
		circuitBreaker: cb,
	}
}

// Personalize substitutes the {{name}} placeholder with the contact's name.
func Personalize(template, name string) string {
	return strings.ReplaceAll(template, namePlaceholder, name)
}

func (s *messageService) List(filter repository.MessageFilter) (*api.MessageListResponse, error) {
	if s.cfg.DemoMode {
		return &api.MessageListResponse{
			Data:       sampleMessages(),
			Pagination: api.Pagination{Limit: filter.Limit, Offset: filter.Offset, Total: len(sampleMessages())},
		}, nil
	}

	messages, total, err := s.repo.Message().List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return &api.MessageListResponse{
		Data:       messages,
		Pagination: api.Pagination{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Send resolves the requested contacts and runs the batch send.
func (s *messageService) Send(ctx context.Context, req api.SendMessagesRequest) (*api.SendReport, error) {
	if s.cfg.DemoMode || !s.gateway.Enabled() {
		return nil, ErrNotConfigured
	}

	contacts, err := s.repo.Contact().GetByIDs(req.ContactIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}
	if len(contacts) == 0 {
		return nil, ErrNoRecipients
	}

	return s.SendBatch(ctx, contacts, req.Content, req.CampaignID)
}

// SendBatch sends the personalized template to each contact sequentially.
// A failed recipient never aborts the batch: it is recorded as a Failed row
// and the loop continues. All rows are written in one insert afterwards,
// then the successfully reached contacts get a single batched
// last_contacted bump.
func (s *messageService) SendBatch(ctx context.Context, contacts []*models.Contact, content, campaignID string) (*api.SendReport, error) {
	now := time.Now()
	records := make([]*models.Message, 0, len(contacts))
	results := make([]api.SendResult, 0, len(contacts))
	var reached []string

	for _, contact := range contacts {
		personalized := Personalize(content, contact.Name)

		var sendResult *gateway.SendResult
		err := s.circuitBreaker.Execute(ctx, func() error {
			var sendErr error
			sendResult, sendErr = s.gateway.Send(ctx, contact.Phone, personalized)
			return sendErr
		})

		record := &models.Message{
			ContactID: sql.NullString{String: contact.ID, Valid: true},
			Content:   personalized,
			Direction: models.DirectionOutbound,
			SentAt:    sql.NullTime{Time: now, Valid: true},
		}
		if campaignID != "" {
			record.CampaignID = sql.NullString{String: campaignID, Valid: true}
		}

		result := api.SendResult{
			ContactID:   contact.ID,
			ContactName: contact.Name,
			Phone:       contact.Phone,
		}

		if err != nil {
			record.Status = models.MessageStatusFailed
			record.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
			result.Error = err.Error()

			s.logger.Error("Failed to send message",
				zap.String("contactID", contact.ID),
				zap.Error(err))
		} else {
			record.Status = models.MessageStatusSent
			record.ProviderSID = sql.NullString{String: sendResult.SID, Valid: true}
			result.Success = true
			result.MessageSID = sendResult.SID
			reached = append(reached, contact.ID)

			s.cacheProviderSID(sendResult.SID, contact.ID)
		}

		records = append(records, record)
		results = append(results, result)
	}

	// The sends already happened; a failed log write must not turn the
	// whole batch into an error.
	if err := s.repo.Message().BulkInsert(records); err != nil {
		s.logger.Error("Failed to save message records", zap.Error(err))
	}

	if len(reached) > 0 {
		if err := s.repo.Contact().TouchLastContacted(reached); err != nil {
			s.logger.Warn("Failed to update last_contacted", zap.Error(err))
		}
	}

	sent := len(reached)
	failed := len(results) - sent

	message := fmt.Sprintf("Sent %d messages successfully", sent)
	if failed > 0 {
		message += fmt.Sprintf(", %d failed", failed)
	}

	return &api.SendReport{
		Success:     true,
		Message:     message,
		SentCount:   sent,
		FailedCount: failed,
		Results:     results,
	}, nil
}

// cacheProviderSID remembers which internal contact a provider sid belongs
// to. Best effort: a cache failure is logged and forgotten.
func (s *messageService) cacheProviderSID(sid, contactID string) {
	if s.redisClient == nil || sid == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("message:%s", sid)
	value := fmt.Sprintf("%s:%s", contactID, time.Now().Format(time.RFC3339))
	if err := s.redisClient.Set(ctx, key, value, 24*time.Hour).Err(); err != nil {
		s.logger.Warn("Failed to cache provider sid",
			zap.String("sid", sid),
			zap.Error(err))
	}
}

func (s *messageService) Thread(contactID string) (*api.ThreadResponse, error) {
	if s.cfg.DemoMode {
		return &api.ThreadResponse{Data: sampleThread(contactID)}, nil
	}

	messages, err := s.repo.Message().ListByContact(contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}

	return &api.ThreadResponse{Data: messages}, nil
}

func (s *messageService) Conversations(search string) (*api.ConversationListResponse, error) {
	if s.cfg.DemoMode {
		return &api.ConversationListResponse{Data: sampleConversations()}, nil
	}

	conversations, err := s.repo.Message().Conversations(search)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversations: %w", err)
	}

	return &api.ConversationListResponse{Data: conversations}, nil
}

// IngestInbound records a provider-originated SMS: resolve the sender to a
// contact by phone suffix, auto-creating an Inbound lead for unknown
// numbers, then insert the message and bump last_contacted. The two writes
// are not transactional; a failed insert loses the message and is the
// caller's to log.
func (s *messageService) IngestInbound(in InboundMessage) error {
	if s.cfg.DemoMode {
		return ErrNotConfigured
	}

	normalized := phone.Normalize(in.From)
	suffix := phone.Suffix(in.From)

	contact, err := s.repo.Contact().GetByPhoneSuffix(suffix)
	if errors.Is(err, repository.ErrNotFound) {
		contact = &models.Contact{
			Name:   "Contact " + normalized,
			Phone:  normalized,
			Status: models.ContactStatusLead,
			Tags:   []string{models.TagInbound},
		}
		if createErr := s.repo.Contact().Create(contact); createErr != nil {
			// Keep the message even when the contact write fails.
			s.logger.Error("Failed to auto-create contact",
				zap.String("phone", normalized),
				zap.Error(createErr))
			contact = nil
		}
	} else if err != nil {
		s.logger.Error("Contact lookup failed", zap.String("suffix", suffix), zap.Error(err))
		contact = nil
	}

	now := time.Now()
	message := &models.Message{
		Content:     in.Body,
		Direction:   models.DirectionInbound,
		Status:      models.MessageStatusReceived,
		SentAt:      sql.NullTime{Time: now, Valid: true},
		DeliveredAt: sql.NullTime{Time: now, Valid: true},
	}
	if contact != nil {
		message.ContactID = sql.NullString{String: contact.ID, Valid: true}
	}
	if in.MessageSID != "" {
		message.ProviderSID = sql.NullString{String: in.MessageSID, Valid: true}
	}

	if err := s.repo.Message().Create(message); err != nil {
		return fmt.Errorf("failed to save inbound message: %w", err)
	}

	if contact != nil {
		if err := s.repo.Contact().TouchLastContacted([]string{contact.ID}); err != nil {
			s.logger.Warn("Failed to update last_contacted",
				zap.String("contactID", contact.ID),
				zap.Error(err))
		}
	}

	s.logger.Info("Inbound message recorded",
		zap.String("from", normalized),
		zap.String("sid", in.MessageSID))

	return nil
}

// ApplyDeliveryStatus updates the message matching a delivery receipt's
// provider sid. An unknown sid is a no-op, not an error.
func (s *messageService) ApplyDeliveryStatus(receipt DeliveryStatus) error {
	if s.cfg.DemoMode {
		return ErrNotConfigured
	}

	delivered := strings.EqualFold(receipt.Status, models.MessageStatusDelivered)

	errorText := ""
	if receipt.ErrorCode != "" {
		errorText = fmt.Sprintf("%s: %s", receipt.ErrorCode, receipt.ErrorMessage)
	}

	affected, err := s.repo.Message().UpdateByProviderSID(receipt.MessageSID, receipt.Status, delivered, errorText)
	if err != nil {
		return fmt.Errorf("failed to apply delivery status: %w", err)
	}

	if affected == 0 {
		s.logger.Info("Delivery receipt for unknown sid ignored",
			zap.String("sid", receipt.MessageSID),
			zap.String("status", receipt.Status))
		return nil
	}

	s.logger.Info("Message status updated",
		zap.String("sid", receipt.MessageSID),
		zap.String("status", receipt.Status))

	return nil
}

func (s *messageService) GetCircuitBreakerStatus() (state api.CircuitBreakerState, requests uint32, failures uint32) {
	state = s.circuitBreaker.GetState()
	requests, failures = s.circuitBreaker.GetCounts()
	return
}
