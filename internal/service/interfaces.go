package service

import (
	"context"
	"io"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/models"
	"github.com/dialdesk/dialdesk/internal/repository"
)

type ContactService interface {
	List(filter repository.ContactFilter) (*api.ContactListResponse, error)
	Create(req api.CreateContactRequest) (*models.Contact, error)
	Update(id string, req api.UpdateContactRequest) (*models.Contact, error)
	ImportCSV(r io.Reader) (*api.ImportResponse, error)
}

type MessageService interface {
	List(filter repository.MessageFilter) (*api.MessageListResponse, error)
	Send(ctx context.Context, req api.SendMessagesRequest) (*api.SendReport, error)
	SendBatch(ctx context.Context, contacts []*models.Contact, content, campaignID string) (*api.SendReport, error)
	Thread(contactID string) (*api.ThreadResponse, error)
	Conversations(search string) (*api.ConversationListResponse, error)
	IngestInbound(in InboundMessage) error
	ApplyDeliveryStatus(receipt DeliveryStatus) error
	GetCircuitBreakerStatus() (state api.CircuitBreakerState, requests uint32, failures uint32)
}

type CampaignService interface {
	List() (*api.CampaignListResponse, error)
	Create(req api.CreateCampaignRequest) (*models.Campaign, error)
	UpdateStatus(id, status string) error
	Execute(ctx context.Context, id string) (*api.SendReport, error)
	DispatchDue(ctx context.Context) error
}

type CallService interface {
	List() (*api.CallLogListResponse, error)
	Create(req api.CreateCallLogRequest) (*models.CallLog, error)
}

type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
}

type HealthService interface {
	GetHealth() *HealthStatus
}
