package repository

import (
	"errors"

	"github.com/dialdesk/dialdesk/internal/models"
)

// ErrNotFound is returned when a row lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	Contact() ContactRepository
	Message() MessageRepository
	Campaign() CampaignRepository
	CallLog() CallLogRepository
}

// ContactFilter narrows contact listings.
type ContactFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}

// ContactUpdate carries the mutable contact fields; nil pointers keep the
// stored value.
type ContactUpdate struct {
	Name     *string
	Phone    *string
	Email    *string
	Location *string
	Status   *string
	Tags     *[]string
	Notes    *string
}

// ContactRepository interface defines contact operations.
type ContactRepository interface {
	List(filter ContactFilter) ([]*models.Contact, int, error)
	GetByID(id string) (*models.Contact, error)
	GetByIDs(ids []string) ([]*models.Contact, error)
	GetByPhoneSuffix(suffix string) (*models.Contact, error)
	ListByAudience(audience string) ([]*models.Contact, error)
	Create(contact *models.Contact) error
	Update(id string, update ContactUpdate) (*models.Contact, error)
	BulkInsert(contacts []*models.Contact) (int, error)
	TouchLastContacted(ids []string) error
}

// MessageFilter narrows message listings.
type MessageFilter struct {
	Status     string
	CampaignID string
	Limit      int
	Offset     int
}

// MessageRepository interface defines message operations.
type MessageRepository interface {
	List(filter MessageFilter) ([]*models.Message, int, error)
	ListByContact(contactID string) ([]*models.Message, error)
	Conversations(search string) ([]*models.Conversation, error)
	Create(message *models.Message) error
	BulkInsert(messages []*models.Message) error
	// UpdateByProviderSID applies a delivery receipt and returns the
	// number of rows it touched; zero is a valid no-op outcome.
	UpdateByProviderSID(sid, status string, delivered bool, errorText string) (int64, error)
}

// CampaignRepository interface defines campaign operations.
type CampaignRepository interface {
	List() ([]*models.Campaign, error)
	GetByID(id string) (*models.Campaign, error)
	Create(campaign *models.Campaign) error
	UpdateStatus(id, status string) error
	ListDue(limit int) ([]*models.Campaign, error)
	ClearSchedule(id string) error
}

// CallLogRepository interface defines call log operations.
type CallLogRepository interface {
	List(limit int) ([]*models.CallLog, error)
	Create(log *models.CallLog) error
}
