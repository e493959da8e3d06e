// Package api defines the request and response types of the REST surface.
package api

import (
	"time"

	"github.com/dialdesk/dialdesk/internal/models"
)

// ErrorResponse is the JSON error envelope returned by every route.
type ErrorResponse struct {
	Error     string     `json:"error"`
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type CreateContactRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Phone    string   `json:"phone" validate:"required,max=32"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	Zipcode  string   `json:"zipcode"`
	Location string   `json:"location"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
	Notes    string   `json:"notes"`
}

// UpdateContactRequest carries the mutable contact fields. Nil pointers
// leave the stored value untouched.
type UpdateContactRequest struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,max=200"`
	Phone    *string   `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email    *string   `json:"email,omitempty" validate:"omitempty,email"`
	Location *string   `json:"location,omitempty"`
	Status   *string   `json:"status,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
	Notes    *string   `json:"notes,omitempty"`
}

type ContactListResponse struct {
	Data       []*models.Contact `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type ContactResponse struct {
	Data *models.Contact `json:"data"`
}

type ImportResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

type SendMessagesRequest struct {
	ContactIDs []string `json:"contact_ids" validate:"required,min=1,dive,uuid4"`
	Content    string   `json:"content" validate:"required"`
	CampaignID string   `json:"campaign_id" validate:"omitempty,uuid4"`
}

// SendResult is the per-recipient outcome of a bulk send.
type SendResult struct {
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Success     bool   `json:"success"`
	MessageSID  string `json:"message_sid,omitempty"`
	Error       string `json:"error,omitempty"`
}

type SendReport struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	SentCount   int          `json:"sent_count"`
	FailedCount int          `json:"failed_count"`
	Results     []SendResult `json:"results"`
}

type MessageListResponse struct {
	Data       []*models.Message `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

type ConversationListResponse struct {
	Data []*models.Conversation `json:"data"`
}

type ThreadResponse struct {
	Data []*models.Message `json:"data"`
}

type CreateCampaignRequest struct {
	Name            string     `json:"name" validate:"required,max=200"`
	Description     string     `json:"description"`
	MessageTemplate string     `json:"message_template" validate:"required"`
	ContactFilter   string     `json:"contact_filter" validate:"omitempty,oneof=all leads customers vip"`
	SendTime        string     `json:"send_time"`
	NextSendDate    *time.Time `json:"next_send_date,omitempty"`
}

type UpdateCampaignStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Draft Active Paused"`
}

type CampaignListResponse struct {
	Data []*models.Campaign `json:"data"`
}

type CampaignResponse struct {
	Data *models.Campaign `json:"data"`
}

type CreateCallLogRequest struct {
	ContactID string `json:"contact_id" validate:"required,uuid4"`
	Duration  int    `json:"duration" validate:"gte=0"`
	Status    string `json:"status" validate:"required"`
	Notes     string `json:"notes"`
}

type CallLogListResponse struct {
	Data []*models.CallLog `json:"data"`
}

type CallLogResponse struct {
	Data *models.CallLog `json:"data"`
}
