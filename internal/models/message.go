package models

import (
	"database/sql"
	"time"
)

// Message direction. Every write path sets direction explicitly; the table
// of origin never encodes it.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Message statuses as stored. Provider callbacks overwrite the status with
// the provider's own vocabulary (delivered, failed, ...).
const (
	MessageStatusSent      = "Sent"
	MessageStatusFailed    = "Failed"
	MessageStatusReceived  = "Received"
	MessageStatusDelivered = "delivered"
)

// Message represents one inbound or outbound SMS record.
type Message struct {
	ID           string         `db:"id" json:"id"`
	ContactID    sql.NullString `db:"contact_id" json:"contact_id,omitempty"`
	CampaignID   sql.NullString `db:"campaign_id" json:"campaign_id,omitempty"`
	Content      string         `db:"content" json:"content"`
	Direction    string         `db:"direction" json:"direction"`
	Status       string         `db:"status" json:"status"`
	ProviderSID  sql.NullString `db:"provider_sid" json:"provider_sid,omitempty"`
	ErrorMessage sql.NullString `db:"error_message" json:"error_message,omitempty"`
	SentAt       sql.NullTime   `db:"sent_at" json:"sent_at,omitempty"`
	DeliveredAt  sql.NullTime   `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`

	// Populated by list queries that join the owning contact.
	ContactName  sql.NullString `db:"contact_name" json:"contact_name,omitempty"`
	ContactPhone sql.NullString `db:"contact_phone" json:"contact_phone,omitempty"`
}

// Conversation is the per-contact rollup served to the conversations view.
type Conversation struct {
	ContactID     string         `db:"contact_id" json:"contact_id"`
	Name          string         `db:"name" json:"name"`
	Phone         string         `db:"phone" json:"phone"`
	Email         sql.NullString `db:"email" json:"email,omitempty"`
	Status        string         `db:"status" json:"status"`
	LastMessage   sql.NullString `db:"last_message" json:"last_message,omitempty"`
	LastMessageAt sql.NullTime   `db:"last_message_at" json:"last_message_at,omitempty"`
	UnreadCount   int            `db:"unread_count" json:"unread_count"`
}
