package models

import (
	"database/sql"
	"time"
)

const (
	CampaignStatusDraft  = "Draft"
	CampaignStatusActive = "Active"
	CampaignStatusPaused = "Paused"
)

// Audience filters accepted in a campaign's contact_filter column.
const (
	AudienceAll       = "all"
	AudienceLeads     = "leads"
	AudienceCustomers = "customers"
	AudienceVIP       = "vip"
)

// Campaign describes a bulk-send definition. The counter columns are kept
// for UI compatibility but list queries recompute MessagesSent and
// ResponsesReceived from the message log.
type Campaign struct {
	ID                string         `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	Description       sql.NullString `db:"description" json:"description,omitempty"`
	MessageTemplate   string         `db:"message_template" json:"message_template"`
	ContactFilter     sql.NullString `db:"contact_filter" json:"contact_filter,omitempty"`
	SendTime          sql.NullString `db:"send_time" json:"send_time,omitempty"`
	NextSendDate      sql.NullTime   `db:"next_send_date" json:"next_send_date,omitempty"`
	Status            string         `db:"status" json:"status"`
	TotalContacts     int            `db:"total_contacts" json:"total_contacts"`
	MessagesSent      int            `db:"messages_sent" json:"messages_sent"`
	ResponsesReceived int            `db:"responses_received" json:"responses_received"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}
