package models

import (
	"database/sql"
	"time"
)

// CallLog is a dialer entry. Write-only from the UI; unrelated to messaging.
type CallLog struct {
	ID           string         `db:"id" json:"id"`
	ContactID    string         `db:"contact_id" json:"contact_id"`
	Duration     int            `db:"duration" json:"duration"`
	Status       string         `db:"status" json:"status"`
	Notes        sql.NullString `db:"notes" json:"notes,omitempty"`
	RecordingURL sql.NullString `db:"recording_url" json:"recording_url,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`

	ContactName  sql.NullString `db:"contact_name" json:"contact_name,omitempty"`
	ContactPhone sql.NullString `db:"contact_phone" json:"contact_phone,omitempty"`
}
