// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

const (
	ContactStatusLead     = "Lead"
	ContactStatusCustomer = "Customer"
)

// TagInbound marks contacts auto-created from an unrecognized inbound number.
const TagInbound = "Inbound"

// Contact represents a person record targeted for calls and messages.
type Contact struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Phone         string         `db:"phone" json:"phone"`
	Email         sql.NullString `db:"email" json:"email,omitempty"`
	Address       sql.NullString `db:"address" json:"address,omitempty"`
	City          sql.NullString `db:"city" json:"city,omitempty"`
	State         sql.NullString `db:"state" json:"state,omitempty"`
	Zipcode       sql.NullString `db:"zipcode" json:"zipcode,omitempty"`
	Location      sql.NullString `db:"location" json:"location,omitempty"`
	Status        string         `db:"status" json:"status"`
	Tags          pq.StringArray `db:"tags" json:"tags"`
	Notes         sql.NullString `db:"notes" json:"notes,omitempty"`
	LastContacted sql.NullTime   `db:"last_contacted" json:"last_contacted,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
