// Package repository provides PostgreSQL persistence for the application.
package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db       *sqlx.DB
	contact  ContactRepository
	message  MessageRepository
	campaign CampaignRepository
	callLog  CallLogRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:       db,
		contact:  NewContactRepository(db),
		message:  NewMessageRepository(db),
		campaign: NewCampaignRepository(db),
		callLog:  NewCallLogRepository(db),
	}
}

func (r *repositoryImpl) Contact() ContactRepository {
	return r.contact
}

func (r *repositoryImpl) Message() MessageRepository {
	return r.message
}

func (r *repositoryImpl) Campaign() CampaignRepository {
	return r.campaign
}

func (r *repositoryImpl) CallLog() CallLogRepository {
	return r.callLog
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
