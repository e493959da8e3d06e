package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dialdesk/dialdesk/internal/models"
)

type callLogRepository struct {
	db *sqlx.DB
}

func NewCallLogRepository(db *sqlx.DB) CallLogRepository {
	return &callLogRepository{
		db: db,
	}
}

func (r *callLogRepository) List(limit int) ([]*models.CallLog, error) {
	query := `
		SELECT l.id, l.contact_id, l.duration, l.status, l.notes, l.recording_url, l.created_at,
		       c.name AS contact_name, c.phone AS contact_phone
		FROM call_logs l
		JOIN contacts c ON c.id = l.contact_id
		ORDER BY l.created_at DESC
		LIMIT $1
	`

	var logs []*models.CallLog
	if err := r.db.Select(&logs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list call logs: %w", err)
	}

	return logs, nil
}

func (r *callLogRepository) Create(log *models.CallLog) error {
	query := `
		INSERT INTO call_logs (contact_id, duration, status, notes, recording_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(query,
		log.ContactID, log.Duration, log.Status, log.Notes, log.RecordingURL,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create call log: %w", err)
	}

	return nil
}
