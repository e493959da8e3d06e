package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dialdesk/dialdesk/internal/models"
)

// Campaign aggregates are recomputed from the message log on every read;
// the stored counter columns drift and are not trusted.
const campaignSelect = `
	SELECT c.id, c.name, c.description, c.message_template, c.contact_filter,
	       c.send_time, c.next_send_date, c.status, c.total_contacts,
	       COALESCE(agg.sent_count, 0) AS messages_sent,
	       COALESCE(agg.response_count, 0) AS responses_received,
	       c.created_at, c.updated_at
	FROM campaigns c
	LEFT JOIN (
		SELECT campaign_id,
		       COUNT(*) FILTER (WHERE direction = 'outbound') AS sent_count,
		       COUNT(*) FILTER (WHERE direction = 'inbound') AS response_count
		FROM messages
		GROUP BY campaign_id
	) agg ON agg.campaign_id = c.id
`

type campaignRepository struct {
	db *sqlx.DB
}

func NewCampaignRepository(db *sqlx.DB) CampaignRepository {
	return &campaignRepository{
		db: db,
	}
}

func (r *campaignRepository) List() ([]*models.Campaign, error) {
	query := campaignSelect + " ORDER BY c.created_at DESC"

	var campaigns []*models.Campaign
	if err := r.db.Select(&campaigns, query); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) GetByID(id string) (*models.Campaign, error) {
	query := campaignSelect + " WHERE c.id = $1"

	var campaign models.Campaign
	err := r.db.Get(&campaign, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

func (r *campaignRepository) Create(campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (name, description, message_template, contact_filter,
		                       send_time, next_send_date, status, total_contacts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	if campaign.Status == "" {
		campaign.Status = models.CampaignStatusDraft
	}

	err := r.db.QueryRow(query,
		campaign.Name, campaign.Description, campaign.MessageTemplate,
		campaign.ContactFilter, campaign.SendTime, campaign.NextSendDate,
		campaign.Status, campaign.TotalContacts,
	).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *campaignRepository) UpdateStatus(id, status string) error {
	query := `
		UPDATE campaigns
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update campaign status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListDue returns Active campaigns whose scheduled send date has passed.
func (r *campaignRepository) ListDue(limit int) ([]*models.Campaign, error) {
	query := campaignSelect + `
		WHERE c.status = $1 AND c.next_send_date IS NOT NULL AND c.next_send_date <= now()
		ORDER BY c.next_send_date ASC
		LIMIT $2
	`

	var campaigns []*models.Campaign
	if err := r.db.Select(&campaigns, query, models.CampaignStatusActive, limit); err != nil {
		return nil, fmt.Errorf("failed to list due campaigns: %w", err)
	}

	return campaigns, nil
}

// ClearSchedule removes the due date after a dispatch so the campaign is
// not picked up again.
func (r *campaignRepository) ClearSchedule(id string) error {
	query := `
		UPDATE campaigns
		SET next_send_date = NULL, updated_at = now()
		WHERE id = $1
	`

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to clear campaign schedule: %w", err)
	}

	return nil
}
