package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dialdesk/dialdesk/internal/models"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

// List retrieves messages with status/campaign filters, newest first, each
// row carrying the owning contact's name and phone.
func (r *messageRepository) List(filter MessageFilter) ([]*models.Message, int, error) {
	where := "TRUE"
	args := []interface{}{}

	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND m.status = $%d", len(args))
	}
	if filter.CampaignID != "" && filter.CampaignID != "all" {
		args = append(args, filter.CampaignID)
		where += fmt.Sprintf(" AND m.campaign_id = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM messages m WHERE " + where
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT m.id, m.contact_id, m.campaign_id, m.content, m.direction, m.status,
		       m.provider_sid, m.error_message, m.sent_at, m.delivered_at,
		       m.created_at, m.updated_at,
		       c.name AS contact_name, c.phone AS contact_phone
		FROM messages m
		LEFT JOIN contacts c ON c.id = m.contact_id
		WHERE %s
		ORDER BY m.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var messages []*models.Message
	if err := r.db.Select(&messages, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, total, nil
}

// ListByContact returns a contact's thread in chronological order.
func (r *messageRepository) ListByContact(contactID string) ([]*models.Message, error) {
	query := `
		SELECT id, contact_id, campaign_id, content, direction, status,
		       provider_sid, error_message, sent_at, delivered_at, created_at, updated_at
		FROM messages
		WHERE contact_id = $1
		ORDER BY COALESCE(sent_at, created_at) ASC
	`

	var messages []*models.Message
	if err := r.db.Select(&messages, query, contactID); err != nil {
		return nil, fmt.Errorf("failed to list thread: %w", err)
	}

	return messages, nil
}

// Conversations builds the per-contact rollup: the latest message and the
// count of inbound messages not yet marked read.
func (r *messageRepository) Conversations(search string) ([]*models.Conversation, error) {
	where := "TRUE"
	args := []interface{}{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where = "c.name ILIKE $1"
	}

	query := fmt.Sprintf(`
		SELECT c.id AS contact_id, c.name, c.phone, c.email, c.status,
		       last.content AS last_message,
		       last.sent_at AS last_message_at,
		       COALESCE(unread.count, 0) AS unread_count
		FROM contacts c
		LEFT JOIN LATERAL (
			SELECT content, COALESCE(sent_at, created_at) AS sent_at
			FROM messages
			WHERE contact_id = c.id
			ORDER BY COALESCE(sent_at, created_at) DESC
			LIMIT 1
		) last ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS count
			FROM messages
			WHERE contact_id = c.id AND direction = 'inbound' AND status <> 'Read'
		) unread ON TRUE
		WHERE %s
		ORDER BY c.updated_at DESC
	`, where)

	var conversations []*models.Conversation
	if err := r.db.Select(&conversations, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	return conversations, nil
}

// Create inserts a message record and fills its generated fields.
func (r *messageRepository) Create(message *models.Message) error {
	query := `
		INSERT INTO messages (contact_id, campaign_id, content, direction, status,
		                      provider_sid, error_message, sent_at, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(query,
		message.ContactID, message.CampaignID, message.Content, message.Direction,
		message.Status, message.ProviderSID, message.ErrorMessage,
		message.SentAt, message.DeliveredAt,
	).Scan(&message.ID, &message.CreatedAt, &message.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// BulkInsert writes all records from a batch send in one statement.
func (r *messageRepository) BulkInsert(messages []*models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	query := `
		INSERT INTO messages (contact_id, campaign_id, content, direction, status,
		                      provider_sid, error_message, sent_at, delivered_at)
		VALUES (:contact_id, :campaign_id, :content, :direction, :status,
		        :provider_sid, :error_message, :sent_at, :delivered_at)
	`

	if _, err := r.db.NamedExec(query, messages); err != nil {
		return fmt.Errorf("failed to bulk insert messages: %w", err)
	}

	return nil
}

// UpdateByProviderSID applies a delivery receipt. Zero affected rows means
// the sid is unknown, which callers treat as a no-op.
func (r *messageRepository) UpdateByProviderSID(sid, status string, delivered bool, errorText string) (int64, error) {
	query := `
		UPDATE messages
		SET status = $2,
		    delivered_at = CASE WHEN $3 THEN now() ELSE delivered_at END,
		    error_message = COALESCE(NULLIF($4, ''), error_message),
		    updated_at = now()
		WHERE provider_sid = $1
	`

	result, err := r.db.Exec(query, sid, status, delivered, errorText)
	if err != nil {
		return 0, fmt.Errorf("failed to update message status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
