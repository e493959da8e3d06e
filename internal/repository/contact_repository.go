package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dialdesk/dialdesk/internal/models"
)

const contactColumns = `id, name, phone, email, address, city, state, zipcode, location,
	status, tags, notes, last_contacted, created_at, updated_at`

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{
		db: db,
	}
}

// List retrieves contacts with search/status filters and pagination.
func (r *contactRepository) List(filter ContactFilter) ([]*models.Contact, int, error) {
	where := "TRUE"
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)",
			len(args), len(args), len(args))
	}
	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM contacts WHERE " + where
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, contactColumns, where, len(args)-1, len(args))

	var contacts []*models.Contact
	if err := r.db.Select(&contacts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, total, nil
}

func (r *contactRepository) GetByID(id string) (*models.Contact, error) {
	query := fmt.Sprintf("SELECT %s FROM contacts WHERE id = $1", contactColumns)

	var contact models.Contact
	err := r.db.Get(&contact, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return &contact, nil
}

func (r *contactRepository) GetByIDs(ids []string) ([]*models.Contact, error) {
	query := fmt.Sprintf("SELECT %s FROM contacts WHERE id = ANY($1)", contactColumns)

	var contacts []*models.Contact
	if err := r.db.Select(&contacts, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get contacts by ids: %w", err)
	}

	return contacts, nil
}

// GetByPhoneSuffix resolves a contact by the last digits of its phone
// number, comparing digits only so stored formatting does not matter.
func (r *contactRepository) GetByPhoneSuffix(suffix string) (*models.Contact, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM contacts
		WHERE regexp_replace(phone, '[^0-9]', '', 'g') LIKE '%%' || $1
		ORDER BY created_at ASC
		LIMIT 1
	`, contactColumns)

	var contact models.Contact
	err := r.db.Get(&contact, query, suffix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact by phone: %w", err)
	}

	return &contact, nil
}

// ListByAudience resolves a campaign target filter to contacts.
func (r *contactRepository) ListByAudience(audience string) ([]*models.Contact, error) {
	query := fmt.Sprintf("SELECT %s FROM contacts", contactColumns)
	args := []interface{}{}

	switch audience {
	case models.AudienceLeads:
		query += " WHERE status = $1"
		args = append(args, models.ContactStatusLead)
	case models.AudienceCustomers:
		query += " WHERE status = $1"
		args = append(args, models.ContactStatusCustomer)
	case models.AudienceVIP:
		query += " WHERE $1 = ANY(tags)"
		args = append(args, "VIP")
	case models.AudienceAll, "":
		// no filter
	default:
		return nil, fmt.Errorf("unknown audience %q", audience)
	}

	query += " ORDER BY created_at ASC"

	var contacts []*models.Contact
	if err := r.db.Select(&contacts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audience: %w", err)
	}

	return contacts, nil
}

// Create inserts a contact and fills its generated id and timestamps.
func (r *contactRepository) Create(contact *models.Contact) error {
	query := `
		INSERT INTO contacts (name, phone, email, address, city, state, zipcode, location, status, tags, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	if contact.Tags == nil {
		contact.Tags = []string{}
	}
	if contact.Status == "" {
		contact.Status = models.ContactStatusLead
	}

	err := r.db.QueryRow(query,
		contact.Name, contact.Phone, contact.Email, contact.Address, contact.City,
		contact.State, contact.Zipcode, contact.Location, contact.Status,
		contact.Tags, contact.Notes,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// Update applies the non-nil fields and returns the stored row.
func (r *contactRepository) Update(id string, update ContactUpdate) (*models.Contact, error) {
	query := fmt.Sprintf(`
		UPDATE contacts
		SET name = COALESCE($2, name),
		    phone = COALESCE($3, phone),
		    email = COALESCE($4, email),
		    location = COALESCE($5, location),
		    status = COALESCE($6, status),
		    tags = COALESCE($7, tags),
		    notes = COALESCE($8, notes),
		    updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, contactColumns)

	var tags interface{}
	if update.Tags != nil {
		tags = pq.Array(*update.Tags)
	}

	var contact models.Contact
	err := r.db.Get(&contact, query, id,
		update.Name, update.Phone, update.Email, update.Location,
		update.Status, tags, update.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return &contact, nil
}

// BulkInsert writes all rows in one statement so a failed import commits
// nothing.
func (r *contactRepository) BulkInsert(contacts []*models.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	for _, contact := range contacts {
		if contact.Tags == nil {
			contact.Tags = []string{}
		}
		if contact.Status == "" {
			contact.Status = models.ContactStatusLead
		}
	}

	query := `
		INSERT INTO contacts (name, phone, email, address, city, state, zipcode, location, status, tags, notes)
		VALUES (:name, :phone, :email, :address, :city, :state, :zipcode, :location, :status, :tags, :notes)
	`

	result, err := r.db.NamedExec(query, contacts)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert contacts: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return len(contacts), nil
	}

	return int(inserted), nil
}

// TouchLastContacted bumps last_contacted for all given ids in one call.
func (r *contactRepository) TouchLastContacted(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE contacts
		SET last_contacted = now(), updated_at = now()
		WHERE id = ANY($1)
	`

	if _, err := r.db.Exec(query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to update last_contacted: %w", err)
	}

	return nil
}
