package service

import (
	"database/sql"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/api"
	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/csvimport"
	"github.com/dialdesk/dialdesk/internal/models"
	"github.com/dialdesk/dialdesk/internal/phone"
	"github.com/dialdesk/dialdesk/internal/repository"
)

type contactService struct {
	cfg    *config.Config
	repo   repository.Repository
	logger *zap.Logger
}

func NewContactService(cfg *config.Config, repo repository.Repository, logger *zap.Logger) ContactService {
	return &contactService{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
	}
}

func (s *contactService) List(filter repository.ContactFilter) (*api.ContactListResponse, error) {
	if s.cfg.DemoMode {
		contacts := sampleContacts()
		return &api.ContactListResponse{
			Data:       contacts,
			Pagination: api.Pagination{Limit: filter.Limit, Offset: filter.Offset, Total: len(contacts)},
		}, nil
	}

	contacts, total, err := s.repo.Contact().List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return &api.ContactListResponse{
		Data:       contacts,
		Pagination: api.Pagination{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

func (s *contactService) Create(req api.CreateContactRequest) (*models.Contact, error) {
	if s.cfg.DemoMode {
		return nil, ErrNotConfigured
	}

	status := req.Status
	if status == "" {
		status = models.ContactStatusLead
	}

	contact := &models.Contact{
		Name:     req.Name,
		Phone:    phone.Normalize(req.Phone),
		Email:    nullString(req.Email),
		Address:  nullString(req.Address),
		City:     nullString(req.City),
		State:    nullString(req.State),
		Zipcode:  nullString(req.Zipcode),
		Location: nullString(req.Location),
		Status:   status,
		Tags:     req.Tags,
		Notes:    nullString(req.Notes),
	}

	if err := s.repo.Contact().Create(contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.logger.Info("Contact created",
		zap.String("contactID", contact.ID),
		zap.String("phone", contact.Phone))

	return contact, nil
}

func (s *contactService) Update(id string, req api.UpdateContactRequest) (*models.Contact, error) {
	if s.cfg.DemoMode {
		return nil, ErrNotConfigured
	}

	update := repository.ContactUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Location: req.Location,
		Status:   req.Status,
		Tags:     req.Tags,
		Notes:    req.Notes,
	}
	if req.Phone != nil {
		normalized := phone.Normalize(*req.Phone)
		update.Phone = &normalized
	}

	contact, err := s.repo.Contact().Update(id, update)
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// ImportCSV parses the upload and bulk-inserts every parseable row.
// Unparseable rows are skipped, never fatal; the caller reports both
// counts back to the uploader.
func (s *contactService) ImportCSV(r io.Reader) (*api.ImportResponse, error) {
	if s.cfg.DemoMode {
		return nil, ErrNotConfigured
	}

	contacts, skipped, err := csvimport.ParseContacts(r)
	if err != nil {
		return nil, err
	}

	imported := 0
	if len(contacts) > 0 {
		imported, err = s.repo.Contact().BulkInsert(contacts)
		if err != nil {
			return nil, fmt.Errorf("failed to import contacts: %w", err)
		}
	}

	s.logger.Info("CSV import finished",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped))

	return &api.ImportResponse{
		Message:  fmt.Sprintf("Imported %d contacts", imported),
		Imported: imported,
		Skipped:  skipped,
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
