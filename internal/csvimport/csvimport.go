// Package csvimport parses uploaded contact CSV files.
//
// The first line is a case-insensitive header naming the recognized columns;
// data lines are mapped positionally. Rows lacking both a name and a phone
// are discarded silently.
package csvimport

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dialdesk/dialdesk/internal/models"
)

var ErrEmptyFile = errors.New("csv file must have at least a header and one data row")

// ParseContacts reads the whole CSV and returns the surviving contact rows
// plus the count of discarded ones.
func ParseContacts(r io.Reader) ([]*models.Contact, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse csv: %w", err)
	}

	if len(records) < 2 {
		return nil, 0, ErrEmptyFile
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var contacts []*models.Contact
	skipped := 0

	for _, row := range records[1:] {
		c := contactFromRow(header, row)
		if c == nil {
			skipped++
			continue
		}
		contacts = append(contacts, c)
	}

	return contacts, skipped, nil
}

func contactFromRow(header, row []string) *models.Contact {
	c := &models.Contact{Status: models.ContactStatusLead, Tags: []string{}}

	for i, col := range header {
		if i >= len(row) {
			break
		}
		value := strings.TrimSpace(row[i])

		switch col {
		case "name":
			c.Name = value
		case "phone":
			c.Phone = value
		case "email":
			c.Email = nullable(value)
		case "address":
			c.Address = nullable(value)
		case "city":
			c.City = nullable(value)
		case "state":
			c.State = nullable(value)
		case "zipcode", "zip_code", "zip":
			c.Zipcode = nullable(value)
		case "location":
			c.Location = nullable(value)
		case "status":
			if value != "" {
				c.Status = value
			}
		case "tags":
			c.Tags = splitTags(value)
		case "notes":
			c.Notes = nullable(value)
		}
	}

	if c.Name == "" && c.Phone == "" {
		return nil
	}
	if c.Name == "" {
		c.Name = "Contact " + c.Phone
	}

	return c
}

func splitTags(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ";")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func nullable(value string) (ns sql.NullString) {
	if value != "" {
		ns.String = value
		ns.Valid = true
	}
	return ns
}
