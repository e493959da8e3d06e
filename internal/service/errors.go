package service

import "errors"

var (
	// ErrNotConfigured signals that the backing store or the SMS
	// provider credentials are absent; routes answer 501.
	ErrNotConfigured = errors.New("service is not configured")

	// ErrNoRecipients signals a send request that resolves to zero
	// contacts.
	ErrNoRecipients = errors.New("no valid recipients")
)
