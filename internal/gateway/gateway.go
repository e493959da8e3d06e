// Package gateway wraps the external SMS provider's send and webhook
// verification APIs behind a narrow interface.
package gateway

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by Send when provider credentials are absent.
var ErrNotConfigured = errors.New("sms gateway is not configured")

// SendResult reports the provider's acknowledgement of one send.
type SendResult struct {
	SID    string
	Status string
}

// Gateway is the boundary to the telephony provider.
type Gateway interface {
	// Send submits one SMS. A non-nil error means the provider rejected
	// or never received the message; callers record it as a Failed row.
	Send(ctx context.Context, to, body string) (*SendResult, error)

	// VerifySignature checks a webhook request's provider signature
	// against the exact request URL and the posted form parameters.
	VerifySignature(url string, params map[string]string, signature string) bool

	// Enabled reports whether live sends are possible.
	Enabled() bool
}
