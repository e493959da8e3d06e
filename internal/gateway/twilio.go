package gateway

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/phone"
)

type twilioGateway struct {
	cfg       *config.GatewayConfig
	client    *twilio.RestClient
	validator *twilioclient.RequestValidator
	logger    *zap.Logger
}

// NewTwilioGateway builds the provider adapter. With incomplete credentials
// it returns a disabled gateway: Send fails with ErrNotConfigured and
// signature verification is skipped.
func NewTwilioGateway(cfg *config.GatewayConfig, logger *zap.Logger) Gateway {
	g := &twilioGateway{
		cfg:    cfg,
		logger: logger,
	}

	if cfg.Enabled() {
		g.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
		v := twilioclient.NewRequestValidator(cfg.AuthToken)
		g.validator = &v
	}

	return g
}

func (g *twilioGateway) Send(ctx context.Context, to, body string) (*SendResult, error) {
	if g.client == nil {
		return nil, ErrNotConfigured
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(phone.Normalize(to))
	params.SetFrom(g.cfg.FromNumber)
	params.SetBody(body)
	if g.cfg.StatusCallbackURL != "" {
		params.SetStatusCallback(g.cfg.StatusCallbackURL)
	}

	msg, err := g.client.Api.CreateMessage(params)
	if err != nil {
		return nil, fmt.Errorf("provider send failed: %w", err)
	}

	result := &SendResult{}
	if msg.Sid != nil {
		result.SID = *msg.Sid
	}
	if msg.Status != nil {
		result.Status = *msg.Status
	}

	g.logger.Info("SMS submitted to provider",
		zap.String("sid", result.SID),
		zap.String("status", result.Status))

	return result, nil
}

func (g *twilioGateway) VerifySignature(url string, params map[string]string, signature string) bool {
	if g.validator == nil || !g.cfg.VerifySignatures {
		return true
	}
	return g.validator.Validate(url, params, signature)
}

func (g *twilioGateway) Enabled() bool {
	return g.client != nil
}
