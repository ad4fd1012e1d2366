package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSNotifier texts a fixed number through Twilio
type SMSNotifier struct {
	api  messageCreator
	from string
	to   string
}

// NewSMSNotifier returns nil when any Twilio setting is missing
func NewSMSNotifier(accountSID, authToken, from, to string) *SMSNotifier {
	if accountSID == "" || authToken == "" || from == "" || to == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSNotifier{api: client.Api, from: from, to: to}
}

func (n *SMSNotifier) Configured() bool {
	return n != nil && n.api != nil
}

// Send texts body to the configured number. Twilio's client takes no context,
// so ctx is only checked before the call.
func (n *SMSNotifier) Send(ctx context.Context, body string) error {
	if !n.Configured() {
		return fmt.Errorf("twilio is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	msg, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS via Twilio: %w", err)
	}
	if msg != nil && msg.Sid != nil {
		log.Info().Str("sid", *msg.Sid).Msg("Successfully sent SMS via Twilio")
	}
	return nil
}
