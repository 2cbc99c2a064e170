package services

import (
	"context"
	"fmt"

	"github.com/netriktechworks/site-backend/errs"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// smsMaxLength, in characters, keeps a message within a few SMS segments.
const smsMaxLength = 480

// MessageCreator is the part of the Twilio REST API used for SMS.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSNotifier texts every number in NOTIFY_PHONES through Twilio.
type SMSNotifier struct {
	api  MessageCreator
	from string
	to   []string
}

// NewSMSNotifier builds a Twilio-backed notifier from account credentials.
func NewSMSNotifier(accountSID, authToken, from string, to []string) (*SMSNotifier, error) {
	if accountSID == "" || authToken == "" {
		return nil, errs.NewEnvironmentVariableError("TWILIO_ACCOUNT_SID/TWILIO_AUTH_TOKEN")
	}
	if from == "" {
		return nil, errs.NewEnvironmentVariableError("TWILIO_FROM_NUMBER")
	}
	if len(to) == 0 {
		return nil, errs.NewEnvironmentVariableError("NOTIFY_PHONES")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewSMSNotifierWithAPI(client.Api, from, to), nil
}

func NewSMSNotifierWithAPI(api MessageCreator, from string, to []string) *SMSNotifier {
	return &SMSNotifier{api: api, from: from, to: to}
}

func (n *SMSNotifier) Name() string { return "sms" }

// Notify sends msg.Text to each recipient. It stops at the first failure.
func (n *SMSNotifier) Notify(ctx context.Context, msg Message) error {
	body := Truncate(msg.Text, smsMaxLength)

	for _, to := range n.to {
		if err := ctx.Err(); err != nil {
			return errs.NewNotificationError("sms", err)
		}

		params := &openapi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(n.from)
		params.SetBody(body)

		resp, err := n.api.CreateMessage(params)
		if err != nil {
			return errs.NewNotificationError("sms", fmt.Errorf("send to %s: %w", to, err))
		}
		if resp != nil && resp.Sid != nil {
			log.Info().Str("messageSid", *resp.Sid).Str("to", to).Msg("Successfully sent SMS via Twilio")
		}
	}
	return nil
}
