package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/netriktechworks/site-backend/errs"
	"github.com/rs/zerolog/log"
)

const DefaultResendBaseURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// EmailNotifier delivers notifications through Resend.
type EmailNotifier struct {
	apiKey     string
	from       string
	recipients []string
	baseURL    string
	client     *http.Client
}

// NewEmailNotifier needs RESEND_API_KEY, RESEND_FROM_EMAIL (e.g.
// "Netrik Techworks <noreply@netriktechworks.com>") and at least one
// recipient from NOTIFY_EMAILS.
func NewEmailNotifier(apiKey, from string, recipients []string) (*EmailNotifier, error) {
	if apiKey == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_API_KEY")
	}
	if from == "" {
		return nil, errs.NewEnvironmentVariableError("RESEND_FROM_EMAIL")
	}
	if len(recipients) == 0 {
		return nil, errs.NewEnvironmentVariableError("NOTIFY_EMAILS")
	}
	return &EmailNotifier{
		apiKey:     apiKey,
		from:       from,
		recipients: recipients,
		baseURL:    DefaultResendBaseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// WithBaseURL points the notifier at another Resend-compatible endpoint.
func (n *EmailNotifier) WithBaseURL(baseURL string) *EmailNotifier {
	n.baseURL = baseURL
	return n
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Notify(ctx context.Context, msg Message) error {
	return n.SendEmail(ctx, msg.Subject, msg.HTML, msg.Text, msg.ReplyTo)
}

// SendEmail sends one email to every configured recipient.
func (n *EmailNotifier) SendEmail(ctx context.Context, subject, html, text, replyTo string) error {
	payload := ResendEmailRequest{
		From:    n.from,
		To:      n.recipients,
		Subject: subject,
		Html:    html,
		Text:    text,
		ReplyTo: replyTo,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errs.NewNotificationError("email", fmt.Errorf("failed to send request to Resend API: %w", err))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewNotificationError("email", fmt.Errorf("failed to read Resend API response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return errs.NewNotificationError("email", fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message))
		}
		return errs.NewNotificationError("email", fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes)))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}
