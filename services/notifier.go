package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/netriktechworks/site-backend/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Message is a channel-neutral notification.
type Message struct {
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// Notifier delivers a message over one channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg Message) error
}

// MultiNotifier sends a message over every channel at once. One failing
// channel does not stop the others; the first error is returned after all
// have finished.
type MultiNotifier struct {
	notifiers []Notifier
}

func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

func (m *MultiNotifier) Name() string { return "multi" }

func (m *MultiNotifier) Len() int { return len(m.notifiers) }

func (m *MultiNotifier) Notify(ctx context.Context, msg Message) error {
	var g errgroup.Group
	for _, n := range m.notifiers {
		n := n
		g.Go(func() error {
			if err := n.Notify(ctx, msg); err != nil {
				log.Error().Err(err).Str("channel", n.Name()).Msg("Failed to send notification")
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// ContactSubmissionMessage describes a new contact-form submission.
func ContactSubmissionMessage(c *models.ContactSubmission) Message {
	subject := fmt.Sprintf("New enquiry: %s from %s", c.Service, c.Name)

	var text strings.Builder
	fmt.Fprintf(&text, "New contact submission\n")
	fmt.Fprintf(&text, "Name: %s\nEmail: %s\nPhone: %s\nService: %s\n\n%s", c.Name, c.Email, c.Phone, c.Service, c.Message)

	var body strings.Builder
	body.WriteString("<h2>New contact submission</h2><table>")
	for _, row := range [][2]string{
		{"Name", c.Name},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Service", c.Service},
		{"Submitted", c.SubmittedAt.Format("02/01/2006 15:04 MST")},
	} {
		fmt.Fprintf(&body, "<tr><td><strong>%s</strong></td><td>%s</td></tr>", row[0], html.EscapeString(row[1]))
	}
	body.WriteString("</table><p>")
	body.WriteString(strings.ReplaceAll(html.EscapeString(c.Message), "\n", "<br>"))
	body.WriteString("</p>")

	return Message{
		Subject: subject,
		Text:    text.String(),
		HTML:    body.String(),
		ReplyTo: c.Email,
	}
}

// Truncate cuts s to at most n characters, ending in "..." when it had to
// cut. It never splits a multi-byte character.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}
