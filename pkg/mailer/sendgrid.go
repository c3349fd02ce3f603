package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Message is a single outbound email.
type Message struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainBody string
	HTMLBody  string
}

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendgridSender delivers mail through the SendGrid v3 API.
type SendgridSender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSendgridSender constructs a SendGrid-backed sender.
func NewSendgridSender(apiKey, fromName, fromEmail string) *SendgridSender {
	return &SendgridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers one message. Any non-2xx API response is an error.
func (s *SendgridSender) Send(ctx context.Context, msg Message) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	html := msg.HTMLBody
	if html == "" {
		html = msg.PlainBody
	}
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainBody, html)

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: unexpected status %d", resp.StatusCode)
	}
	return nil
}
