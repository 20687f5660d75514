package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailgun/mailgun-go/v5"
)

// MailgunMailer implements Mailer on top of the Mailgun API.
type MailgunMailer struct {
	mg     mailgun.Mailgun
	domain string
	sender string
	owner  string
}

// NewMailgunMailer creates a Mailer that sends through the given Mailgun domain.
func NewMailgunMailer(apiKey, domain, sender, owner string) *MailgunMailer {
	return &MailgunMailer{
		mg:     mailgun.NewMailgun(apiKey),
		domain: domain,
		sender: sender,
		owner:  owner,
	}
}

// SendContactNotification mails a confirmation to the client and forwards the
// submission to the owner address. Both sends are attempted; errors are joined.
func (m *MailgunMailer) SendContactNotification(ctx context.Context, n Notification) error {
	confirmation := mailgun.NewMessage(m.domain, m.sender,
		"Your request has been received",
		fmt.Sprintf("Hello %s,\n\nThank you for reaching out! We received your message and will get back to you soon.\n\nPhone: %s\nMessage: %s\n\nBest regards,\nThe support team",
			n.Name, n.Phone, n.Message),
		n.Email)

	notice := mailgun.NewMessage(m.domain, m.sender,
		"New client request",
		fmt.Sprintf("New request from the contact form.\n\nName: %s\nEmail: %s\nPhone: %s\nMessage:\n%s",
			n.Name, n.Email, n.Phone, n.Message),
		m.owner)

	var errs []error
	if _, err := m.mg.Send(ctx, confirmation); err != nil {
		errs = append(errs, fmt.Errorf("send confirmation to %s: %w", n.Email, err))
	}
	if _, err := m.mg.Send(ctx, notice); err != nil {
		errs = append(errs, fmt.Errorf("send owner notice: %w", err))
	}
	return errors.Join(errs...)
}
