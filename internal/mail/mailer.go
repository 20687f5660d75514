// Package mail sends transactional email for contact-form submissions.
package mail

import "context"

// Notification carries the contact-form details to mail out.
type Notification struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Mailer delivers contact-form notifications: a confirmation to the client
// and a copy to the site owner.
type Mailer interface {
	SendContactNotification(ctx context.Context, n Notification) error
}
