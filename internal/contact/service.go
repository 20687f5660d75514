package contact

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atelier-studio/backend/internal/mail"
)

// notifyTimeout bounds the outbound notification so a slow mail provider
// cannot pile up goroutines.
const notifyTimeout = 15 * time.Second

// Inserter persists submissions.
type Inserter interface {
	Insert(ctx context.Context, s *Submission) (*Submission, error)
}

// Service persists submissions and dispatches the notification email.
type Service struct {
	repo   Inserter
	mailer mail.Mailer
}

// NewService creates a new contact Service. mailer may be nil when outbound
// mail is not configured.
func NewService(repo Inserter, mailer mail.Mailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// Create stores the submission and fires the notification without blocking
// the caller. The submission is durable once Create returns; a failed
// notification is logged, never retried or rolled back.
func (s *Service) Create(ctx context.Context, sub *Submission) (*Submission, error) {
	created, err := s.repo.Insert(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	if s.mailer != nil {
		go s.notify(mail.Notification{
			Name:    created.Name,
			Email:   created.Email,
			Phone:   created.Phone,
			Message: created.Message,
		})
	}

	return created, nil
}

func (s *Service) notify(n mail.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.mailer.SendContactNotification(ctx, n); err != nil {
		log.Printf("contact: notification for %s failed: %v", n.Email, err)
	}
}
