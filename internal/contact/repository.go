// Package contact handles contact-form submissions.
package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Submission is a contact-form entry. Immutable once created.
type Submission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository handles contact submission persistence.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert stores a submission and returns the created record.
func (r *Repository) Insert(ctx context.Context, s *Submission) (*Submission, error) {
	created := &Submission{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, phone, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, email, phone, message, created_at`,
		s.Name, s.Email, s.Phone, s.Message,
	).Scan(&created.ID, &created.Name, &created.Email, &created.Phone, &created.Message, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert contact submission: %w", err)
	}
	return created, nil
}
