// Package team manages team members and their persistence.
package team

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/resource"
)

// Member represents a team member shown on the site.
type Member struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	PhotoURL      string    `json:"photoUrl"`
	AttachmentKey *string   `json:"attachmentKey,omitempty"`
	Facebook      string    `json:"facebook"`
	Instagram     string    `json:"instagram"`
	Linkedin      string    `json:"linkedin"`
	Twitter       string    `json:"twitter"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Attachment returns the member's persisted image reference.
func (m *Member) Attachment() attachment.State {
	return attachment.StateOf(m.PhotoURL, m.AttachmentKey)
}

// SetAttachment sets the member's image reference.
func (m *Member) SetAttachment(s attachment.State) {
	m.PhotoURL = s.URL
	m.AttachmentKey = s.KeyPtr()
}

const memberColumns = `id, name, position, photo_url, attachment_key,
	facebook, instagram, linkedin, twitter, created_at, updated_at`

// Repository handles team member database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanMember(row pgx.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(&m.ID, &m.Name, &m.Position, &m.PhotoURL, &m.AttachmentKey,
		&m.Facebook, &m.Instagram, &m.Linkedin, &m.Twitter, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Insert creates a new member and returns the stored record.
func (r *Repository) Insert(ctx context.Context, m *Member) (*Member, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO team_members (name, position, photo_url, attachment_key,
		   facebook, instagram, linkedin, twitter)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+memberColumns,
		m.Name, m.Position, m.PhotoURL, m.AttachmentKey,
		m.Facebook, m.Instagram, m.Linkedin, m.Twitter,
	)
	created, err := scanMember(row)
	if err != nil {
		return nil, fmt.Errorf("insert team member: %w", err)
	}
	return created, nil
}

// List returns all members, newest first.
func (r *Repository) List(ctx context.Context) ([]*Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+memberColumns+` FROM team_members ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	members := []*Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// Get fetches a member by id.
func (r *Repository) Get(ctx context.Context, id string) (*Member, error) {
	return scanMember(r.db.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM team_members WHERE id = $1`, id))
}

// Update overwrites a member's fields and returns the stored record.
func (r *Repository) Update(ctx context.Context, id string, m *Member) (*Member, error) {
	return scanMember(r.db.QueryRow(ctx,
		`UPDATE team_members
		 SET name = $2, position = $3, photo_url = $4, attachment_key = $5,
		     facebook = $6, instagram = $7, linkedin = $8, twitter = $9,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+memberColumns,
		id, m.Name, m.Position, m.PhotoURL, m.AttachmentKey,
		m.Facebook, m.Instagram, m.Linkedin, m.Twitter,
	))
}

// Delete removes a member and returns the deleted record.
func (r *Repository) Delete(ctx context.Context, id string) (*Member, error) {
	return scanMember(r.db.QueryRow(ctx,
		`DELETE FROM team_members WHERE id = $1 RETURNING `+memberColumns, id))
}
