// Package project manages portfolio projects and their persistence.
package project

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

// Project represents a portfolio entry shown on the site.
type Project struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	AttachmentKey *string   `json:"attachmentKey,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Attachment returns the project's persisted image reference.
func (p *Project) Attachment() attachment.State {
	return attachment.StateOf(p.ImageURL, p.AttachmentKey)
}

// SetAttachment sets the project's image reference.
func (p *Project) SetAttachment(s attachment.State) {
	p.ImageURL = s.URL
	p.AttachmentKey = s.KeyPtr()
}

const projectColumns = `id, title, category, description, image_url, attachment_key,
	created_at, updated_at`

// Repository handles project database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Description, &p.ImageURL,
		&p.AttachmentKey, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Insert creates a new project and returns the stored record.
func (r *Repository) Insert(ctx context.Context, p *Project) (*Project, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO projects (title, category, description, image_url, attachment_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+projectColumns,
		p.Title, p.Category, p.Description, p.ImageURL, p.AttachmentKey,
	)
	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return created, nil
}

// List returns all projects, newest first.
func (r *Repository) List(ctx context.Context) ([]*Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []*Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Get fetches a project by id.
func (r *Repository) Get(ctx context.Context, id string) (*Project, error) {
	return scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// Update overwrites a project's fields and returns the stored record.
func (r *Repository) Update(ctx context.Context, id string, p *Project) (*Project, error) {
	return scanProject(r.db.QueryRow(ctx,
		`UPDATE projects
		 SET title = $2, category = $3, description = $4, image_url = $5,
		     attachment_key = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+projectColumns,
		id, p.Title, p.Category, p.Description, p.ImageURL, p.AttachmentKey,
	))
}

// Delete removes a project and returns the deleted record.
func (r *Repository) Delete(ctx context.Context, id string) (*Project, error) {
	return scanProject(r.db.QueryRow(ctx,
		`DELETE FROM projects WHERE id = $1 RETURNING `+projectColumns, id))
}
