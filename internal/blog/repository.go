// Package blog manages blog posts and their persistence.
package blog

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

// Post represents a blog post.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl"`
	AttachmentKey *string   `json:"attachmentKey,omitempty"`
	YoutubeLink   string    `json:"youtubeLink,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Attachment returns the post's persisted image reference.
func (p *Post) Attachment() attachment.State {
	return attachment.StateOf(p.ImageURL, p.AttachmentKey)
}

// SetAttachment sets the post's image reference.
func (p *Post) SetAttachment(s attachment.State) {
	p.ImageURL = s.URL
	p.AttachmentKey = s.KeyPtr()
}

const postColumns = `id, title, category, date, description, image_url, attachment_key,
	youtube_link, created_at, updated_at`

// Repository handles blog post database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanPost(row pgx.Row) (*Post, error) {
	p := &Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Date, &p.Description, &p.ImageURL,
		&p.AttachmentKey, &p.YoutubeLink, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, resource.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Insert creates a new post and returns the stored record.
func (r *Repository) Insert(ctx context.Context, p *Post) (*Post, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO blog_posts (title, category, date, description, image_url,
		   attachment_key, youtube_link)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+postColumns,
		p.Title, p.Category, p.Date, p.Description, p.ImageURL, p.AttachmentKey, p.YoutubeLink,
	)
	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("insert blog post: %w", err)
	}
	return created, nil
}

// List returns all posts, newest first.
func (r *Repository) List(ctx context.Context) ([]*Post, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+postColumns+` FROM blog_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// ListPage returns one page of posts, newest first.
func (r *Repository) ListPage(ctx context.Context, offset, limit int) ([]*Post, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+postColumns+` FROM blog_posts
		 ORDER BY created_at DESC
		 OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list blog posts page: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// Count returns the total number of posts.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count blog posts: %w", err)
	}
	return total, nil
}

func collectPosts(rows pgx.Rows) ([]*Post, error) {
	posts := []*Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Get fetches a post by id.
func (r *Repository) Get(ctx context.Context, id string) (*Post, error) {
	return scanPost(r.db.QueryRow(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id))
}

// Update overwrites a post's fields and returns the stored record.
func (r *Repository) Update(ctx context.Context, id string, p *Post) (*Post, error) {
	return scanPost(r.db.QueryRow(ctx,
		`UPDATE blog_posts
		 SET title = $2, category = $3, date = $4, description = $5, image_url = $6,
		     attachment_key = $7, youtube_link = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+postColumns,
		id, p.Title, p.Category, p.Date, p.Description, p.ImageURL, p.AttachmentKey, p.YoutubeLink,
	))
}

// Delete removes a post and returns the deleted record.
func (r *Repository) Delete(ctx context.Context, id string) (*Post, error) {
	return scanPost(r.db.QueryRow(ctx,
		`DELETE FROM blog_posts WHERE id = $1 RETURNING `+postColumns, id))
}
