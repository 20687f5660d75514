// Package resource implements the shared create/read/update/delete lifecycle
// for entities that carry an image attachment. The per-kind pieces — required
// fields, storage folder, upload constraints — live in a Descriptor, so team
// members, projects, and blog posts share one orchestration path instead of
// three hand-duplicated ones.
package resource

import (
	"context"
	"errors"
	"strings"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/storage"
)

// ErrNotFound is returned when an entity does not exist.
var ErrNotFound = errors.New("resource not found")

// ValidationError reports missing required fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Record is an entity that owns at most one blob-store object.
type Record interface {
	Attachment() attachment.State
	SetAttachment(attachment.State)
}

// Repository persists records of one kind. Delete returns the deleted record
// so the lifecycle can release its blob.
type Repository[T Record] interface {
	Insert(ctx context.Context, rec T) (T, error)
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}

// Descriptor carries the kind-specific lifecycle policy.
type Descriptor struct {
	Kind        string
	Folder      string
	Constraints storage.Constraints
}

// ImageConstraints is the upload policy shared by all image attachments:
// raster formats only, 5 MiB ceiling.
var ImageConstraints = storage.Constraints{
	AllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/webp"},
	MaxBytes:     5 << 20,
}
