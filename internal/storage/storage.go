// Package storage defines the interface for remote blob storage.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrUnsupportedMediaType is returned when the declared content type is not allowed.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// ErrPayloadTooLarge is returned when the content exceeds the size ceiling.
var ErrPayloadTooLarge = errors.New("payload too large")

// Constraints limits what a single store call will accept.
type Constraints struct {
	// AllowedTypes lists acceptable content types (e.g. "image/jpeg").
	AllowedTypes []string
	// MaxBytes is the size ceiling; content larger than this is rejected.
	MaxBytes int64
}

// Allows reports whether the given content type is in the allowed set.
// An empty allowed set accepts anything.
func (c Constraints) Allows(contentType string) bool {
	if len(c.AllowedTypes) == 0 {
		return true
	}
	for _, t := range c.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// Object identifies a stored blob: the public URL clients load it from and
// the opaque key used to delete it later.
type Object struct {
	URL string
	Key string
}

// Store is the interface for uploading and removing blobs.
type Store interface {
	// Store uploads content under a fresh key inside folder, enforcing c.
	// size must be the exact byte count of content.
	Store(ctx context.Context, content io.Reader, size int64, contentType, folder string, c Constraints) (Object, error)
	// Delete removes the blob at key. Deleting a nonexistent key is not an
	// error: cleanup must never fail the CRUD operation it accompanies.
	Delete(ctx context.Context, key string) error
}
