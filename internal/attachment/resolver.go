package attachment

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/atelier-studio/backend/internal/storage"
)

// Resolver turns raw attachment input into the state to persist, storing
// uploads and arranging cleanup of any superseded blob.
type Resolver struct {
	store storage.Store
}

// NewResolver creates a Resolver backed by the given blob store.
func NewResolver(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve decides the new attachment state for a request. prev is the entity's
// current state (zero on create). The returned cleanup func deletes the
// superseded blob, if any; callers invoke it only after the database write
// succeeds, so a failed write never leaves the record pointing at a deleted
// key. Cleanup failures are logged, never surfaced.
//
// An upload is stored before any cleanup is arranged: if the store call fails,
// the previous blob stays referenced and untouched.
func (r *Resolver) Resolve(ctx context.Context, in Input, prev State, folder string, c storage.Constraints) (State, func(), error) {
	switch in.Source() {
	case SourceFile:
		f := in.File
		obj, err := r.store.Store(ctx, bytes.NewReader(f.Content), int64(len(f.Content)), f.ContentType, folder, c)
		if err != nil {
			return State{}, nil, fmt.Errorf("store attachment: %w", err)
		}
		return State{URL: obj.URL, Key: obj.Key}, r.cleanup(ctx, prev.Key), nil

	case SourceURL:
		return State{URL: in.URL}, r.cleanup(ctx, prev.Key), nil

	default:
		return State{}, nil, ErrMissingAttachment
	}
}

// Discard best-effort deletes the blob at key. Failures are logged and
// swallowed: a leaked blob is harmless, a failed primary operation is not.
func (r *Resolver) Discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := r.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		log.Printf("attachment: cleanup of key %q failed: %v", key, err)
	}
}

// cleanup returns a func that discards key once the caller has committed.
func (r *Resolver) cleanup(ctx context.Context, key string) func() {
	if key == "" {
		return func() {}
	}
	return func() { r.Discard(ctx, key) }
}
