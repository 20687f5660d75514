package resource

import (
	"context"
	"fmt"

	"github.com/atelier-studio/backend/internal/attachment"
)

// Lifecycle orchestrates CRUD for one entity kind: validate required fields,
// resolve the attachment input, persist, and release superseded blobs. The
// ordering invariant is store-new-before-delete-old: a blob is only discarded
// after both its replacement and the database write have succeeded.
type Lifecycle[T Record] struct {
	repo     Repository[T]
	resolver *attachment.Resolver
	desc     Descriptor
	validate func(T) []string
}

// NewLifecycle wires a lifecycle manager for one kind.
func NewLifecycle[T Record](repo Repository[T], resolver *attachment.Resolver, desc Descriptor, validate func(T) []string) *Lifecycle[T] {
	return &Lifecycle[T]{repo: repo, resolver: resolver, desc: desc, validate: validate}
}

// Create validates rec, resolves its attachment, and persists it.
func (l *Lifecycle[T]) Create(ctx context.Context, rec T, in attachment.Input) (T, error) {
	var zero T
	if missing := l.validate(rec); len(missing) > 0 {
		return zero, &ValidationError{Fields: missing}
	}

	state, cleanup, err := l.resolver.Resolve(ctx, in, attachment.State{}, l.desc.Folder, l.desc.Constraints)
	if err != nil {
		return zero, err
	}
	rec.SetAttachment(state)

	created, err := l.repo.Insert(ctx, rec)
	if err != nil {
		// the record never existed, so a stored upload is already orphaned
		l.resolver.Discard(ctx, state.Key)
		return zero, fmt.Errorf("insert %s: %w", l.desc.Kind, err)
	}
	cleanup()
	return created, nil
}

// List returns all records, newest first.
func (l *Lifecycle[T]) List(ctx context.Context) ([]T, error) {
	return l.repo.List(ctx)
}

// Get fetches one record by id.
func (l *Lifecycle[T]) Get(ctx context.Context, id string) (T, error) {
	return l.repo.Get(ctx, id)
}

// Update re-validates rec, resolves the attachment against the existing
// record's state, persists, and then releases the superseded blob.
func (l *Lifecycle[T]) Update(ctx context.Context, id string, rec T, in attachment.Input) (T, error) {
	var zero T
	prev, err := l.repo.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if missing := l.validate(rec); len(missing) > 0 {
		return zero, &ValidationError{Fields: missing}
	}

	state, cleanup, err := l.resolver.Resolve(ctx, in, prev.Attachment(), l.desc.Folder, l.desc.Constraints)
	if err != nil {
		return zero, err
	}
	rec.SetAttachment(state)

	updated, err := l.repo.Update(ctx, id, rec)
	if err != nil {
		// the write failed, so the record still references the old blob;
		// drop the freshly stored one instead
		if state.Key != "" && state.Key != prev.Attachment().Key {
			l.resolver.Discard(ctx, state.Key)
		}
		return zero, fmt.Errorf("update %s: %w", l.desc.Kind, err)
	}
	cleanup()
	return updated, nil
}

// Delete removes the record and best-effort releases its blob, if any.
func (l *Lifecycle[T]) Delete(ctx context.Context, id string) error {
	deleted, err := l.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if key := deleted.Attachment().Key; key != "" {
		l.resolver.Discard(ctx, key)
	}
	return nil
}
