package resource_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/resource"
	"github.com/atelier-studio/backend/internal/storage"
)

// card is a minimal attachment-carrying record for lifecycle tests.
type card struct {
	ID    string
	Title string
	URL   string
	Key   *string
}

func (c *card) Attachment() attachment.State     { return attachment.StateOf(c.URL, c.Key) }
func (c *card) SetAttachment(s attachment.State) { c.URL = s.URL; c.Key = s.KeyPtr() }

func validateCard(c *card) []string {
	var missing []string
	if c.Title == "" {
		missing = append(missing, "title")
	}
	return missing
}

// memRepo is an in-memory Repository[*card].
type memRepo struct {
	seq        int
	items      map[string]*card
	order      []string
	failUpdate bool
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]*card{}}
}

func (m *memRepo) Insert(_ context.Context, rec *card) (*card, error) {
	m.seq++
	rec.ID = fmt.Sprintf("id-%d", m.seq)
	m.items[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return rec, nil
}

func (m *memRepo) List(_ context.Context) ([]*card, error) {
	out := make([]*card, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.items[m.order[i]])
	}
	return out, nil
}

func (m *memRepo) Get(_ context.Context, id string) (*card, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, resource.ErrNotFound
	}
	return c, nil
}

func (m *memRepo) Update(_ context.Context, id string, rec *card) (*card, error) {
	if m.failUpdate {
		return nil, errors.New("write failed")
	}
	if _, ok := m.items[id]; !ok {
		return nil, resource.ErrNotFound
	}
	rec.ID = id
	m.items[id] = rec
	return rec, nil
}

func (m *memRepo) Delete(_ context.Context, id string) (*card, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, resource.ErrNotFound
	}
	delete(m.items, id)
	return c, nil
}

// fakeStore counts blob-store calls.
type fakeStore struct {
	stored  []string
	deleted []string
}

func (f *fakeStore) Store(_ context.Context, _ io.Reader, _ int64, _, folder string, _ storage.Constraints) (storage.Object, error) {
	key := fmt.Sprintf("%s/blob-%d", folder, len(f.stored))
	f.stored = append(f.stored, key)
	return storage.Object{URL: "https://cdn.test/" + key, Key: key}, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func newLifecycle(repo *memRepo, store *fakeStore) *resource.Lifecycle[*card] {
	desc := resource.Descriptor{Kind: "card", Folder: "cards", Constraints: resource.ImageConstraints}
	return resource.NewLifecycle[*card](repo, attachment.NewResolver(store), desc, validateCard)
}

func fileInput() attachment.Input {
	return attachment.Input{File: &attachment.Upload{Content: []byte("img"), ContentType: "image/png"}}
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()
	lc := newLifecycle(newMemRepo(), &fakeStore{})

	_, err := lc.Create(context.Background(), &card{}, fileInput())
	var verr *resource.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != "title" {
		t.Fatalf("unexpected missing fields: %v", verr.Fields)
	}
}

func TestCreateUploadSetsKey(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	lc := newLifecycle(newMemRepo(), store)

	created, err := lc.Create(context.Background(), &card{Title: "a"}, fileInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Key == nil || *created.Key == "" {
		t.Fatal("uploaded attachment must persist a key")
	}
	if created.URL != "https://cdn.test/"+*created.Key {
		t.Fatalf("URL %q does not match stored object", created.URL)
	}
}

func TestCreateURLHasNoKey(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	lc := newLifecycle(newMemRepo(), store)

	created, err := lc.Create(context.Background(), &card{Title: "a"}, attachment.Input{URL: "https://example.com/i.png"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Key != nil {
		t.Fatalf("URL-sourced attachment must not persist a key, got %q", *created.Key)
	}
	if len(store.stored) != 0 {
		t.Fatal("no blob should be stored for a URL attachment")
	}
}

func TestUpdateNotFound(t *testing.T) {
	t.Parallel()
	lc := newLifecycle(newMemRepo(), &fakeStore{})

	_, err := lc.Update(context.Background(), "missing", &card{Title: "a"}, fileInput())
	if !errors.Is(err, resource.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpdateReplacesBlobAfterCommit(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	repo := newMemRepo()
	lc := newLifecycle(repo, store)

	created, err := lc.Create(context.Background(), &card{Title: "a"}, fileInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldKey := *created.Key

	updated, err := lc.Update(context.Background(), created.ID, &card{Title: "b"}, fileInput())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if *updated.Key == oldKey {
		t.Fatal("update should reference the new key")
	}
	if len(store.deleted) != 1 || store.deleted[0] != oldKey {
		t.Fatalf("old key should be deleted once, got %v", store.deleted)
	}
}

func TestUpdateFailureDiscardsNewBlob(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	repo := newMemRepo()
	lc := newLifecycle(repo, store)

	created, err := lc.Create(context.Background(), &card{Title: "a"}, fileInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldKey := *created.Key

	repo.failUpdate = true
	if _, err := lc.Update(context.Background(), created.ID, &card{Title: "b"}, fileInput()); err == nil {
		t.Fatal("expected update failure to propagate")
	}

	if len(store.deleted) != 1 || store.deleted[0] == oldKey {
		t.Fatalf("only the new orphaned blob may be discarded, got %v", store.deleted)
	}
	if repo.items[created.ID].Key == nil || *repo.items[created.ID].Key != oldKey {
		t.Fatal("record must still reference the old key after a failed update")
	}
}

func TestDeleteReleasesBlob(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	repo := newMemRepo()
	lc := newLifecycle(repo, store)

	created, err := lc.Create(context.Background(), &card{Title: "a"}, fileInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := lc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != *created.Key {
		t.Fatalf("entity blob should be deleted, got %v", store.deleted)
	}
}

func TestDeleteURLEntityTouchesNoBlob(t *testing.T) {
	t.Parallel()
	store := &fakeStore{}
	repo := newMemRepo()
	lc := newLifecycle(repo, store)

	created, err := lc.Create(context.Background(), &card{Title: "a"}, attachment.Input{URL: "https://example.com/i.png"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := lc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatalf("no blob-store call expected, got %v", store.deleted)
	}
}

func TestDeleteNotFound(t *testing.T) {
	t.Parallel()
	lc := newLifecycle(newMemRepo(), &fakeStore{})

	if err := lc.Delete(context.Background(), "missing"); !errors.Is(err, resource.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
