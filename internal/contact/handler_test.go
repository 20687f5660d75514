package contact_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/atelier-studio/backend/internal/contact"
	"github.com/atelier-studio/backend/internal/mail"
)

type fakeRepo struct {
	inserted []*contact.Submission
}

func (f *fakeRepo) Insert(_ context.Context, s *contact.Submission) (*contact.Submission, error) {
	s.ID = fmt.Sprintf("sub-%d", len(f.inserted)+1)
	s.CreatedAt = time.Now()
	f.inserted = append(f.inserted, s)
	return s, nil
}

// fakeMailer signals each notification on a channel so tests can wait for
// the async dispatch.
type fakeMailer struct {
	sent chan mail.Notification
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan mail.Notification, 1)}
}

func (f *fakeMailer) SendContactNotification(_ context.Context, n mail.Notification) error {
	f.sent <- n
	return nil
}

func submit(t *testing.T, h *contact.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

const validBody = `{"name":"Ana Novak","email":"ana@example.com","phone":"+420777123456","message":"I'd like a quote."}`

func TestSubmitStoresAndNotifies(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	mailer := newFakeMailer()
	h := contact.NewHandler(contact.NewService(repo, mailer))

	rec := submit(t, h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.inserted, 1)

	var env struct {
		Success bool               `json:"success"`
		Data    contact.Submission `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.True(t, env.Success)
	require.NotEmpty(t, env.Data.ID)
	require.Equal(t, "Ana Novak", env.Data.Name)

	select {
	case n := <-mailer.sent:
		require.Equal(t, "ana@example.com", n.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never dispatched")
	}
}

func TestSubmitWithoutMailer(t *testing.T) {
	t.Parallel()
	repo := &fakeRepo{}
	h := contact.NewHandler(contact.NewService(repo, nil))

	rec := submit(t, h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.inserted, 1)
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"missing fields", `{"name":"Ana Novak"}`},
		{"bad name", `{"name":"A1","email":"ana@example.com","phone":"+420777123456"}`},
		{"bad email", `{"name":"Ana Novak","email":"not-an-email","phone":"+420777123456"}`},
		{"phone too short", `{"name":"Ana Novak","email":"ana@example.com","phone":"123"}`},
		{"phone with letters", `{"name":"Ana Novak","email":"ana@example.com","phone":"+42077712345a"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			h := contact.NewHandler(contact.NewService(repo, nil))

			rec := submit(t, h, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Empty(t, repo.inserted, "rejected input must not be stored")
		})
	}
}

func TestRateLimitSecondRequestWithinWindow(t *testing.T) {
	t.Parallel()
	h := contact.NewHandler(contact.NewService(&fakeRepo{}, nil))

	r := chi.NewRouter()
	r.With(contact.RateLimit()).Post("/contact", h.Submit)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:40000"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusCreated, do().Code)

	second := do()
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestRateLimitIsPerAddress(t *testing.T) {
	t.Parallel()
	h := contact.NewHandler(contact.NewService(&fakeRepo{}, nil))

	r := chi.NewRouter()
	r.With(contact.RateLimit()).Post("/contact", h.Submit)

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusCreated, do("203.0.113.8:40000").Code)
	require.Equal(t, http.StatusCreated, do("203.0.113.9:40000").Code)
}
