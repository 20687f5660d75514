package blog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/resource"
	"github.com/atelier-studio/backend/internal/response"
)

// Pager serves paginated post listings.
type Pager interface {
	ListPage(ctx context.Context, offset, limit int) ([]*Post, error)
	Count(ctx context.Context) (int, error)
}

// Handler holds HTTP handlers for blog endpoints.
type Handler struct {
	lc    *resource.Lifecycle[*Post]
	pager Pager
}

// NewHandler creates a new blog Handler.
func NewHandler(lc *resource.Lifecycle[*Post], pager Pager) *Handler {
	return &Handler{lc: lc, pager: pager}
}

type pageData struct {
	Posts       []*Post `json:"posts"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
}

// List godoc
//
//	@Summary	List blog posts (paginated)
//	@Tags		blog
//	@Produce	json
//	@Param		page	query		int	false	"1-based page number (default 1)"
//	@Success	200		{object}	response.Envelope{data=pageData}
//	@Router		/blog [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	posts, err := h.pager.ListPage(r.Context(), (page-1)*PageSize, PageSize)
	if err != nil {
		resource.WriteError(w, "blog post", err)
		return
	}
	total, err := h.pager.Count(r.Context())
	if err != nil {
		resource.WriteError(w, "blog post", err)
		return
	}

	response.OK(w, pageData{
		Posts:       posts,
		CurrentPage: page,
		TotalPages:  TotalPages(total),
	})
}

// Get godoc
//
//	@Summary	Get one blog post
//	@Tags		blog
//	@Produce	json
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	response.Envelope{data=Post}
//	@Failure	404	{object}	response.Envelope
//	@Router		/blog/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	p, err := h.lc.Get(r.Context(), id)
	if err != nil {
		resource.WriteError(w, "blog post", err)
		return
	}
	response.OK(w, p)
}

// Create godoc
//
//	@Summary		Create a blog post
//	@Description	Multipart form with title, category, date (YYYY-MM-DD), description, optional youtubeLink, and either an imageUrl field or an uploaded image file.
//	@Tags			blog
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	response.Envelope{data=Post}
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Router			/blog [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := attachment.FromRequest(r, "imageUrl")
	if err != nil {
		response.BadRequest(w, "invalid form data")
		return
	}

	created, err := h.lc.Create(r.Context(), postFromForm(r), in)
	if err != nil {
		resource.WriteError(w, "blog post", err)
		return
	}
	response.Created(w, created)
}

// Update godoc
//
//	@Summary	Update a blog post
//	@Tags		blog
//	@Accept		mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	response.Envelope{data=Post}
//	@Failure	400	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/blog/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	in, err := attachment.FromRequest(r, "imageUrl")
	if err != nil {
		response.BadRequest(w, "invalid form data")
		return
	}

	updated, err := h.lc.Update(r.Context(), id, postFromForm(r), in)
	if err != nil {
		resource.WriteError(w, "blog post", err)
		return
	}
	response.OK(w, updated)
}

// Delete godoc
//
//	@Summary	Delete a blog post
//	@Tags		blog
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/blog/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	if err := h.lc.Delete(r.Context(), id); err != nil {
		resource.WriteError(w, "blog post", err)
		return
	}
	response.OK(w, map[string]string{"message": "blog post deleted"})
}

func postID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		response.NotFound(w, "blog post not found")
		return "", false
	}
	return id, true
}

func postFromForm(r *http.Request) *Post {
	return &Post{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Date:        strings.TrimSpace(r.FormValue("date")),
		Description: strings.TrimSpace(r.FormValue("description")),
		YoutubeLink: strings.TrimSpace(r.FormValue("youtubeLink")),
	}
}
