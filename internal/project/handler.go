package project

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/resource"
	"github.com/atelier-studio/backend/internal/response"
)

// Handler holds HTTP handlers for project endpoints.
type Handler struct {
	lc *resource.Lifecycle[*Project]
}

// NewHandler creates a new project Handler.
func NewHandler(lc *resource.Lifecycle[*Project]) *Handler {
	return &Handler{lc: lc}
}

// List godoc
//
//	@Summary	List projects
//	@Tags		projects
//	@Produce	json
//	@Success	200	{object}	response.Envelope{data=[]Project}
//	@Router		/projects [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.lc.List(r.Context())
	if err != nil {
		resource.WriteError(w, "project", err)
		return
	}
	response.OK(w, projects)
}

// Get godoc
//
//	@Summary	Get one project
//	@Tags		projects
//	@Produce	json
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	response.Envelope{data=Project}
//	@Failure	404	{object}	response.Envelope
//	@Router		/projects/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	p, err := h.lc.Get(r.Context(), id)
	if err != nil {
		resource.WriteError(w, "project", err)
		return
	}
	response.OK(w, p)
}

// Create godoc
//
//	@Summary		Add a project
//	@Description	Multipart form with title, category, description, and either an imageUrl field or an uploaded image file.
//	@Tags			projects
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	response.Envelope{data=Project}
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Router			/projects [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := attachment.FromRequest(r, "imageUrl")
	if err != nil {
		response.BadRequest(w, "invalid form data")
		return
	}

	created, err := h.lc.Create(r.Context(), projectFromForm(r), in)
	if err != nil {
		resource.WriteError(w, "project", err)
		return
	}
	response.Created(w, created)
}

// Update godoc
//
//	@Summary	Update a project
//	@Tags		projects
//	@Accept		mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	response.Envelope{data=Project}
//	@Failure	400	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/projects/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	in, err := attachment.FromRequest(r, "imageUrl")
	if err != nil {
		response.BadRequest(w, "invalid form data")
		return
	}

	updated, err := h.lc.Update(r.Context(), id, projectFromForm(r), in)
	if err != nil {
		resource.WriteError(w, "project", err)
		return
	}
	response.OK(w, updated)
}

// Delete godoc
//
//	@Summary	Delete a project
//	@Tags		projects
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Project ID"
//	@Success	200	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/projects/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	if err := h.lc.Delete(r.Context(), id); err != nil {
		resource.WriteError(w, "project", err)
		return
	}
	response.OK(w, map[string]string{"message": "project deleted"})
}

func projectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		response.NotFound(w, "project not found")
		return "", false
	}
	return id, true
}

func projectFromForm(r *http.Request) *Project {
	return &Project{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
}
