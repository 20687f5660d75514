package team

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/resource"
	"github.com/atelier-studio/backend/internal/response"
)

// Handler holds HTTP handlers for team member endpoints.
type Handler struct {
	lc *resource.Lifecycle[*Member]
}

// NewHandler creates a new team Handler.
func NewHandler(lc *resource.Lifecycle[*Member]) *Handler {
	return &Handler{lc: lc}
}

// List godoc
//
//	@Summary	List team members
//	@Tags		team
//	@Produce	json
//	@Success	200	{object}	response.Envelope{data=[]Member}
//	@Router		/team [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.lc.List(r.Context())
	if err != nil {
		resource.WriteError(w, "team member", err)
		return
	}
	response.OK(w, members)
}

// Get godoc
//
//	@Summary	Get one team member
//	@Tags		team
//	@Produce	json
//	@Param		id	path		string	true	"Member ID"
//	@Success	200	{object}	response.Envelope{data=Member}
//	@Failure	404	{object}	response.Envelope
//	@Router		/team/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	m, err := h.lc.Get(r.Context(), id)
	if err != nil {
		resource.WriteError(w, "team member", err)
		return
	}
	response.OK(w, m)
}

// Create godoc
//
//	@Summary		Add a team member
//	@Description	Multipart form with name, position, optional social links, and either a photoUrl field or an uploaded image file.
//	@Tags			team
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Success		201	{object}	response.Envelope{data=Member}
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Router			/team [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := attachment.FromRequest(r, "photoUrl")
	if err != nil {
		response.BadRequest(w, "invalid form data")
		return
	}

	created, err := h.lc.Create(r.Context(), memberFromForm(r), in)
	if err != nil {
		resource.WriteError(w, "team member", err)
		return
	}
	response.Created(w, created)
}

// Update godoc
//
//	@Summary	Update a team member
//	@Tags		team
//	@Accept		mpfd
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Member ID"
//	@Success	200	{object}	response.Envelope{data=Member}
//	@Failure	400	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/team/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	in, err := attachment.FromRequest(r, "photoUrl")
	if err != nil {
		response.BadRequest(w, "invalid form data")
		return
	}

	updated, err := h.lc.Update(r.Context(), id, memberFromForm(r), in)
	if err != nil {
		resource.WriteError(w, "team member", err)
		return
	}
	response.OK(w, updated)
}

// Delete godoc
//
//	@Summary	Delete a team member
//	@Tags		team
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Member ID"
//	@Success	200	{object}	response.Envelope
//	@Failure	404	{object}	response.Envelope
//	@Router		/team/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}
	if err := h.lc.Delete(r.Context(), id); err != nil {
		resource.WriteError(w, "team member", err)
		return
	}
	response.OK(w, map[string]string{"message": "team member deleted"})
}

// memberID extracts and validates the id route parameter. A malformed id can
// never resolve, so it is reported as not found.
func memberID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		response.NotFound(w, "team member not found")
		return "", false
	}
	return id, true
}

func memberFromForm(r *http.Request) *Member {
	return &Member{
		Name:      strings.TrimSpace(r.FormValue("name")),
		Position:  strings.TrimSpace(r.FormValue("position")),
		Facebook:  r.FormValue("facebook"),
		Instagram: r.FormValue("instagram"),
		Linkedin:  r.FormValue("linkedin"),
		Twitter:   r.FormValue("twitter"),
	}
}
