package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atelier-studio/backend/internal/middleware"
	"github.com/atelier-studio/backend/internal/response"
)

// refreshCookieName is the HttpOnly cookie carrying the refresh token.
const refreshCookieName = "refreshToken"

// Handler holds HTTP handlers for admin auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Password string `json:"password" example:"12345678"`
}

type tokenData struct {
	Token string `json:"token" example:"eyJhbGci..."`
}

// Login godoc
//
//	@Summary		Admin login
//	@Description	Exchange the admin panel password for a bearer token. In refresh mode a refresh token is additionally set as an HttpOnly cookie.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Admin password"
//	@Success		200		{object}	response.Envelope{data=tokenData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Router			/admin/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.Password == "" {
		response.BadRequest(w, "password is required")
		return
	}

	pair, err := h.svc.Login(req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		response.Unauthorized(w, "invalid password")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	if pair.Refresh != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     refreshCookieName,
			Value:    pair.Refresh,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
			Path:     "/",
			MaxAge:   int(h.svc.RefreshTTL().Seconds()),
		})
	}

	response.OK(w, map[string]string{"token": pair.Access})
}

// Refresh godoc
//
//	@Summary		Refresh access token
//	@Description	Mint a new access token from the refresh cookie.
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=tokenData}
//	@Failure		401	{object}	response.Envelope
//	@Router			/admin/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		response.Unauthorized(w, "refresh token missing")
		return
	}

	access, err := h.svc.Refresh(cookie.Value)
	if err != nil {
		response.Unauthorized(w, "invalid or expired refresh token")
		return
	}

	response.OK(w, map[string]string{"token": access})
}

// Protected godoc
//
//	@Summary		Token liveness check
//	@Description	Returns 200 when the presented bearer token is a valid admin token.
//	@Tags			admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		403	{object}	response.Envelope
//	@Router			/admin/protected [get]
func (h *Handler) Protected(w http.ResponseWriter, r *http.Request) {
	adminID, _ := r.Context().Value(middleware.AdminIDKey).(string)
	response.OK(w, map[string]string{
		"message": "access granted",
		"adminId": adminID,
	})
}
