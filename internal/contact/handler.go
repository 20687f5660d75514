package contact

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/httprate"

	"github.com/atelier-studio/backend/internal/response"
)

// rateWindow is the per-address submission window.
const rateWindow = time.Minute

var (
	nameRegex  = regexp.MustCompile(`^[A-Za-zÀ-ÿА-Яа-яЁёІіЇїЄє' -]{2,}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// Handler holds HTTP handlers for the contact form.
type Handler struct {
	svc *Service
}

// NewHandler creates a new contact Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RateLimit returns middleware allowing one submission per source address
// per minute. Excess requests get a 429 with a Retry-After hint.
func RateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(1, rateWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, int(rateWindow.Seconds()))
		}),
	)
}

type submitRequest struct {
	Name    string `json:"name" example:"Ana Novak"`
	Email   string `json:"email" example:"ana@example.com"`
	Phone   string `json:"phone" example:"+420777123456"`
	Message string `json:"message" example:"I'd like a quote."`
}

// Submit godoc
//
//	@Summary		Submit the contact form
//	@Description	Stores the submission and emails a confirmation to the client and a copy to the site owner. Limited to one submission per address per minute.
//	@Tags			contact
//	@Accept			json
//	@Produce		json
//	@Param			request	body		submitRequest	true	"Contact details"
//	@Success		201		{object}	response.Envelope{data=Submission}
//	@Failure		400		{object}	response.Envelope
//	@Failure		429		{object}	response.Envelope
//	@Router			/contact [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Phone == "" {
		response.BadRequest(w, "name, email and phone are required")
		return
	}
	if !nameRegex.MatchString(req.Name) {
		response.BadRequest(w, "invalid name format")
		return
	}
	if !emailRegex.MatchString(req.Email) {
		response.BadRequest(w, "invalid email format")
		return
	}
	if !phoneRegex.MatchString(req.Phone) {
		response.BadRequest(w, "invalid phone number format")
		return
	}

	created, err := h.svc.Create(r.Context(), &Submission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Created(w, created)
}
