package resource

import (
	"errors"
	"log"
	"net/http"

	"github.com/atelier-studio/backend/internal/attachment"
	"github.com/atelier-studio/backend/internal/response"
	"github.com/atelier-studio/backend/internal/storage"
)

// WriteError renders a lifecycle error with the matching status code.
// Anything outside the known taxonomy is logged and rendered as a 500.
func WriteError(w http.ResponseWriter, kind string, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.BadRequest(w, verr.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, kind+" not found")
	case errors.Is(err, attachment.ErrMissingAttachment):
		response.BadRequest(w, err.Error())
	case errors.Is(err, storage.ErrUnsupportedMediaType):
		response.BadRequest(w, "unsupported image type")
	case errors.Is(err, storage.ErrPayloadTooLarge):
		response.BadRequest(w, "image exceeds the size limit")
	default:
		log.Printf("%s: %v", kind, err)
		response.InternalError(w)
	}
}
