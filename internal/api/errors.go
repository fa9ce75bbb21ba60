package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/service"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// errorStatus maps a service error to its HTTP status and public message.
// Unknown errors are 500 with no detail.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, content.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "Item not found"
	case errors.Is(err, content.ErrInvalidForm):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, content.ErrUnknownFacet),
		errors.Is(err, content.ErrUnknownFlag),
		errors.Is(err, service.ErrInvalidPatch),
		errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, content.ErrNoForm):
		return http.StatusMethodNotAllowed, content.ErrNoForm.Error()
	case errors.Is(err, service.ErrNoDraft), errors.Is(err, content.ErrFormClosed):
		return http.StatusConflict, service.ErrNoDraft.Error()
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, "Slug already in use"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeError responds with the mapped status. Invalid forms also carry the
// per-field failures.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}

	body := gin.H{"error": msg}
	var verr *validation.Errors
	if errors.As(err, &verr) {
		body["error"] = content.ErrInvalidForm.Error()
		body["fields"] = verr.Fields
	}
	c.JSON(status, body)
}
