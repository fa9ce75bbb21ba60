package api

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/service"
)

// Export handles GET /admin/api/:kind/export?format=ndjson|json|csv
// Streams every item of the kind directly to the response
func (h *AdminHandler) Export(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.DefaultQuery("format", "ndjson")

		h.log.Info().
			Str("kind", admin.Kind()).
			Str("format", format).
			Msg("Starting streaming export")

		if err := admin.Export(c.Request.Context(), c.Writer, format); err != nil {
			if c.Writer.Written() {
				// Can't return error JSON after streaming has started
				h.log.Error().Err(err).Str("kind", admin.Kind()).Msg("Export failed")
				return
			}
			h.fail(c, err)
		}
	}
}
