package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/service"
	"github.com/rs/zerolog"
)

// maxPatchBytes bounds the body of a form patch
const maxPatchBytes = 1 << 20

// AdminHandler handles the back-office endpoints. Each route is bound to
// the admin service of one content kind.
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// Dashboard handles GET /admin/api/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.services.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// List handles GET /admin/api/:kind?q=&facet=
func (h *AdminHandler) List(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := admin.List(c.Request.Context(), c.Query("q"), c.Query("facet"))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}

// Stats handles GET /admin/api/:kind/stats
func (h *AdminHandler) Stats(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := admin.Stats(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// Get handles GET /admin/api/:kind/:id
func (h *AdminHandler) Get(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		item, err := admin.Get(c.Request.Context(), id)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// OpenCreate handles POST /admin/api/:kind/form
func (h *AdminHandler) OpenCreate(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := admin.OpenCreate(c.Request.Context(), draftSession(c))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, form)
	}
}

// OpenEdit handles POST /admin/api/:kind/:id/form
func (h *AdminHandler) OpenEdit(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		form, err := admin.OpenEdit(c.Request.Context(), draftSession(c), id)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, form)
	}
}

// Draft handles GET /admin/api/:kind/form
func (h *AdminHandler) Draft(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := admin.Draft(draftSession(c))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, form)
	}
}

// Patch handles PATCH /admin/api/:kind/form
func (h *AdminHandler) Patch(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPatchBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		form, err := admin.Patch(draftSession(c), body)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, form)
	}
}

// Save handles POST /admin/api/:kind/form/save
func (h *AdminHandler) Save(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := admin.Save(c.Request.Context(), draftSession(c))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// CloseForm handles DELETE /admin/api/:kind/form
func (h *AdminHandler) CloseForm(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin.Close(draftSession(c))
		c.Status(http.StatusNoContent)
	}
}

// Toggle handles POST /admin/api/:kind/:id/toggle/:flag
func (h *AdminHandler) Toggle(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		item, err := admin.Toggle(c.Request.Context(), id, c.Param("flag"))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// Delete handles DELETE /admin/api/:kind/:id?confirm=true
func (h *AdminHandler) Delete(admin service.ContentAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}

		confirmed, _ := strconv.ParseBool(c.Query("confirm"))
		if !confirmed {
			c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Deletion must be confirmed with confirm=true"})
			return
		}

		if _, err := admin.Delete(c.Request.Context(), id, true); err != nil {
			h.fail(c, err)
			return
		}

		h.log.Info().Str("kind", admin.Kind()).Int64("id", id).Msg("Item deleted")
		c.Status(http.StatusNoContent)
	}
}

// Reply handles POST /admin/api/messages/:id/reply
func (h *AdminHandler) Reply(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reply body is required"})
		return
	}

	msg, err := h.services.Messages.Reply(c.Request.Context(), id, req.Body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *AdminHandler) fail(c *gin.Context, err error) {
	writeError(c, h.log, err)
}

// parseID reads the :id path parameter, answering 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

// draftSession returns the key the caller's form drafts are stored under.
func draftSession(c *gin.Context) string {
	return service.SessionKey(currentSession(c).Session.ID)
}
