package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/service"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// msgInternalError is the contact endpoint's answer to any store failure
const msgInternalError = "Erreur interne du serveur"

// PublicHandler handles the endpoints of the public site
type PublicHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(services *service.Services, log zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		services: services,
		log:      log.With().Str("handler", "public").Logger(),
	}
}

// GetPortfolio handles GET /api/portfolio
func (h *PublicHandler) GetPortfolio(c *gin.Context) {
	portfolio, err := h.services.Portfolio.GetPortfolio(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// ListProjects handles GET /api/projects?featured=true
func (h *PublicHandler) ListProjects(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.Query("featured"))
	projects, err := h.services.Portfolio.ListProjects(c.Request.Context(), featured)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projects})
}

// ListSkills handles GET /api/skills?category=
func (h *PublicHandler) ListSkills(c *gin.Context) {
	skills, err := h.services.Portfolio.ListSkills(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": skills})
}

// ListExperiences handles GET /api/experiences
func (h *PublicHandler) ListExperiences(c *gin.Context) {
	experiences, err := h.services.Portfolio.ListExperiences(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": experiences})
}

// ListEducation handles GET /api/education
func (h *PublicHandler) ListEducation(c *gin.Context) {
	education, err := h.services.Portfolio.ListEducation(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": education})
}

// ListPosts handles GET /api/posts
func (h *PublicHandler) ListPosts(c *gin.Context) {
	posts, err := h.services.Portfolio.ListPublishedPosts(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

// GetPost handles GET /api/posts/:slug
func (h *PublicHandler) GetPost(c *gin.Context) {
	post, err := h.services.Portfolio.GetPublishedPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// SubmitContact handles POST /api/contact
func (h *PublicHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.MsgFieldsRequired})
		return
	}

	resp, err := h.services.Contact.Submit(c.Request.Context(), &req)
	if err != nil {
		var verr *validation.Errors
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Contact submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}

	c.JSON(http.StatusOK, resp)
}
