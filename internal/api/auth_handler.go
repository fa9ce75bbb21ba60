package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// sessionKey is the gin context key of the authenticated session
const sessionKey = "session"

// msgNotAuthenticated is the single message of every authentication failure
const msgNotAuthenticated = "Not authenticated"

// AuthHandler handles sign-in, sign-up, sign-out and session lookup
type AuthHandler struct {
	auth auth.Service
	cfg  config.AuthConfig
	log  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(svc auth.Service, cfg config.AuthConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: svc,
		cfg:  cfg,
		log:  log.With().Str("handler", "auth").Logger(),
	}
}

// SignInRequest is the body of POST /api/auth/sign-in
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpRequest is the body of POST /api/auth/sign-up
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// SignIn handles POST /api/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sw, err := h.auth.SignIn(c.Request.Context(), req.Username, req.Password, clientMeta(c))
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.Error().Err(err).Msg("Sign-in failed")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	h.setCookie(c, sw.Session.Token)
	c.JSON(http.StatusOK, sw)
}

// SignUp handles POST /api/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sw, err := h.auth.SignUp(c.Request.Context(), req.Email, req.Password, req.Name, req.Username, clientMeta(c))
	if err != nil {
		var verr *validation.Errors
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		case errors.Is(err, auth.ErrSignUpDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, auth.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Msg("Sign-up failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	h.setCookie(c, sw.Session.Token)
	c.JSON(http.StatusCreated, sw)
}

// SignOut handles POST /api/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.auth.SignOut(c.Request.Context(), h.token(c)); err != nil {
		h.log.Error().Err(err).Msg("Sign-out failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetSession handles GET /api/auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	sw, err := h.auth.GetSession(c.Request.Context(), h.token(c))
	if err != nil {
		h.unauthorized(c, err)
		return
	}
	h.renewCookie(c, sw)
	c.JSON(http.StatusOK, sw)
}

// RequireSession rejects requests without a live session and stores the
// session in the context for the handlers behind it.
func (h *AuthHandler) RequireSession(c *gin.Context) {
	sw, err := h.auth.GetSession(c.Request.Context(), h.token(c))
	if err != nil {
		h.unauthorized(c, err)
		c.Abort()
		return
	}
	h.renewCookie(c, sw)
	c.Set(sessionKey, sw)
	c.Next()
}

func (h *AuthHandler) unauthorized(c *gin.Context, err error) {
	if !errors.Is(err, auth.ErrUnauthorized) {
		h.log.Error().Err(err).Msg("Session lookup failed")
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": msgNotAuthenticated})
}

// token reads the session token from the cookie, falling back to a
// bearer Authorization header.
func (h *AuthHandler) token(c *gin.Context) string {
	if cookie, err := c.Cookie(h.cfg.CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, token, int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.SecureCookie, true)
}

// renewCookie re-issues the session cookie after the expiry was extended.
func (h *AuthHandler) renewCookie(c *gin.Context, sw *models.SessionWithUser) {
	if sw.Refreshed {
		h.setCookie(c, sw.Session.Token)
	}
}

func clientMeta(c *gin.Context) auth.ClientMeta {
	return auth.ClientMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// currentSession returns the session RequireSession stored in the context.
func currentSession(c *gin.Context) *models.SessionWithUser {
	return c.MustGet(sessionKey).(*models.SessionWithUser)
}
