package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/content"
	"github.com/portfolio-api/internal/service"
	"github.com/portfolio-api/pkg/logger"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(requestIDMiddleware())
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Auth.BaseURL))

	// Handlers
	publicHandler := NewPublicHandler(services, log)
	authHandler := NewAuthHandler(services.Auth, cfg.Auth, log)
	adminHandler := NewAdminHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)

	// Public site
	public := router.Group("/api")
	{
		public.GET("/portfolio", publicHandler.GetPortfolio)
		public.GET("/projects", publicHandler.ListProjects)
		public.GET("/skills", publicHandler.ListSkills)
		public.GET("/experiences", publicHandler.ListExperiences)
		public.GET("/education", publicHandler.ListEducation)
		public.GET("/posts", publicHandler.ListPosts)
		public.GET("/posts/:slug", publicHandler.GetPost)

		public.POST("/contact", publicHandler.SubmitContact)
		public.GET("/contact", methodNotAllowed)
	}

	// Authentication
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/sign-in", authHandler.SignIn)
		authGroup.POST("/sign-up", authHandler.SignUp)
		authGroup.POST("/sign-out", authHandler.SignOut)
		authGroup.GET("/session", authHandler.GetSession)
	}

	// Back office
	admin := router.Group("/admin/api", authHandler.RequireSession)
	{
		admin.GET("/dashboard", adminHandler.Dashboard)

		for name, svc := range services.Admin {
			kind := admin.Group("/" + name)
			kind.GET("", adminHandler.List(svc))
			kind.GET("/stats", adminHandler.Stats(svc))
			kind.GET("/export", adminHandler.Export(svc))
			kind.GET("/:id", adminHandler.Get(svc))
			kind.POST("/:id/toggle/:flag", adminHandler.Toggle(svc))
			kind.DELETE("/:id", adminHandler.Delete(svc))

			if svc.HasForm() {
				kind.POST("/form", adminHandler.OpenCreate(svc))
				kind.GET("/form", adminHandler.Draft(svc))
				kind.PATCH("/form", adminHandler.Patch(svc))
				kind.DELETE("/form", adminHandler.CloseForm(svc))
				kind.POST("/form/save", adminHandler.Save(svc))
				kind.POST("/:id/form", adminHandler.OpenEdit(svc))
			}
		}

		admin.POST("/"+content.KindMessages+"/:id/reply", adminHandler.Reply)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   logger.ServiceName,
	})
}

// methodNotAllowed answers verbs a route does not support
func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Méthode non autorisée"})
}

// requestIDMiddleware propagates or mints a request id
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString("request_id")).
					Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}

// corsMiddleware allows the site's own origin, with credentials so the
// session cookie is sent
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		c.Writer.Header().Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
