package http

import (
	"github.com/gin-gonic/gin"

	"versekeeper/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Session middleware must run before anything that reads the session
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	var verseAud VerseAuditor
	var profileAud ProfileAuditor
	var authAud auth.AuthAuditor
	if cfg.AuditService != nil {
		verseAud = cfg.AuditService
		profileAud = cfg.AuditService
		authAud = cfg.AuditService
	}

	// Auth endpoints
	if cfg.AuthService != nil && cfg.SessionManager != nil {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.AuthConfig, authAud)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Verse endpoints
	versesController := NewVersesController(cfg.Database, verseAud)
	router.POST("/api/verses", versesController.Create)
	router.GET("/api/verses", versesController.List)
	router.GET("/api/verses/:id", versesController.Get)
	router.PATCH("/api/verses/:id", versesController.Update)
	router.DELETE("/api/verses/:id", versesController.Delete)

	// Profile endpoints
	profileController := NewProfileController(cfg.Database, profileAud)
	router.GET("/api/profile", profileController.Get)
	router.PATCH("/api/profile", profileController.Update)

	// Debug endpoints, development builds only
	if cfg.DebugEnabled {
		debugController := NewDebugController(cfg.Database, cfg.AuditService, cfg.Exporter)
		debugController.RegisterRoutes(router)
	}

	return router
}
