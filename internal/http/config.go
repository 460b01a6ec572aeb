package http

import (
	"versekeeper/internal/audit"
	"versekeeper/internal/auth"
	"versekeeper/internal/config"
	"versekeeper/internal/database"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	// Core dependencies
	Database     *database.Database
	AuditService *audit.Service
	Exporter     *audit.Exporter

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth

	// Debug endpoints (development only)
	DebugEnabled bool

	// Application info
	Version string
}
