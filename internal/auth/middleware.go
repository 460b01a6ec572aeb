package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"versekeeper/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyPhone  = "auth_phone"
)

// Middleware handles authentication for HTTP requests. Every client is the
// mobile app talking JSON, so unauthenticated requests get 401 responses
// rather than redirects.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	publicPaths    map[string]bool
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	publicPaths := map[string]bool{
		"/health":            true,
		"/ping":              true,
		"/api/auth/register": true,
		"/api/auth/login":    true,
	}

	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		publicPaths:    publicPaths,
	}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		user := m.trySessionAuth(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyPhone, user.Phone)
		c.Next()
	}
}

// trySessionAuth resolves the session cookie to an account. A session whose
// user has since been deleted (database reset) does not authenticate.
func (m *Middleware) trySessionAuth(c *gin.Context) *entities.User {
	if m.sessionManager == nil {
		return nil
	}

	userID := m.sessionManager.GetUserID(c.Request)
	if userID == "" {
		return nil
	}

	user, err := m.service.GetUserByID(userID)
	if err != nil {
		return nil
	}

	return user
}

// GetUserID returns the authenticated user id from the Gin context, or ""
// for unauthenticated requests.
func GetUserID(c *gin.Context) string {
	id, ok := c.Get(ContextKeyUserID)
	if !ok {
		return ""
	}
	userID, _ := id.(string)
	return userID
}
