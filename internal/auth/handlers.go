package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"versekeeper/internal/config"
)

// AuthAuditor records authentication events. Satisfied by the audit service;
// may be nil when auditing is not wired (tests).
type AuthAuditor interface {
	LogAuth(userID, action, ipAddr, userAgent string, success bool)
}

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
	auditor        AuthAuditor
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, cfg config.Auth, auditor AuthAuditor) *AuthController {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
		auditor:        auditor,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/auth/register", ac.Register)
	router.POST("/api/auth/login", ac.Login)
	router.POST("/api/auth/logout", ac.Logout)
	router.GET("/api/auth/session", ac.Session)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

type registerRequest struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Denomination         string `json:"denomination"`
	PreferredTranslation string `json:"preferredTranslation"`
}

type loginRequest struct {
	Phone string `json:"phone"`
}

// Register creates a new account and starts a session for it.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ac.service.Register(RegisterParams{
		Name:                 req.Name,
		Phone:                req.Phone,
		Denomination:         req.Denomination,
		PreferredTranslation: req.PreferredTranslation,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPhoneTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNameRequired), errors.Is(err, ErrNameInvalid),
			errors.Is(err, ErrPhoneRequired), errors.Is(err, ErrPhoneInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to register user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session creation failed"})
		return
	}

	ac.audit(user.ID, "register", c, true)
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login authenticates by phone number and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := c.ClientIP()
	if allowed, retryAfter := ac.rateLimiter.Allow(ip, phone); !allowed {
		c.Header("Retry-After", retryAfter.String())
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":       ErrAccountLocked.Error(),
			"retry_after": retryAfter.String(),
		})
		return
	}

	user, err := ac.service.Login(phone)
	if err != nil {
		ac.rateLimiter.RecordFailure(ip, phone)
		ac.audit("", "login", c, false)

		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no account for this phone number"})
			return
		}
		log.Printf("Failed to log in %s: %v", phone, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session creation failed"})
		return
	}

	ac.rateLimiter.RecordSuccess(ip, phone)
	ac.audit(user.ID, "login", c, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout destroys the current session. Safe to call unauthenticated.
func (ac *AuthController) Logout(c *gin.Context) {
	userID := ac.sessionManager.GetUserID(c.Request)

	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	if userID != "" {
		ac.audit(userID, "logout", c, true)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Session reports the current session's user, letting the client restore
// state after a restart without re-sending the phone number.
func (ac *AuthController) Session(c *gin.Context) {
	userID := ac.sessionManager.GetUserID(c.Request)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	user, err := ac.service.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AuthController) audit(userID, action string, c *gin.Context, success bool) {
	if ac.auditor == nil {
		return
	}
	ac.auditor.LogAuth(userID, action, c.ClientIP(), c.Request.UserAgent(), success)
}
