package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Integrity
		Debug
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Auth struct {
		SessionLifetime time.Duration
		SecureCookies   bool // Set to false for local dev without HTTPS

		// Rate limiting for login attempts (slows phone-number enumeration)
		MaxLoginAttempts int
		RateLimitWindow  time.Duration
		LockoutDuration  time.Duration
	}
	Integrity struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Debug struct {
		Enabled   bool   // Expose /debug endpoints (listing, reset, export)
		ExportDir string // Directory for JSON snapshot exports
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		AuditRetentionDays       int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8480)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("audit_retention_days", 30)

	// Auth defaults
	v.SetDefault("auth_session_lifetime", "720h") // 30 days; mobile sessions are long-lived
	v.SetDefault("auth_secure_cookies", true)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	// Integrity scan defaults
	v.SetDefault("integrity_scan_enabled", true)
	v.SetDefault("integrity_scan_schedule", "0 * * * *") // Hourly at :00

	// Debug defaults
	v.SetDefault("debug_mode", false)
	v.SetDefault("debug_export_dir", "./exports")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			SessionLifetime:  v.GetDuration("AUTH_SESSION_LIFETIME"),
			SecureCookies:    v.GetBool("AUTH_SECURE_COOKIES"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Integrity: Integrity{
			Enabled:  v.GetBool("INTEGRITY_SCAN_ENABLED"),
			Schedule: v.GetString("INTEGRITY_SCAN_SCHEDULE"),
		},
		Debug: Debug{
			Enabled:   v.GetBool("DEBUG_MODE"),
			ExportDir: v.GetString("DEBUG_EXPORT_DIR"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			AuditRetentionDays:       v.GetInt("AUDIT_RETENTION_DAYS"),
		},
	}
}
