package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"versekeeper/internal/audit"
	"versekeeper/internal/auth"
	"versekeeper/internal/config"
	"versekeeper/internal/database"
	http_controllers "versekeeper/internal/http"
	"versekeeper/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires all components together and serves until shutdown.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting VerseKeeper v%s", version)

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(db.Audit)
	exporter := audit.NewExporter(cfg.Debug.ExportDir)

	// Authentication
	authService := auth.NewService(db)

	sqlDB, err := db.SQLDB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	authMiddleware := auth.NewMiddleware(authService, sessionManager)

	if cfg.Debug.Enabled {
		log.Printf("Debug mode enabled - /debug endpoints are exposed")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		AuditService:   auditService,
		Exporter:       exporter,
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		AuthConfig:     cfg.Auth,
		DebugEnabled:   cfg.Debug.Enabled,
		Version:        version,
	})

	// Background integrity scan
	integrityScheduler := scheduler.NewIntegrityScheduler(db, auditService, cfg.Integrity)
	if err := integrityScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start integrity scheduler: %v", err)
	}

	// Retention sweep for the activity log, once a day
	retention := time.Duration(cfg.Global.AuditRetentionDays) * 24 * time.Hour
	retentionCtx, stopRetention := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if deleted, err := auditService.DeleteOldEvents(retention); err != nil {
					log.Printf("Audit retention sweep failed: %v", err)
				} else if deleted > 0 {
					log.Printf("Audit retention sweep deleted %d events", deleted)
				}
			case <-retentionCtx.Done():
				return
			}
		}
	}()

	Serve(router, cfg, func(ctx context.Context) {
		stopRetention()
		integrityScheduler.Stop()
	})
}
