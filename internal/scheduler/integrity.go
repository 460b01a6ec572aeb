package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"versekeeper/internal/audit"
	"versekeeper/internal/config"
	"versekeeper/internal/database"
)

// IntegrityScheduler runs periodic referential-integrity scans over the
// verse store. The foreign-key constraint should make orphaned verses
// impossible; the scan exists to confirm that for database files created
// before the constraint was enforced, and to surface corruption early.
type IntegrityScheduler struct {
	db           *database.Database
	auditService *audit.Service
	cfg          config.Integrity

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewIntegrityScheduler creates a new scheduler instance.
func NewIntegrityScheduler(db *database.Database, auditService *audit.Service, cfg config.Integrity) *IntegrityScheduler {
	return &IntegrityScheduler{
		db:           db,
		auditService: auditService,
		cfg:          cfg,
		cron:         cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if the scan is enabled.
func (s *IntegrityScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Integrity scan: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runScan()
	})
	if err != nil {
		return fmt.Errorf("invalid integrity scan schedule '%s': %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Integrity scan: scheduled with '%s'", s.cfg.Schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running scan.
func (s *IntegrityScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Integrity scan: stopped")
}

// RunNow triggers an immediate scan and returns the orphan count.
func (s *IntegrityScheduler) RunNow() (int, error) {
	return s.scan()
}

// IsRunning returns whether the scheduler is active.
func (s *IntegrityScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next scan will occur.
func (s *IntegrityScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *IntegrityScheduler) runScan() {
	start := time.Now()

	count, err := s.scan()
	if err != nil {
		log.Printf("Integrity scan: failed: %v", err)
		return
	}

	log.Printf("Integrity scan: finished in %v, %d orphaned verses", time.Since(start).Round(time.Millisecond), count)
}

// scan looks for verses whose owner is gone and records the outcome in the
// audit log. Orphans are reported, never deleted; cleanup is a human call.
func (s *IntegrityScheduler) scan() (int, error) {
	orphans, err := s.db.Verses.ListOrphans()
	if err != nil {
		s.logAudit(0, err)
		return 0, err
	}

	for _, verse := range orphans {
		log.Printf("Integrity scan: orphaned verse %s (%s) owned by missing user %s", verse.ID, verse.Reference, verse.UserID)
	}

	s.logAudit(len(orphans), nil)
	return len(orphans), nil
}

func (s *IntegrityScheduler) logAudit(orphanCount int, err error) {
	if s.auditService == nil {
		return
	}
	s.auditService.LogIntegrity(orphanCount, err)
}
