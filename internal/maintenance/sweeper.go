// Package maintenance runs the periodic datastore sweep: expired session
// rows and soft-deleted users past their retention window are removed on a
// cron schedule.
package maintenance

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avasiliev/userbase/internal/config"
	"github.com/avasiliev/userbase/internal/database"
	"github.com/avasiliev/userbase/internal/database/users"
)

// Sweeper manages the periodic cleanup job.
type Sweeper struct {
	db        *database.Database
	usersRepo *users.Repository
	cfg       config.Maintenance

	cron      *cron.Cron
	mu        sync.Mutex
	isRunning bool
}

// NewSweeper creates a new sweeper instance.
func NewSweeper(db *database.Database, usersRepo *users.Repository, cfg config.Maintenance) *Sweeper {
	return &Sweeper{
		db:        db,
		usersRepo: usersRepo,
		cfg:       cfg,
		cron:      cron.New(),
	}
}

// Start begins the scheduler if maintenance is enabled.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Maintenance sweeper: disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runSweep); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", s.cfg.Schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Maintenance sweeper: scheduled with %q", s.cfg.Schedule)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Maintenance sweeper: stopped")
}

// runSweep performs one cleanup pass. Failures are logged and retried on the
// next tick.
func (s *Sweeper) runSweep() {
	removed, err := s.purgeExpiredSessions()
	if err != nil {
		log.Printf("Maintenance sweeper: session purge failed: %v", err)
	} else if removed > 0 {
		log.Printf("Maintenance sweeper: removed %d expired sessions", removed)
	}

	if s.cfg.Retention > 0 {
		cutoff := time.Now().Add(-s.cfg.Retention)
		purged, err := s.usersRepo.PurgeDeleted(cutoff)
		if err != nil {
			log.Printf("Maintenance sweeper: user purge failed: %v", err)
		} else if purged > 0 {
			log.Printf("Maintenance sweeper: purged %d deleted users", purged)
		}
	}
}

// purgeExpiredSessions deletes session rows the store considers expired.
// The expiry column holds julian day numbers, matching the session store's
// own schema.
func (s *Sweeper) purgeExpiredSessions() (int64, error) {
	sqlDB, err := s.db.SQLDB()
	if err != nil {
		return 0, err
	}

	result, err := sqlDB.Exec(`DELETE FROM sessions WHERE expiry < julianday('now')`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
