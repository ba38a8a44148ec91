package jobs

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/cytoscape/cyweb/internal/config"
	"github.com/cytoscape/cyweb/internal/store"
)

// Start launches the background job scheduler and returns it so the caller
// can stop it on shutdown.
func Start(cfg *config.Config, st *store.Store) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startSessionCleanupJob(s, cfg, st)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
	return s
}

// startSessionCleanupJob schedules periodic removal of expired staff
// sessions.
func startSessionCleanupJob(s *gocron.Scheduler, cfg *config.Config, st *store.Store) {
	interval := cfg.Session.CleanupInterval
	if interval <= 0 {
		log.Println("Session cleanup interval is 0, scheduled cleanup is disabled.")
		return
	}

	log.Printf("Scheduling session cleanup to run every %d minutes.", interval)
	_, err := s.Every(interval).Minutes().Do(func() {
		deleted, err := st.DeleteExpiredSessions()
		if err != nil {
			log.Printf("Session cleanup failed: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("Session cleanup removed %d expired sessions.", deleted)
		}
	})
	if err != nil {
		log.Printf("Error scheduling session cleanup job: %v", err)
	}
}
