package service

import (
	"context"
	"sync"
	"time"

	"github.com/portfolio-api/internal/repository"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// purgeTimeout bounds one scheduled purge run.
const purgeTimeout = 30 * time.Second

// maintenanceService is the concrete implementation of MaintenanceService
type maintenanceService struct {
	sessions repository.SessionRepository
	schedule string
	cron     *cron.Cron
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	running bool
}

func newMaintenanceService(sessions repository.SessionRepository, schedule string, log zerolog.Logger) *maintenanceService {
	return &maintenanceService{
		sessions: sessions,
		schedule: schedule,
		cron:     cron.New(),
		log:      log.With().Str("service", "maintenance").Logger(),
		now:      time.Now,
	}
}

// Start registers the scheduled jobs and starts the scheduler. Calling it
// twice is a no-op.
func (s *maintenanceService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		if _, err := s.PurgeExpiredSessions(ctx); err != nil {
			s.log.Error().Err(err).Msg("Session purge failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	s.log.Info().Str("schedule", s.schedule).Msg("Maintenance scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job, or for ctx.
func (s *maintenanceService) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("Maintenance job still running at shutdown")
	}
	s.running = false
	s.log.Info().Msg("Maintenance scheduler stopped")
}

// PurgeExpiredSessions deletes every expired session.
func (s *maintenanceService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("Expired sessions purged")
	}
	return removed, nil
}
