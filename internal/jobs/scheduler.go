package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"portfolio/api/internal/repository"
)

// Scheduler runs background maintenance. Currently a single nightly job:
// trimming visitor logs past the retention window.
type Scheduler struct {
	cron        *cron.Cron
	visitorLogs *repository.VisitorLogRepository
	retention   time.Duration
	log         zerolog.Logger
}

func NewScheduler(visitorLogs *repository.VisitorLogRepository, retention time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		visitorLogs: visitorLogs,
		retention:   retention,
		log:         log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.purgeVisitorLogs); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits briefly for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) purgeVisitorLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)
	removed, err := s.visitorLogs.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		s.log.Error().Err(err).Msg("visitor log purge failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("visitor logs purged")
	}
}
