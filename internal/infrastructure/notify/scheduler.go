package notify

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/intraworks/dochub/internal/api/metrics"
	"github.com/intraworks/dochub/internal/core/service"
)

// Scheduler runs the expiration notifier on a cron schedule. The cadence is
// configuration; the notifier's per-day guard keeps reminders at one per tool
// per calendar day regardless of how often the schedule fires.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// NewScheduler registers the notifier on the given cron expression.
func NewScheduler(schedule string, notifier *service.ExpirationNotifier, log zerolog.Logger) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if err := notifier.Run(context.Background()); err != nil {
			metrics.NotificationErrorsTotal.WithLabelValues("scan_failed").Inc()
			log.Error().Err(err).Msg("expiration scan failed")
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, log: log}, nil
}

// Start launches the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("notification scheduler started")
}

// Stop halts scheduling and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("notification scheduler stopped")
}
