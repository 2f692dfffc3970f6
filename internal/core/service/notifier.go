package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/intraworks/dochub/internal/core/domain"
	"github.com/intraworks/dochub/internal/core/ports"
)

// Mailer sends a single expiration reminder.
type Mailer interface {
	SendExpirationReminder(ctx context.Context, tool *domain.Tool, daysLeft int) error
}

// DayGuard abstracts the fast-path duplicate-notification check (Redis).
// The persisted LastNotification date remains the authoritative guard; the
// day guard just short-circuits repeated runs within the same day.
type DayGuard interface {
	AlreadySent(ctx context.Context, toolID string, day time.Time) (bool, error)
	Mark(ctx context.Context, toolID string, day time.Time) error
}

// ExpirationNotifier scans tools on each run and emails the responsible
// person when a tool approaches expiration. At most one reminder goes out per
// tool per calendar day, however often Run is invoked.
type ExpirationNotifier struct {
	tools  ports.ToolRepository
	guard  DayGuard
	mailer Mailer
	log    zerolog.Logger
	now    func() time.Time
}

func NewExpirationNotifier(tools ports.ToolRepository, guard DayGuard, mailer Mailer, log zerolog.Logger) *ExpirationNotifier {
	return &ExpirationNotifier{
		tools:  tools,
		guard:  guard,
		mailer: mailer,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run performs one scan-and-send pass. Per-tool failures are logged and do
// not stop the scan; there is no retry.
func (n *ExpirationNotifier) Run(ctx context.Context) error {
	tools, err := n.tools.List(ctx)
	if err != nil {
		return err
	}

	now := n.now()
	sent := 0
	for _, tool := range tools {
		if !tool.ReminderDue(now) {
			continue
		}
		if tool.NotifiedOn(now) {
			n.log.Debug().Str("tool_id", tool.ID).Msg("already notified today, skipping")
			continue
		}

		dup, err := n.guard.AlreadySent(ctx, tool.ID, now)
		if err != nil {
			n.log.Warn().Err(err).Str("tool_id", tool.ID).Msg("day-guard check failed, relying on last_notification")
		} else if dup {
			n.log.Debug().Str("tool_id", tool.ID).Msg("day-guard hit, skipping")
			continue
		}

		daysLeft := tool.DaysUntilExpiration(now)
		if err := n.mailer.SendExpirationReminder(ctx, tool, daysLeft); err != nil {
			n.log.Error().Err(err).
				Str("tool_id", tool.ID).
				Str("to", tool.ResponsibleEmail).
				Msg("failed to send expiration reminder")
			continue
		}

		if err := n.tools.MarkNotified(ctx, tool.ID, now); err != nil {
			n.log.Error().Err(err).Str("tool_id", tool.ID).Msg("failed to record notification timestamp")
		}
		if err := n.guard.Mark(ctx, tool.ID, now); err != nil {
			n.log.Warn().Err(err).Str("tool_id", tool.ID).Msg("failed to set day-guard key")
		}

		n.log.Info().
			Str("tool_id", tool.ID).
			Str("to", tool.ResponsibleEmail).
			Int("days_left", daysLeft).
			Msg("expiration reminder sent")
		sent++
	}

	n.log.Info().Int("tools", len(tools)).Int("sent", sent).Msg("expiration scan finished")
	return nil
}
