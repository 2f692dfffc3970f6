package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/intraworks/dochub/internal/core/domain"
)

type stubMailer struct {
	sent    []string // tool ids
	sendErr error
}

func (m *stubMailer) SendExpirationReminder(_ context.Context, tool *domain.Tool, _ int) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, tool.ID)
	return nil
}

type stubDayGuard struct {
	marked   map[string]bool
	checkErr error
}

func newStubDayGuard() *stubDayGuard {
	return &stubDayGuard{marked: make(map[string]bool)}
}

func (g *stubDayGuard) guardKey(toolID string, day time.Time) string {
	return toolID + "@" + day.UTC().Format("2006-01-02")
}

func (g *stubDayGuard) AlreadySent(_ context.Context, toolID string, day time.Time) (bool, error) {
	if g.checkErr != nil {
		return false, g.checkErr
	}
	return g.marked[g.guardKey(toolID, day)], nil
}

func (g *stubDayGuard) Mark(_ context.Context, toolID string, day time.Time) error {
	g.marked[g.guardKey(toolID, day)] = true
	return nil
}

func newTestNotifier(repo *stubToolRepo, guard DayGuard, mailer Mailer, now time.Time) *ExpirationNotifier {
	n := NewExpirationNotifier(repo, guard, mailer, zerolog.Nop())
	n.now = func() time.Time { return now }
	return n
}

func seedTool(t *testing.T, repo *stubToolRepo, daysLeft int, now time.Time) *domain.Tool {
	t.Helper()
	tool, err := repo.Create(context.Background(), &domain.Tool{
		Name:             "license",
		Responsible:      "Dana",
		ResponsibleEmail: "dana@example.com",
		ExpirationDate:   now.AddDate(0, 0, daysLeft),
	})
	if err != nil {
		t.Fatalf("seed tool: %v", err)
	}
	return tool
}

func TestExpirationNotifier_SendsOnReminderDay(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	repo := newStubToolRepo()
	guard := newStubDayGuard()
	mailer := &stubMailer{}

	due := seedTool(t, repo, 7, now)
	seedTool(t, repo, 10, now) // not on a reminder mark

	n := newTestNotifier(repo, guard, mailer, now)
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(mailer.sent) != 1 || mailer.sent[0] != due.ID {
		t.Fatalf("expected one reminder for %s, got %v", due.ID, mailer.sent)
	}

	stored, _ := repo.FindByID(context.Background(), due.ID)
	if !stored.NotifiedOn(now) {
		t.Fatalf("LastNotification not recorded: %v", stored.LastNotification)
	}
	if ok, _ := guard.AlreadySent(context.Background(), due.ID, now); !ok {
		t.Fatalf("day guard not marked")
	}
}

func TestExpirationNotifier_OncePerDay(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	repo := newStubToolRepo()
	guard := newStubDayGuard()
	mailer := &stubMailer{}

	seedTool(t, repo, 3, now)

	n := newTestNotifier(repo, guard, mailer, now)
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected exactly one reminder per day, got %d", len(mailer.sent))
	}
}

func TestExpirationNotifier_LastNotificationGuardsWithoutRedis(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	repo := newStubToolRepo()
	guard := newStubDayGuard()
	guard.checkErr = errors.New("redis down")
	mailer := &stubMailer{}

	tool := seedTool(t, repo, 3, now)
	_ = repo.MarkNotified(context.Background(), tool.ID, now.Add(-time.Hour))

	n := newTestNotifier(repo, guard, mailer, now)
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// The persisted timestamp alone must suppress the duplicate.
	if len(mailer.sent) != 0 {
		t.Fatalf("expected no reminder, got %v", mailer.sent)
	}
}

func TestExpirationNotifier_GuardErrorStillSends(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	repo := newStubToolRepo()
	guard := newStubDayGuard()
	guard.checkErr = errors.New("redis down")
	mailer := &stubMailer{}

	seedTool(t, repo, 1, now)

	n := newTestNotifier(repo, guard, mailer, now)
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("guard failure must not block the reminder, got %v", mailer.sent)
	}
}

func TestExpirationNotifier_SendFailureSkipsBookkeeping(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	repo := newStubToolRepo()
	guard := newStubDayGuard()
	mailer := &stubMailer{sendErr: errors.New("relay refused")}

	tool := seedTool(t, repo, 2, now)

	n := newTestNotifier(repo, guard, mailer, now)
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("per-tool send failures must not fail the scan: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), tool.ID)
	if !stored.LastNotification.IsZero() {
		t.Fatalf("failed send must not record a notification")
	}
	if ok, _ := guard.AlreadySent(context.Background(), tool.ID, now); ok {
		t.Fatalf("failed send must not mark the day guard")
	}
}

func TestExpirationNotifier_NextDaySendsAgain(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	repo := newStubToolRepo()
	guard := newStubDayGuard()
	mailer := &stubMailer{}

	seedTool(t, repo, 3, now)

	n := newTestNotifier(repo, guard, mailer, now)
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("day one run failed: %v", err)
	}

	n.now = func() time.Time { return now.AddDate(0, 0, 1) } // 2 days left: still a mark
	if err := n.Run(context.Background()); err != nil {
		t.Fatalf("day two run failed: %v", err)
	}

	if len(mailer.sent) != 2 {
		t.Fatalf("expected a reminder on each countdown day, got %d", len(mailer.sent))
	}
}
