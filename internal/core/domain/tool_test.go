package domain

import (
	"testing"
	"time"
)

var scanTime = time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)

func toolExpiringIn(days int) Tool {
	return Tool{
		ID:             "t1",
		Name:           "build server license",
		ExpirationDate: scanTime.AddDate(0, 0, days),
	}
}

func TestTool_DaysUntilExpiration(t *testing.T) {
	tool := toolExpiringIn(7)
	if got := tool.DaysUntilExpiration(scanTime); got != 7 {
		t.Fatalf("expected 7 days, got %d", got)
	}

	// Whole calendar days: time of day on either side must not shift the count.
	lateScan := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	earlyExpiry := Tool{ExpirationDate: time.Date(2026, time.March, 17, 0, 30, 0, 0, time.UTC)}
	if got := earlyExpiry.DaysUntilExpiration(lateScan); got != 7 {
		t.Fatalf("expected 7 days across day boundaries, got %d", got)
	}

	expired := toolExpiringIn(-3)
	if got := expired.DaysUntilExpiration(scanTime); got != -3 {
		t.Fatalf("expected -3 days for expired tool, got %d", got)
	}
}

func TestTool_ReminderDue(t *testing.T) {
	due := []int{1, 2, 3, 4, 5, 6, 7, 15, 30}
	for _, d := range due {
		if !toolExpiringIn(d).ReminderDue(scanTime) {
			t.Fatalf("expected reminder due at %d days left", d)
		}
	}

	notDue := []int{0, -1, 8, 14, 16, 29, 31, 60}
	for _, d := range notDue {
		if toolExpiringIn(d).ReminderDue(scanTime) {
			t.Fatalf("expected no reminder at %d days left", d)
		}
	}
}

func TestTool_NotifiedOn(t *testing.T) {
	tool := toolExpiringIn(7)

	if tool.NotifiedOn(scanTime) {
		t.Fatalf("zero LastNotification must not count as notified")
	}

	tool.LastNotification = scanTime.Add(-2 * time.Hour)
	if !tool.NotifiedOn(scanTime) {
		t.Fatalf("same-day notification not detected")
	}

	tool.LastNotification = scanTime.AddDate(0, 0, -1)
	if tool.NotifiedOn(scanTime) {
		t.Fatalf("yesterday's notification must not block today")
	}
}
