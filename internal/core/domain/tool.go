package domain

import "time"

// reminderDays are the remaining-day marks at which an expiration reminder is
// due: a final daily countdown plus two early warnings.
var reminderDays = map[int]struct{}{
	1: {}, 2: {}, 3: {}, 4: {}, 5: {}, 6: {}, 7: {}, 15: {}, 30: {},
}

// Tool is a managed license or tool with an expiration date watched by the
// notifier. LastNotification is zero until the first reminder is sent.
type Tool struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Responsible      string    `json:"responsible"`
	ResponsibleEmail string    `json:"responsible_email"`
	AcquisitionDate  time.Time `json:"acquisition_date"`
	ExpirationDate   time.Time `json:"expiration_date"`
	LastNotification time.Time `json:"last_notification,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DaysUntilExpiration returns the number of whole calendar days between now
// and the expiration date, both taken in UTC. Expired tools yield a negative
// count.
func (t Tool) DaysUntilExpiration(now time.Time) int {
	return int(startOfDay(t.ExpirationDate).Sub(startOfDay(now)).Hours() / 24)
}

// ReminderDue reports whether the remaining days until expiration fall on a
// reminder mark.
func (t Tool) ReminderDue(now time.Time) bool {
	_, ok := reminderDays[t.DaysUntilExpiration(now)]
	return ok
}

// NotifiedOn reports whether the last reminder was sent on the same UTC
// calendar day as day. At most one reminder goes out per tool per day.
func (t Tool) NotifiedOn(day time.Time) bool {
	if t.LastNotification.IsZero() {
		return false
	}
	return startOfDay(t.LastNotification).Equal(startOfDay(day))
}

func startOfDay(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}
