// Package notify carries the outbound side of the expiration notifier: the
// SMTP mailer and the cron runner that triggers scans.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/intraworks/dochub/internal/api/metrics"
	"github.com/intraworks/dochub/internal/core/domain"
)

const reminderSubject = "License expiration reminder"

var reminderTemplate = template.Must(template.New("reminder").Parse(`
<p>Hello {{.Responsible}},</p>
<p>The license for <strong>{{.Name}}</strong> expires in <strong>{{.DaysLeft}}</strong> day(s),
on {{.ExpiresOn}}.</p>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<p>Please arrange the renewal before the expiration date.</p>
`))

// SMTPConfig captures the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string // empty = unauthenticated relay (local dev)
	Password string
}

// SMTPMailer sends templated expiration reminders over plain SMTP.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendExpirationReminder renders the reminder body and hands it to the relay.
func (m *SMTPMailer) SendExpirationReminder(_ context.Context, tool *domain.Tool, daysLeft int) error {
	var body bytes.Buffer
	err := reminderTemplate.Execute(&body, struct {
		Responsible string
		Name        string
		Description string
		DaysLeft    int
		ExpiresOn   string
	}{
		Responsible: tool.Responsible,
		Name:        tool.Name,
		Description: tool.Description,
		DaysLeft:    daysLeft,
		ExpiresOn:   tool.ExpirationDate.UTC().Format("2006-01-02"),
	})
	if err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.From, tool.ResponsibleEmail, reminderSubject, body.String(),
	))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{tool.ResponsibleEmail}, msg); err != nil {
		metrics.NotificationErrorsTotal.WithLabelValues("send_failed").Inc()
		return fmt.Errorf("send reminder to %s: %w", tool.ResponsibleEmail, err)
	}

	metrics.NotificationsSentTotal.Inc()
	return nil
}
