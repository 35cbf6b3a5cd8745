// Package email delivers notification emails via SMTP. When no SMTP host is
// configured the sender runs in console mode: messages are logged instead of
// sent, so development environments work without a mail relay.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
)

// Config holds SMTP transport settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	FromName  string
	ClientURL string
}

// Sender implements ports.EmailSender over stdlib net/smtp.
type Sender struct {
	cfg  Config
	auth smtp.Auth
	log  zerolog.Logger
}

func NewSender(cfg Config, log zerolog.Logger) *Sender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = "noreply@taskmanager.local"
	}
	if cfg.FromName == "" {
		cfg.FromName = "Task Manager"
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	s := &Sender{cfg: cfg, auth: auth, log: log}
	if !s.configured() {
		log.Info().Msg("email sender not configured, messages will be logged only")
	}
	return s
}

func (s *Sender) configured() bool {
	return s.cfg.Host != ""
}

// Send renders the notification and delivers it. In console mode the message
// is logged and the send reports success, matching best-effort semantics.
func (s *Sender) Send(ctx context.Context, n domain.Notification) error {
	subject, body := s.render(n)

	if !s.configured() {
		s.log.Info().
			Str("to", n.User.Email).
			Str("subject", subject).
			Msg("email (console mode)")
		return nil
	}

	msg := s.buildMessage(n.User.Email, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, s.auth, s.cfg.From, []string{n.User.Email}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}

func (s *Sender) render(n domain.Notification) (subject, body string) {
	switch n.Kind {
	case domain.NotificationTaskCompleted:
		return s.renderTaskCompleted(n)
	default:
		return s.renderWelcome(n)
	}
}

func (s *Sender) renderWelcome(n domain.Notification) (string, string) {
	loginURL := strings.TrimSuffix(s.cfg.ClientURL, "/") + "/login"
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h1>Welcome to Task Manager!</h1>")
	fmt.Fprintf(&b, "<h2>Hello %s!</h2>", htmlEscape(n.User.Username))
	b.WriteString("<p>Thank you for registering with Task Manager. We're excited to have you on board!</p>")
	b.WriteString("<ul><li>Create and organize your tasks</li><li>Set due dates and track progress</li><li>Mark tasks as complete</li></ul>")
	fmt.Fprintf(&b, `<p><a href="%s">Get Started</a></p>`, loginURL)
	b.WriteString("</body></html>")
	return "Welcome to Task Manager!", b.String()
}

func (s *Sender) renderTaskCompleted(n domain.Notification) (string, string) {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Task Completed!</h1>")
	fmt.Fprintf(&b, "<h2>Great job, %s!</h2>", htmlEscape(n.User.Username))
	b.WriteString("<p>You've successfully completed a task:</p>")
	fmt.Fprintf(&b, "<h3>%s</h3>", htmlEscape(n.Task.Title))
	if n.Task.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>", htmlEscape(n.Task.Description))
	}
	if n.Task.DueDate != nil {
		fmt.Fprintf(&b, "<p><strong>Due Date:</strong> %s</p>", n.Task.DueDate.Format("2006-01-02"))
	}
	b.WriteString("<p>Keep up the great work!</p>")
	b.WriteString("</body></html>")
	return "Task Completed: " + n.Task.Title, b.String()
}

func (s *Sender) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %q <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
