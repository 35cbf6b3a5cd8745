package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
)

func TestSender_ConsoleModeSucceeds(t *testing.T) {
	s := NewSender(Config{}, zerolog.Nop())

	err := s.Send(context.Background(), domain.Notification{
		Kind: domain.NotificationWelcome,
		User: domain.User{Username: "alice", Email: "alice@example.com"},
	})
	if err != nil {
		t.Fatalf("console mode must report success: %v", err)
	}
}

func TestRenderWelcome(t *testing.T) {
	s := NewSender(Config{ClientURL: "https://tasks.example.com/"}, zerolog.Nop())

	subject, body := s.render(domain.Notification{
		Kind: domain.NotificationWelcome,
		User: domain.User{Username: "alice"},
	})
	if subject != "Welcome to Task Manager!" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "Hello alice!") {
		t.Fatalf("greeting missing: %s", body)
	}
	if !strings.Contains(body, `href="https://tasks.example.com/login"`) {
		t.Fatalf("login link wrong: %s", body)
	}
}

func TestRenderTaskCompleted(t *testing.T) {
	s := NewSender(Config{}, zerolog.Nop())
	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	subject, body := s.render(domain.Notification{
		Kind: domain.NotificationTaskCompleted,
		User: domain.User{Username: "bob"},
		Task: &domain.Task{Title: "Ship release", Description: "v2.0", DueDate: &due},
	})
	if subject != "Task Completed: Ship release" {
		t.Fatalf("unexpected subject: %q", subject)
	}
	if !strings.Contains(body, "Great job, bob!") {
		t.Fatalf("greeting missing: %s", body)
	}
	if !strings.Contains(body, "2026-09-15") {
		t.Fatalf("due date missing: %s", body)
	}
}

func TestRenderEscapesUserInput(t *testing.T) {
	s := NewSender(Config{}, zerolog.Nop())

	_, body := s.render(domain.Notification{
		Kind: domain.NotificationTaskCompleted,
		User: domain.User{Username: `<script>alert("x")</script>`},
		Task: &domain.Task{Title: "a & b <c>"},
	})
	if strings.Contains(body, "<script>") {
		t.Fatalf("username not escaped: %s", body)
	}
	if !strings.Contains(body, "a &amp; b &lt;c&gt;") {
		t.Fatalf("title not escaped: %s", body)
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	s := NewSender(Config{From: "noreply@tasks.example.com", FromName: "Task Manager"}, zerolog.Nop())

	msg := string(s.buildMessage("alice@example.com", "Hi", "<p>hi</p>"))
	for _, want := range []string{
		"From: \"Task Manager\" <noreply@tasks.example.com>\r\n",
		"To: alice@example.com\r\n",
		"Subject: Hi\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("header %q missing from message:\n%s", want, msg)
		}
	}
	if !strings.HasSuffix(msg, "\r\n<p>hi</p>") {
		t.Fatalf("body not separated from headers:\n%s", msg)
	}
}
