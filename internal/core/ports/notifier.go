package ports

import (
	"context"

	"github.com/taskhive/task-system/internal/core/domain"
)

// Notifier accepts email intents for asynchronous, best-effort delivery.
// Enqueue must never block the caller; dropped or failed intents are logged
// by the implementation, not surfaced.
type Notifier interface {
	Enqueue(n domain.Notification)
}

// EmailSender delivers a single rendered notification. Implementations may
// be a no-op when no SMTP transport is configured.
type EmailSender interface {
	Send(ctx context.Context, n domain.Notification) error
}
