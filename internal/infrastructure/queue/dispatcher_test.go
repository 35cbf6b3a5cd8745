package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/domain"
)

type recordingSender struct {
	mu       sync.Mutex
	sent     []domain.Notification
	delivery chan struct{}
}

func newRecordingSender(capacity int) *recordingSender {
	return &recordingSender{delivery: make(chan struct{}, capacity)}
}

func (s *recordingSender) Send(_ context.Context, n domain.Notification) error {
	s.mu.Lock()
	s.sent = append(s.sent, n)
	s.mu.Unlock()
	s.delivery <- struct{}{}
	return nil
}

func (s *recordingSender) snapshot() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.sent))
	copy(out, s.sent)
	return out
}

func waitFor(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func TestDispatcher_DeliversEnqueued(t *testing.T) {
	sender := newRecordingSender(4)
	d := NewDispatcher(2, sender, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.Notification{
		Kind: domain.NotificationWelcome,
		User: domain.User{Email: "alice@example.com"},
	})
	d.Enqueue(domain.Notification{
		Kind: domain.NotificationTaskCompleted,
		User: domain.User{Email: "bob@example.com"},
		Task: &domain.Task{ID: "t1", Title: "done"},
	})

	waitFor(t, sender.delivery, 2)

	kinds := make(map[domain.NotificationKind]bool)
	for _, n := range sender.snapshot() {
		kinds[n.Kind] = true
	}
	if !kinds[domain.NotificationWelcome] || !kinds[domain.NotificationTaskCompleted] {
		t.Fatalf("missing deliveries: %+v", sender.snapshot())
	}
}

func TestDispatcher_SameRecipientInOrder(t *testing.T) {
	sender := newRecordingSender(16)
	d := NewDispatcher(4, sender, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// All intents for one recipient hash to one worker, so delivery order
	// must match enqueue order.
	for i := 0; i < 5; i++ {
		d.Enqueue(domain.Notification{
			Kind: domain.NotificationTaskCompleted,
			User: domain.User{Email: "carol@example.com"},
			Task: &domain.Task{ID: taskID(i)},
		})
	}

	waitFor(t, sender.delivery, 5)

	for i, n := range sender.snapshot() {
		if n.Task.ID != taskID(i) {
			t.Fatalf("out-of-order delivery at %d: got %s", i, n.Task.ID)
		}
	}
}

func taskID(i int) string {
	return string(rune('a' + i))
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// No workers started: the buffer fills and further intents are dropped,
	// but Enqueue must still return promptly.
	d := NewDispatcher(1, newRecordingSender(1), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer*2; i++ {
			d.Enqueue(domain.Notification{
				Kind: domain.NotificationWelcome,
				User: domain.User{Email: "flood@example.com"},
			})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}
}
