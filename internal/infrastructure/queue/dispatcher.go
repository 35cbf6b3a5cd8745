package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/api/metrics"
	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes notification intents to a fixed set of workers using
// consistent hashing on the recipient address, so one recipient's emails are
// delivered in order. Enqueue never blocks: when the target worker's buffer
// is full the intent is dropped and logged, keeping request latency decoupled
// from delivery.
type Dispatcher struct {
	workers []chan domain.Notification
	sender  ports.EmailSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.EmailSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Notification, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue submits a notification intent for asynchronous delivery.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	if n.Kind == domain.NotificationTaskCompleted {
		metrics.TasksCompletedTotal.Inc()
	}

	select {
	case d.workers[d.shardIndex(n.User.Email)] <- n:
	default:
		metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "dropped").Inc()
		d.log.Warn().
			Str("kind", string(n.Kind)).
			Str("recipient", n.User.Email).
			Msg("notification queue full, intent dropped")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			if err := d.sender.Send(ctx, n); err != nil {
				metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "failed").Inc()
				d.log.Error().Err(err).
					Str("kind", string(n.Kind)).
					Str("recipient", n.User.Email).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "sent").Inc()
			metrics.NotificationSendDuration.Observe(time.Since(start).Seconds())
		}
	}
}
