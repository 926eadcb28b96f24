package export

import (
	"log/slog"
	"sync"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// ProgressFunc receives one stage-progress event.
type ProgressFunc func(models.ExportProgress)

type subscriber struct {
	id int64
	fn ProgressFunc
}

// Bus is a multicast progress channel. Publish invokes every current
// subscriber synchronously in subscription order; a panicking subscriber
// is recovered and logged so it never aborts an in-flight export. The
// bus does not buffer or replay events.
type Bus struct {
	mu   sync.Mutex
	next int64
	subs []subscriber
	log  *slog.Logger
}

// NewBus creates an empty progress bus.
func NewBus(log *slog.Logger) *Bus {
	return &Bus{log: log}
}

// Subscribe registers a callback and returns its unsubscribe function.
// Unsubscribing removes exactly this callback; calling it more than once
// is a no-op.
func (b *Bus) Subscribe(fn ProgressFunc) func() {
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers ev to every current subscriber.
func (b *Bus) Publish(ev models.ExportProgress) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		b.deliver(s, ev)
	}
}

func (b *Bus) deliver(s subscriber, ev models.ExportProgress) {
	defer func() {
		if r := recover(); r != nil && b.log != nil {
			b.log.Warn("progress subscriber panicked",
				"export_id", ev.ExportID,
				"stage", string(ev.Stage),
				"panic", r,
			)
		}
	}()
	s.fn(ev)
}

// SubscriberCount reports the current number of subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
