package status

import (
	"context"
	"sync"
)

// Broadcaster is a Sink that fans views out to live subscribers. Slow
// subscribers miss views rather than block the poller.
type Broadcaster struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan View
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan View)}
}

// Subscribe returns a channel of views and a function that closes it.
func (b *Broadcaster) Subscribe(buffer int) (<-chan View, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan View, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Count returns the number of live subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish implements Sink.
func (b *Broadcaster) Publish(_ context.Context, view View) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- view:
		default:
		}
	}
	return nil
}
