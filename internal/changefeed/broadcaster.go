package changefeed

import "sync"

// Broadcaster fans change signals out to any number of subscribers.
// Signals carry no payload: a consumer's only correct reaction to one
// is a refetch, so consecutive signals coalesce when a subscriber is
// slow to drain its channel.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[chan struct{}]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned cancel func must
// be called when the subscriber is done.
func (b *Broadcaster) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
	return ch, cancel
}

// Notify signals every subscriber. Never blocks; a subscriber with a
// signal already pending keeps the one it has.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
