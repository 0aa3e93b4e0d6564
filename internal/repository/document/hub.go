package document

import (
	"sync"

	"github.com/dtroode/storefront-server/internal/model"
)

// Loader reads the current snapshot of a collection.
type Loader func() (model.Snapshot, error)

type subscription struct {
	mu     sync.Mutex
	closed bool
	fn     func(model.Snapshot)
}

func (s *subscription) deliver(snapshot model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.fn(snapshot)
	}
}

func (s *subscription) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Hub fans collection snapshots out to in-process subscribers.
//
// Notifications are serialized, so subscribers of one collection observe
// snapshots in commit order.
type Hub struct {
	notifyMu sync.Mutex

	mu   sync.Mutex
	next int
	subs map[string]map[int]*subscription
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]*subscription)}
}

// Subscribe registers fn for collection and delivers the current snapshot
// before returning. The returned function stops delivery. It is safe to call
// more than once but must not be called from inside fn.
func (h *Hub) Subscribe(collection string, fn func(model.Snapshot), load Loader) (func(), error) {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()

	snapshot, err := load()
	if err != nil {
		return nil, err
	}

	sub := &subscription{fn: fn}
	h.mu.Lock()
	id := h.next
	h.next++
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]*subscription)
	}
	h.subs[collection][id] = sub
	h.mu.Unlock()

	sub.deliver(snapshot)

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.close()
			h.mu.Lock()
			delete(h.subs[collection], id)
			if len(h.subs[collection]) == 0 {
				delete(h.subs, collection)
			}
			h.mu.Unlock()
		})
	}, nil
}

// Notify loads and delivers a fresh snapshot to every subscriber of collection.
// It is a no-op when nobody is subscribed.
func (h *Hub) Notify(collection string, load Loader) error {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()

	subs := h.subscribers(collection)
	if len(subs) == 0 {
		return nil
	}

	snapshot, err := load()
	if err != nil {
		return err
	}
	for _, sub := range subs {
		sub.deliver(snapshot)
	}
	return nil
}

// Subscribers returns the number of live subscriptions on collection.
func (h *Hub) Subscribers(collection string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[collection])
}

func (h *Hub) subscribers(collection string) []*subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*subscription, 0, len(h.subs[collection]))
	for _, s := range h.subs[collection] {
		out = append(out, s)
	}
	return out
}
