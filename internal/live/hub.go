// Package live notifies in-process subscribers when store tables change.
package live

import (
	"context"
	"sync"
)

// Table names a store table a subscriber can depend on.
type Table string

const (
	Sessions Table = "sessions"
	Problems Table = "problems"
	Attempts Table = "attempts"
)

// Hub fans change signals out to subscriptions. Signals carry no payload;
// subscribers re-run their query when signalled.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscription receives a signal on C after a change to any of its tables.
// Signals coalesce: several changes before the subscriber reads collapse
// into one.
type Subscription struct {
	hub    *Hub
	tables map[Table]struct{}
	ch     chan struct{}
	once   sync.Once
}

// Subscribe registers interest in tables. The subscription closes when ctx
// is done or Close is called. With no tables it hears every change.
func (h *Hub) Subscribe(ctx context.Context, tables ...Table) *Subscription {
	s := &Subscription{
		hub:    h,
		tables: make(map[Table]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			s.Close()
		}()
	}
	return s
}

func (s *Subscription) C() <-chan struct{} {
	return s.ch
}

// Close unregisters the subscription and closes C. Safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}

func (s *Subscription) wants(tables []Table) bool {
	if len(s.tables) == 0 {
		return true
	}
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}

// Publish signals every subscription interested in any of tables. It never
// blocks.
func (h *Hub) Publish(tables ...Table) {
	if len(tables) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if !s.wants(tables) {
			continue
		}
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

// Touch publishes a single table right away.
func (h *Hub) Touch(t Table) {
	h.Publish(t)
}

// Len reports the number of open subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
