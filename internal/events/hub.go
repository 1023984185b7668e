package events

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

const subscriberBuffer = 16

// Message is one event as delivered to a live subscriber.
type Message struct {
	// Seq increases by one per published event, across all types.
	Seq  uint64
	Type string
	Data string
}

// Subscription receives events of the requested types, or every event when
// no types were given.
type Subscription struct {
	C     <-chan Message
	c     chan Message
	types map[string]bool
}

func (s *Subscription) wants(typ string) bool {
	return len(s.types) == 0 || s.types[typ]
}

// Hub fans change events out to SSE streams. A subscriber that falls behind
// loses events instead of stalling the save that produced them.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
	seq  uint64

	dropped atomic.Uint64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(types ...string) *Subscription {
	c := make(chan Message, subscriberBuffer)
	s := &Subscription{C: c, c: c}
	if len(types) > 0 {
		s.types = make(map[string]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) Unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.c)
}

// Publish takes an encoded Event; its type is read back for filtering.
func (h *Hub) Publish(evt string) {
	var head struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal([]byte(evt), &head)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	msg := Message{Seq: h.seq, Type: head.Type, Data: evt}
	for s := range h.subs {
		if !s.wants(head.Type) {
			continue
		}
		select {
		case s.c <- msg:
		default:
			h.dropped.Add(1)
		}
	}
}

// Subscribers is the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Dropped counts deliveries skipped because a subscriber was full.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }
