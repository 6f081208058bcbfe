package gateway

import "sync"

// Event is one engine event as delivered to subscribers.
type Event struct {
	Type string            `json:"event"`
	Data map[string]string `json:"data"`
}

// Hub fans engine events out to websocket subscribers. It is the
// engine's EventSink; emission never blocks, a subscriber that cannot
// keep up drops events rather than stalling the operation that emitted
// them.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]string
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]string)}
}

// Emit implements sdk.EventSink. Game-scoped events route by their
// admin and code attributes; a subscriber with an empty topic gets
// everything.
func (h *Hub) Emit(eventType string, attributes map[string]string) {
	ev := Event{Type: eventType, Data: attributes}
	topic := attributes["admin"] + ":" + attributes["code"]

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch, want := range h.subs {
		if want != "" && want != topic {
			continue
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a new event channel. topic is "<admin>:<code>" for
// one game or "" for the full feed.
func (h *Hub) Subscribe(topic string) chan Event {
	ch := make(chan Event, 32)
	h.mu.Lock()
	h.subs[ch] = topic
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}
