package events

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
)

// Type names the kind of change an Event reports.
type Type string

const (
	TypeAdded   Type = "added"
	TypeUpdated Type = "updated"
	TypeDeleted Type = "deleted"
)

// Event describes one committed change to the item collection.
type Event struct {
	ID        string     `json:"id"`
	Type      Type       `json:"type"`
	Name      string     `json:"name"`
	Item      *item.Item `json:"item,omitempty"`
	Timestamp int64      `json:"timestamp"`
}

// NewEvent stamps a change with an identifier and the current time.
// name is the name the item was addressed by; for renames it is the old name.
func NewEvent(typ Type, name string, it *item.Item) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Name:      name,
		Item:      it,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Hub fans events out to subscribers. It is safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	buffer int
}

// NewHub creates a hub whose subscriptions buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[int]chan Event),
		buffer: buffer,
	}
}

// Subscribe registers a listener. The returned cancel func closes the channel
// and must be called once the listener is done.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber without blocking.
// Subscribers whose buffer is full miss the event.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			log.Printf("[events] subscriber %d is lagging, dropped %s event for %q", id, ev.Type, ev.Name)
		}
	}
}

// Subscribers reports the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
